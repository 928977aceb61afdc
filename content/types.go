package content

// File is the on-disk source table, YAML or JSON
type File struct {
	Sources map[string]Source `yaml:"sources" json:"sources" jsonschema:"title=Sources,description=Point sounds keyed by unique source ID"`
}

// Source is one declared point sound; omitted optional fields take loader defaults
type Source struct {
	Location      string      `yaml:"location" json:"location" jsonschema:"title=Location,description=Location name the source belongs to,minLength=1,required"`
	Condition     string      `yaml:"condition,omitempty" json:"condition,omitempty" jsonschema:"title=Condition,description=Comma-separated query clauses that must all hold; empty always passes"`
	Cue           string      `yaml:"cue" json:"cue" jsonschema:"title=Cue,description=Cue name resolved against the cue bank,minLength=1,required"`
	Radius        *Radius     `yaml:"radius,omitempty" json:"radius,omitempty" jsonschema:"title=Radius,description=Falloff radii in tiles"`
	MaxIntensity  *float64    `yaml:"maxIntensity,omitempty" json:"maxIntensity,omitempty" jsonschema:"title=Max intensity,description=Volume inside the floor radius,minimum=0,maximum=1,default=1"`
	MinDuckVolume *float64    `yaml:"minDuckVolume,omitempty" json:"minDuckVolume,omitempty" jsonschema:"title=Minimum duck volume,description=Lowest background music volume this source can request,minimum=0,maximum=1,default=0"`
	Position      *Position   `yaml:"position,omitempty" json:"position,omitempty" jsonschema:"title=Position,description=Tile the sound is centered on"`
	RepeatDelay   *DelayRange `yaml:"repeatDelay,omitempty" json:"repeatDelay,omitempty" jsonschema:"title=Repeat delay,description=Replay delay range for one-shot cues in milliseconds"`
}

// Radius holds optional falloff radii
type Radius struct {
	Floor   *float64 `yaml:"floor,omitempty" json:"floor,omitempty" jsonschema:"description=Full volume inside this distance,minimum=0,default=2"`
	Shelf   *float64 `yaml:"shelf,omitempty" json:"shelf,omitempty" jsonschema:"description=Background music ducking begins inside this distance,minimum=0,default=4"`
	Maximum *float64 `yaml:"maximum,omitempty" json:"maximum,omitempty" jsonschema:"description=Silent beyond this distance,minimum=0,default=8"`
}

// Position is a tile coordinate
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// DelayRange bounds the replay delay in milliseconds
type DelayRange struct {
	Min int `yaml:"min" json:"min" jsonschema:"minimum=1"`
	Max int `yaml:"max" json:"max" jsonschema:"minimum=1"`
}
