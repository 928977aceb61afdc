package core

// Radii holds the falloff radii of a source in tiles
// Floor: full volume inside; Shelf: background ducking begins inside; Maximum: silent outside
type Radii struct {
	Floor   float64
	Shelf   float64
	Maximum float64
}

// Clamped returns floor and shelf limited to Maximum
// Negative radii are treated as 0
func (r Radii) Clamped() (floor, shelf, maximum float64) {
	maximum = max(0, r.Maximum)
	floor = min(max(0, r.Floor), maximum)
	shelf = min(max(0, r.Shelf), maximum)
	return floor, shelf, maximum
}

// DelayRange bounds the replay delay of discrete sources, milliseconds
type DelayRange struct {
	Min int
	Max int
}

// IsZero reports whether no range is configured
func (d DelayRange) IsZero() bool {
	return d.Min <= 0 && d.Max <= 0
}

// SourceDefinition is one declared point sound
// Values are read-only once loaded; a reload replaces the whole table
type SourceDefinition struct {
	LocationName  string
	Condition     string
	CueName       string
	Radius        Radii
	MaxIntensity  float64
	MinDuckVolume float64
	Position      Point
	RepeatDelay   DelayRange
}
