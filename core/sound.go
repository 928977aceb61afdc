package core

// Category classifies how a cue plays back
type Category int

const (
	// CategoryOther cues are neither looped nor timer driven
	CategoryOther Category = iota
	// CategoryContinuous cues loop and are faded in from silence on activation
	CategoryContinuous
	// CategoryDiscrete cues are one-shots replayed after a random delay
	CategoryDiscrete
)

// String returns the manifest name of the category
func (c Category) String() string {
	switch c {
	case CategoryContinuous:
		return "continuous"
	case CategoryDiscrete:
		return "discrete"
	default:
		return "other"
	}
}

// ParseCategory maps a manifest name to a Category, unknown names map to CategoryOther
func ParseCategory(s string) Category {
	switch s {
	case "continuous", "music", "loop":
		return CategoryContinuous
	case "discrete", "sound", "sfx":
		return CategoryDiscrete
	default:
		return CategoryOther
	}
}
