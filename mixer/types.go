package mixer

import (
	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/vmath"
)

// Handle is an engine-level playback object for one cue
// Each Handle is owned by exactly one entry at a time
type Handle interface {
	Play()
	Stop()
	Dispose()
	Volume() float64
	SetVolume(v float64)
	IsPlaying() bool
}

// CueBank resolves cue names to playback handles
type CueBank interface {
	Exists(cue string) bool
	Acquire(cue string) (Handle, error)
	Category(h Handle) core.Category
}

// MusicChannel is the background music volume the mixer ducks
// Other subsystems may write the same channel between ticks
type MusicChannel interface {
	Active() bool
	Volume() float64
	SetVolume(v float64)
}

// PositionSource reports the listener position in tile units
type PositionSource interface {
	ListenerPosition() vmath.Vec2
}

// ActorState is the coarse change signal sampled from one dynamic actor
type ActorState struct {
	ID        string
	Moving    bool
	Animation string
}

// LocationContext exposes the listener's location and the world state polled for changes
type LocationContext interface {
	// CurrentLocation returns the listener's location name, false when it has none
	CurrentLocation() (string, bool)
	TimeOfDay() int
	Actors() []ActorState
	// TimePasses reports whether discrete replay timers should advance
	TimePasses() bool
}

// ConditionEvaluator gates source activation
// Evaluation is total: malformed conditions evaluate to false
type ConditionEvaluator interface {
	Evaluate(condition, location string) bool
}

// conditionResetter is implemented by evaluators that suppress repeated failure logs
// Invalidation resets them alongside the missing-cue memory
type conditionResetter interface {
	Reset()
}

// ConditionFunc adapts a function to ConditionEvaluator
type ConditionFunc func(condition, location string) bool

// Evaluate implements ConditionEvaluator
func (f ConditionFunc) Evaluate(condition, location string) bool {
	return f(condition, location)
}

// SourceLoader loads the current source table keyed by ID
type SourceLoader interface {
	LoadSources() (map[string]core.SourceDefinition, error)
}

// LoaderFunc adapts a function to SourceLoader
type LoaderFunc func() (map[string]core.SourceDefinition, error)

// LoadSources implements SourceLoader
func (f LoaderFunc) LoadSources() (map[string]core.SourceDefinition, error) {
	return f()
}
