package mixer

import (
	"math"

	"github.com/lixenwraith/positional-audio/core"
	"github.com/lixenwraith/positional-audio/vmath"
)

// Curve maps t onto [0, 1] between lo and hi with a square-root shape
// Steep near lo, gentle near hi. Total: lo == hi never divides
func Curve(lo, hi, t float64) float64 {
	if t <= lo {
		return 0
	}
	if t >= hi {
		return 1
	}
	return math.Sqrt((t - lo) / (hi - lo))
}

// TargetVolume returns the playback volume of def for a listener d tiles away
func TargetVolume(def core.SourceDefinition, d float64) float64 {
	floor, _, maximum := def.Radius.Clamped()
	return vmath.Clamp01(def.MaxIntensity) * (1 - Curve(floor, maximum, d))
}

// DuckCandidate returns the background music ceiling def requests for a listener d tiles away
func DuckCandidate(def core.SourceDefinition, d float64) float64 {
	_, shelf, maximum := def.Radius.Clamped()
	mini := vmath.Clamp01(def.MinDuckVolume)
	return Curve(shelf, maximum, d)*(1-mini) + mini
}
