package vmath

import (
	"math"

	"github.com/lixenwraith/positional-audio/core"
)

// Vec2 is a float position in tile units
type Vec2 struct {
	X, Y float64
}

// Distance returns the euclidean distance between a and b
func Distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// TileCenter returns the center of a tile in tile units
func TileCenter(p core.Point) Vec2 {
	return Vec2{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

// TileOf returns the tile containing v
func TileOf(v Vec2) core.Point {
	return core.Point{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
