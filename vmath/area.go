package vmath

import "github.com/lixenwraith/positional-audio/core"

// AreaContains checks if point is within area
// Area spans [X, X+Width) x [Y, Y+Height); zero or negative dimensions contain nothing
func AreaContains(a core.Area, p core.Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width && p.Y >= a.Y && p.Y < a.Y+a.Height
}
