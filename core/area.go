package core

// Point is an integer tile coordinate
type Point struct {
	X, Y int
}

// Area represents a rectangular tile region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions
}
