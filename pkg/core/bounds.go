// Package core holds the shared data types and the error model for the
// dump/plan/run pipeline.
package core

// Bounds represents element position and size in screen pixels.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundsFromCorners builds Bounds from the corner notation [x1,y1][x2,y2].
// Inverted (x2 < x1, y2 < y1) or negative boxes are clamped to zero-area
// instead of rejected: partially-stale dumps are common and must not
// abort the whole pipeline.
func BoundsFromCorners(x1, y1, x2, y2 int) Bounds {
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Bounds{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Center returns the center point of the bounds.
func (b Bounds) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Area returns the pixel area of the bounds.
func (b Bounds) Area() int {
	return b.Width * b.Height
}

// IsZero reports whether the bounds carry no usable geometry.
func (b Bounds) IsZero() bool {
	return b.Width <= 0 || b.Height <= 0
}
