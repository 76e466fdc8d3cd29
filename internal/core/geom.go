// Package core provides fundamental types and utilities for the runner.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an integer rectangle in screen cells, used by the Screen buffer.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in world units, used for collision detection.
type Box struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewBox creates a new box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Inset shrinks the box by the given margins on each side.
func (b Box) Inset(left, top, right, bottom float64) Box {
	return Box{
		X: b.X + left,
		Y: b.Y + top,
		W: b.W - left - right,
		H: b.H - top - bottom,
	}
}

// Overlaps reports whether two boxes overlap.
// The test is strict on all four sides: touching edges do not count.
func (b Box) Overlaps(other Box) bool {
	return b.X < other.Right() && b.Right() > other.X &&
		b.Y < other.Bottom() && b.Bottom() > other.Y
}

// Circle is a circle in world units.
type Circle struct {
	CX, CY float64 // Center
	R      float64 // Radius
}

// IntersectsBox reports whether the circle touches or overlaps the box,
// using the closest point of the box to the circle center.
func (c Circle) IntersectsBox(b Box) bool {
	closestX := ClampF(c.CX, b.X, b.Right())
	closestY := ClampF(c.CY, b.Y, b.Bottom())
	dx := c.CX - closestX
	dy := c.CY - closestY
	return dx*dx+dy*dy <= c.R*c.R
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
