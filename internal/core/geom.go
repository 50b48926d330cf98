// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an integer cell rectangle used for screen drawing.
type Rect struct {
	X, Y int // Top-left cell
	W, H int // Width and height in cells
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned box in world units.
// Y grows downward, so Min is the top-left corner and Max the bottom-right.
type Box struct {
	Min, Max Vec2
}

// BoxAround returns the box of the given size centered on c.
func BoxAround(c Vec2, w, h float64) Box {
	hw, hh := w/2, h/2
	return Box{
		Min: Vec2{X: c.X - hw, Y: c.Y - hh},
		Max: Vec2{X: c.X + hw, Y: c.Y + hh},
	}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Center returns the midpoint of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Corners returns the corners clockwise from the top-left:
// top-left, top-right, bottom-right, bottom-left.
func (b Box) Corners() [4]Vec2 {
	return [4]Vec2{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// Cell returns the screen rectangle nearest the box, at least 1×1.
func (b Box) Cell() Rect {
	x := int(math.Round(b.Min.X))
	y := int(math.Round(b.Min.Y))
	w := int(math.Round(b.Width()))
	h := int(math.Round(b.Height()))
	return NewRect(x, y, Max(w, 1), Max(h, 1))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
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

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
