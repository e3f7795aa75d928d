// Package core provides fundamental types and utilities for the gravity puzzle.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"fmt"
	"math"
)

// Dir is a gravity direction. The zero value means "no direction".
type Dir int

const (
	DirNone Dir = iota
	DirRight
	DirUp
	DirLeft
	DirDown
)

var (
	dirX = [...]int{0, 1, 0, -1, 0}
	dirY = [...]int{0, 0, -1, 0, 1}
)

// Directions lists the four real directions in action order.
var Directions = [...]Dir{DirRight, DirUp, DirLeft, DirDown}

// Delta returns the unit grid offset for the direction.
func (d Dir) Delta() (dx, dy int) {
	if d < DirNone || d > DirDown {
		return 0, 0
	}
	return dirX[d], dirY[d]
}

// Vec returns the direction as a unit vector.
func (d Dir) Vec() Vec {
	dx, dy := d.Delta()
	return Vec{X: float64(dx), Y: float64(dy)}
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirRight:
		return DirLeft
	case DirLeft:
		return DirRight
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// String returns a human-readable name for the direction.
func (d Dir) String() string {
	switch d {
	case DirNone:
		return "none"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}

// Coord is an integer grid cell.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the difference of two coordinates.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Step returns the neighbouring cell in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Vec converts the cell to a fractional position.
func (c Coord) Vec() Vec {
	return Vec{X: float64(c.X), Y: float64(c.Y)}
}

// Vec is a fractional 2D position or offset, used for rendering and particles.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Length returns the euclidean length.
func (v Vec) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector in the direction of v.
// Near-zero vectors become zero, or {1, 0} when forceUnit is set.
func (v Vec) Normalize(forceUnit bool) Vec {
	const threshold = 0.001

	l := v.Length()
	if l < threshold {
		if forceUnit {
			return Vec{X: 1}
		}
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// ApproachValue moves cur toward target by at most step without overshooting.
func ApproachValue(cur, target, step float64) float64 {
	if cur < target {
		return math.Min(cur+step, target)
	}
	return math.Max(cur-step, target)
}

// Rect represents an axis-aligned rectangle in screen cells.
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

// Contains returns true if the cell is inside this rectangle.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.X && c.X < r.Right() && c.Y >= r.Y && c.Y < r.Bottom()
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
