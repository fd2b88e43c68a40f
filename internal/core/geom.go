// Package core provides fundamental types and utilities shared by the snake
// engine, the pathfinder and the platform drivers.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Cell is an integer grid coordinate. Cells compare by value.
type Cell struct {
	X, Y int
}

// Add returns the cell reached by moving one step in direction d.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// In reports whether the cell lies on a square grid of the given side.
func (c Cell) In(width int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < width
}

// Manhattan returns |dx| + |dy| between two cells.
func (c Cell) Manhattan(other Cell) int {
	return Abs(c.X-other.X) + Abs(c.Y-other.Y)
}

// String returns "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit step vector, or the zero vector before the snake moves.
type Direction struct {
	DX, DY int
}

// The four headings, in the fixed order used for neighbour expansion and
// fallback evaluation: right, left, down, up.
var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Down  = Direction{DX: 0, DY: 1}
	Up    = Direction{DX: 0, DY: -1}
)

// Directions lists the headings in expansion order.
// Callers must not modify it.
var Directions = [4]Direction{Right, Left, Down, Up}

// IsZero reports whether d is the "not moving yet" vector.
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// IsUnit reports whether d is one of the four headings.
func (d Direction) IsUnit() bool {
	return Abs(d.DX)+Abs(d.DY) == 1
}

// Opposite returns the reversed vector.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsReverseOf reports whether d points exactly against other.
// The zero vector is never a reverse.
func (d Direction) IsReverseOf(other Direction) bool {
	return !other.IsZero() && d == other.Opposite()
}

// Between returns the direction of a single step from a to b.
func Between(a, b Cell) Direction {
	return Direction{DX: b.X - a.X, DY: b.Y - a.Y}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	case Direction{}:
		return "none"
	default:
		return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
	}
}

// Rect represents an axis-aligned box on the screen.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
