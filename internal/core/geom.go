// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It has no external dependencies so
// game logic stays pure and testable.
package core

// Point is an integer grid coordinate. Points are comparable and are used
// directly as map keys for collision lookups.
type Point struct {
	X, Y int
}

// Pt is shorthand for constructing a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by the direction's unit vector.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// In reports whether p lies inside a w x h grid anchored at the origin.
func (p Point) In(w, h int) bool {
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}

// Wrap folds p back into a w x h grid, torus style.
func (p Point) Wrap(w, h int) Point {
	return Point{X: mod(p.X, w), Y: mod(p.Y, h)}
}

// DistSq returns the squared straight-line distance between two points.
func (p Point) DistSq(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Manhattan returns the taxicab distance between two points.
func (p Point) Manhattan(o Point) int {
	return Abs(p.X-o.X) + Abs(p.Y-o.Y)
}

func mod(a, n int) int {
	if n <= 0 {
		return a
	}
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// Direction is one of the four cardinal directions.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Directions lists the cardinal directions in search order
// (up, down, left, right).
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit vector for the direction. Screen coordinates:
// y grows downward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// IsOpposite reports whether o is the exact reverse of d.
func (d Direction) IsOpposite(o Direction) bool {
	return d.Opposite() == o
}

// Clockwise returns the direction after a right turn.
func (d Direction) Clockwise() Direction {
	return (d + 1) % 4
}

// CounterClockwise returns the direction after a left turn.
func (d Direction) CounterClockwise() Direction {
	return (d + 3) % 4
}

// DirectionBetween returns the direction pointing from a to an adjacent b.
// ok is false when the points are not orthogonal neighbours.
func DirectionBetween(a, b Point) (Direction, bool) {
	for _, d := range Directions {
		if a.Add(d) == b {
			return d, true
		}
	}
	return DirRight, false
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
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

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
