// Package actor implements the snake body: movement, growth and the pure
// collision lookups used by the world step.
package actor

import "github.com/vovakirdan/snake-arena/internal/core"

// Grid is the playfield size in cells.
type Grid struct {
	W, H int
}

// Contains reports whether p is on the board.
func (g Grid) Contains(p core.Point) bool {
	return p.In(g.W, g.H)
}

// Outcome is the result variant of a movement step.
type Outcome int

const (
	Normal Outcome = iota
	WallCollision
	SelfCollision
)

func (o Outcome) String() string {
	switch o {
	case Normal:
		return "normal"
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "unknown"
	}
}

// MoveResult carries the outcome and, for Normal moves, the new head.
type MoveResult struct {
	Outcome Outcome
	Head    core.Point
}

// Snake is an ordered body (head first), a heading and the body as it
// was before the last move. Prev is only for interpolated drawing.
type Snake struct {
	Body []core.Point
	Prev []core.Point
	Dir  core.Direction
	Grid Grid
}

// New creates the starting three-segment snake in the middle of the grid,
// heading right.
func New(g Grid) *Snake {
	s := &Snake{Grid: g}
	s.Reset()
	return s
}

// Reset restores the starting body and heading.
func (s *Snake) Reset() {
	cx, cy := s.Grid.W/2, s.Grid.H/2
	s.Body = []core.Point{core.Pt(cx, cy), core.Pt(cx-1, cy), core.Pt(cx-2, cy)}
	s.Prev = clonePoints(s.Body)
	s.Dir = core.DirRight
}

// Head returns the first segment.
func (s *Snake) Head() core.Point {
	return s.Body[0]
}

// Tail returns the last segment.
func (s *Snake) Tail() core.Point {
	return s.Body[len(s.Body)-1]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Next returns the cell the head would step into, before wrapping.
func (s *Snake) Next() core.Point {
	return s.Head().Add(s.Dir)
}

// MoveForward advances the body one cell. Length is unchanged on a Normal
// move; on a collision the body is left untouched. Wrapping applies when
// wrap is set or when the actor may pass through itself.
func (s *Snake) MoveForward(wrap, canPassSelf bool) MoveResult {
	s.Prev = clonePoints(s.Body)

	head := s.Next()
	if wrap || canPassSelf {
		head = head.Wrap(s.Grid.W, s.Grid.H)
	} else if !s.Grid.Contains(head) {
		return MoveResult{Outcome: WallCollision}
	}

	if !canPassSelf && s.Occupies(head) {
		return MoveResult{Outcome: SelfCollision}
	}

	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = head
	return MoveResult{Outcome: Normal, Head: head}
}

// Occupies reports whether any segment is on p.
func (s *Snake) Occupies(p core.Point) bool {
	for _, b := range s.Body {
		if b == p {
			return true
		}
	}
	return false
}

// SetDirection changes heading unless d is the exact reverse of the
// current one.
func (s *Snake) SetDirection(d core.Direction) bool {
	if len(s.Body) > 1 && d.IsOpposite(s.Dir) {
		return false
	}
	s.Dir = d
	return true
}

// Grow appends n copies of the tail; they separate on following moves.
func (s *Snake) Grow(n int) {
	tail := s.Tail()
	for i := 0; i < n; i++ {
		s.Body = append(s.Body, tail)
		s.Prev = append(s.Prev, tail)
	}
}

// PopTail removes the last segment while more than keep remain. It
// returns the removed cell.
func (s *Snake) PopTail(keep int) (core.Point, bool) {
	if keep < 1 {
		keep = 1
	}
	if len(s.Body) <= keep {
		return core.Point{}, false
	}
	tail := s.Tail()
	s.Body = s.Body[:len(s.Body)-1]
	if len(s.Prev) > len(s.Body) {
		s.Prev = s.Prev[:len(s.Body)]
	}
	return tail, true
}

// Truncate cuts the body to n segments (at least one).
func (s *Snake) Truncate(n int) {
	n = max(n, 1)
	if n >= len(s.Body) {
		return
	}
	s.Body = s.Body[:n]
	if len(s.Prev) > n {
		s.Prev = s.Prev[:n]
	}
}

// Reverse turns the snake around: the tail becomes the head and the
// heading points away from the new second segment.
func (s *Snake) Reverse() {
	for i, j := 0, len(s.Body)-1; i < j; i, j = i+1, j-1 {
		s.Body[i], s.Body[j] = s.Body[j], s.Body[i]
	}
	s.Prev = clonePoints(s.Body)
	if len(s.Body) < 2 {
		s.Dir = s.Dir.Opposite()
		return
	}
	if d, ok := core.DirectionBetween(s.Body[1], s.Body[0]); ok {
		s.Dir = d
		return
	}
	s.Dir = s.Dir.Opposite()
}

// Replace installs a new body and heading, e.g. when a transformation
// ends. Prev is reset so nothing interpolates across the jump.
func (s *Snake) Replace(body []core.Point, dir core.Direction) {
	s.Body = clonePoints(body)
	s.Prev = clonePoints(body)
	s.Dir = dir
}

// Clone returns a deep copy.
func (s *Snake) Clone() *Snake {
	return &Snake{
		Body: clonePoints(s.Body),
		Prev: clonePoints(s.Prev),
		Dir:  s.Dir,
		Grid: s.Grid,
	}
}

func clonePoints(ps []core.Point) []core.Point {
	out := make([]core.Point, len(ps))
	copy(out, ps)
	return out
}
