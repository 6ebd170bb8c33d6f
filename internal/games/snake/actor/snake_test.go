package actor

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
)

var testGrid = Grid{W: 32, H: 24}

func snakeAt(dir core.Direction, body ...core.Point) *Snake {
	return &Snake{Body: body, Prev: slices.Clone(body), Dir: dir, Grid: testGrid}
}

func TestNewSnake(t *testing.T) {
	s := New(testGrid)

	expected := []core.Point{core.Pt(16, 12), core.Pt(15, 12), core.Pt(14, 12)}
	if !slices.Equal(s.Body, expected) {
		t.Errorf("Body = %v, expected %v", s.Body, expected)
	}
	if s.Dir != core.DirRight {
		t.Errorf("Dir = %v, expected right", s.Dir)
	}
}

func TestMoveForwardNormal(t *testing.T) {
	s := New(testGrid)
	before := slices.Clone(s.Body)

	res := s.MoveForward(false, false)
	if res.Outcome != Normal {
		t.Fatalf("MoveForward() outcome = %v, expected normal", res.Outcome)
	}
	if res.Head != core.Pt(17, 12) {
		t.Errorf("Head = %v, expected (17,12)", res.Head)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", s.Len())
	}
	if !slices.Equal(s.Prev, before) {
		t.Errorf("Prev = %v, expected pre-move snapshot %v", s.Prev, before)
	}
}

func TestMoveForwardWall(t *testing.T) {
	tests := []struct {
		name string
		dir  core.Direction
		head core.Point
	}{
		{"right edge", core.DirRight, core.Pt(31, 5)},
		{"left edge", core.DirLeft, core.Pt(0, 5)},
		{"top edge", core.DirUp, core.Pt(5, 0)},
		{"bottom edge", core.DirDown, core.Pt(5, 23)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := snakeAt(tc.dir, tc.head)
			before := slices.Clone(s.Body)

			res := s.MoveForward(false, false)
			if res.Outcome != WallCollision {
				t.Errorf("MoveForward() = %v, expected wall", res.Outcome)
			}
			if !slices.Equal(s.Body, before) {
				t.Errorf("body changed on collision: %v", s.Body)
			}
		})
	}
}

func TestMoveForwardWraps(t *testing.T) {
	s := snakeAt(core.DirRight, core.Pt(31, 5), core.Pt(30, 5))
	res := s.MoveForward(true, false)

	if res.Outcome != Normal || res.Head != core.Pt(0, 5) {
		t.Errorf("MoveForward(wrap) = %+v, expected normal at (0,5)", res)
	}
}

func TestMoveForwardPassThroughWraps(t *testing.T) {
	s := snakeAt(core.DirUp, core.Pt(4, 0), core.Pt(4, 1))
	res := s.MoveForward(false, true)

	if res.Outcome != Normal || res.Head != core.Pt(4, 23) {
		t.Errorf("MoveForward(passSelf) = %+v, expected normal at (4,23)", res)
	}
}

func TestMoveForwardSelf(t *testing.T) {
	// A square coil: moving up from (5,5) runs into (5,4).
	s := snakeAt(core.DirUp,
		core.Pt(5, 5), core.Pt(6, 5), core.Pt(6, 4), core.Pt(5, 4), core.Pt(4, 4))
	before := slices.Clone(s.Body)

	res := s.MoveForward(false, false)
	if res.Outcome != SelfCollision {
		t.Fatalf("MoveForward() = %v, expected self", res.Outcome)
	}
	if !slices.Equal(s.Body, before) {
		t.Errorf("body changed on collision: %v", s.Body)
	}

	res = s.MoveForward(false, true)
	if res.Outcome != Normal {
		t.Errorf("MoveForward(passSelf) = %v, expected normal", res.Outcome)
	}
}

func TestMoveForwardLengthInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	s := New(testGrid)
	s.Grow(7)

	for i := 0; i < 500; i++ {
		s.SetDirection(core.Directions[rng.Intn(4)])
		n := s.Len()
		res := s.MoveForward(true, rng.Intn(2) == 0)
		if res.Outcome == Normal && s.Len() != n {
			t.Fatalf("step %d: Len() = %d, expected %d", i, s.Len(), n)
		}
	}
}

func TestSetDirectionRejectsReverse(t *testing.T) {
	s := New(testGrid)

	if s.SetDirection(core.DirLeft) {
		t.Error("SetDirection(left) should be rejected while heading right")
	}
	if !s.SetDirection(core.DirUp) {
		t.Error("SetDirection(up) should be accepted")
	}
}

func TestGrowAndPopTail(t *testing.T) {
	s := New(testGrid)
	s.Grow(2)
	if s.Len() != 5 {
		t.Fatalf("Len() = %d, expected 5", s.Len())
	}

	for s.Len() > 3 {
		if _, ok := s.PopTail(3); !ok {
			t.Fatal("PopTail(3) should succeed above the floor")
		}
	}
	if _, ok := s.PopTail(3); ok {
		t.Error("PopTail(3) should refuse at the floor")
	}
}

func TestReverse(t *testing.T) {
	s := New(testGrid)
	s.Reverse()

	if s.Head() != core.Pt(14, 12) {
		t.Errorf("Head() = %v, expected old tail (14,12)", s.Head())
	}
	if s.Dir != core.DirLeft {
		t.Errorf("Dir = %v, expected left", s.Dir)
	}
}

func TestTruncate(t *testing.T) {
	s := New(testGrid)
	s.Grow(5)
	s.Truncate(4)
	if s.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", s.Len())
	}
	s.Truncate(0)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected floor of 1", s.Len())
	}
}
