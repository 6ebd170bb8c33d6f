package actor

import "github.com/vovakirdan/snake-arena/internal/core"

// Positioned is anything that sits on a single grid cell.
type Positioned interface {
	Position() core.Point
}

// CheckFood reports whether the head is on the food cell.
func CheckFood(head, food core.Point) bool {
	return head == food
}

// IndexAt returns the index of the first item on p, or -1.
func IndexAt[T Positioned](items []T, p core.Point) int {
	for i, it := range items {
		if it.Position() == p {
			return i
		}
	}
	return -1
}

// CheckFruit is IndexAt under the name the world step uses for
// consumables.
func CheckFruit[T Positioned](head core.Point, fruits []T) int {
	return IndexAt(fruits, head)
}

// Portal links two cells. Entering either end puts the head on the other.
type Portal struct {
	A, B     core.Point
	Born     float64
	Lifetime float64
	Hue      int // cosmetic variant
}

// Expired reports whether the portal has outlived its lifetime.
func (p Portal) Expired(now float64) bool {
	return now-p.Born >= p.Lifetime
}

// Exit returns the linked end for an entry cell.
func (p Portal) Exit(entry core.Point) (core.Point, bool) {
	switch entry {
	case p.A:
		return p.B, true
	case p.B:
		return p.A, true
	default:
		return core.Point{}, false
	}
}

// CheckPortal finds the portal whose end is at head and returns the entry
// and exit cells.
func CheckPortal(head core.Point, portals []Portal) (entry, exit core.Point, ok bool) {
	for _, p := range portals {
		if out, hit := p.Exit(head); hit {
			return head, out, true
		}
	}
	return core.Point{}, core.Point{}, false
}

// Teleport rewrites only the head to the exit cell. Trailing segments
// follow the relocated head on later moves.
func (s *Snake) Teleport(exit core.Point) {
	s.Body[0] = exit
}

// Occupied answers whether a cell is blocked for placement purposes.
type Occupied func(core.Point) bool

// AnyOf combines several occupancy tests.
func AnyOf(tests ...Occupied) Occupied {
	return func(p core.Point) bool {
		for _, t := range tests {
			if t != nil && t(p) {
				return true
			}
		}
		return false
	}
}

// CellSet builds an occupancy test from a list of cells.
func CellSet(cells ...[]core.Point) Occupied {
	set := make(map[core.Point]struct{})
	for _, cs := range cells {
		for _, c := range cs {
			set[c] = struct{}{}
		}
	}
	return func(p core.Point) bool {
		_, ok := set[p]
		return ok
	}
}
