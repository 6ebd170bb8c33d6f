// Package fruit implements the consumable system: the behavior interface,
// the execution context handed to behaviors, the registry with weighted,
// unlock-gated selection and the built-in consumables.
package fruit

import (
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// Category groups consumables for spawning.
type Category int

const (
	Normal Category = iota
	Trap
	Power
	Special
)

// Categories lists every category in declaration order.
var Categories = [...]Category{Normal, Trap, Power, Special}

func (c Category) String() string {
	switch c {
	case Normal:
		return "normal"
	case Trap:
		return "trap"
	case Power:
		return "power"
	case Special:
		return "special"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory maps a config name to a category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// Config is the static description of a consumable.
type Config struct {
	ID       string
	Name     string
	Category Category
	Color    core.Color
	Glyph    rune

	// Lifetime in seconds; 0 means the consumable never expires.
	Lifetime float64

	// Weight is the base spawn weight within the category.
	Weight int

	// Unlock is the minimum snake length before the consumable is eligible.
	Unlock int

	// Growth adds one weight per Growth segments above Unlock. 0 disables it.
	Growth int
}

// EffectiveWeight returns the spawn weight at the given snake length.
func (c Config) EffectiveWeight(length int) int {
	if c.Growth <= 0 {
		return c.Weight
	}
	return c.Weight + max(0, (length-c.Unlock)/c.Growth)
}

// Unlocked reports whether the consumable may spawn at this length.
func (c Config) Unlocked(length int) bool {
	return c.Unlock <= length
}

// Outcome tells the world what to do after a consumption.
type Outcome struct {
	EndGame    bool
	ResetCombo bool
	Score      int
}

// Continue is the empty outcome.
var Continue = Outcome{}

// Fruit is a live consumable on the board.
type Fruit struct {
	ID       string
	Category Category
	Pos      core.Point
	Born     float64
	Lifetime float64
}

// Position implements actor.Positioned.
func (f Fruit) Position() core.Point {
	return f.Pos
}

// Remaining returns the seconds left before expiry, or -1 for a permanent
// consumable.
func (f Fruit) Remaining(now float64) float64 {
	if f.Lifetime <= 0 {
		return -1
	}
	return max(0, f.Lifetime-(now-f.Born))
}

// Expired reports whether the lifetime has run out.
func (f Fruit) Expired(now float64) bool {
	return f.Lifetime > 0 && now-f.Born >= f.Lifetime
}

// Count returns how many live fruits match the predicate.
func Count(fruits []Fruit, match func(Fruit) bool) int {
	n := 0
	for _, f := range fruits {
		if match(f) {
			n++
		}
	}
	return n
}

// InCategory matches fruits of one category.
func InCategory(c Category) func(Fruit) bool {
	return func(f Fruit) bool { return f.Category == c }
}

// WithID matches fruits of one identifier.
func WithID(id string) func(Fruit) bool {
	return func(f Fruit) bool { return f.ID == id }
}
