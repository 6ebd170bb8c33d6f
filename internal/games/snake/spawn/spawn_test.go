package spawn

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
)

var grid = actor.Grid{W: 32, H: 24}

func env(length int) Env {
	return Env{Registry: fruit.Builtin(), Grid: grid, Length: length}
}

func TestCategoryRuleRollsOncePerInterval(t *testing.T) {
	s := NewScheduler([]Rule{{Category: fruit.Trap, Interval: 1, Probability: 1}}, nil)
	rng := rand.New(rand.NewSource(1))

	var fruits []fruit.Fruit
	for i := 0; i < 3; i++ {
		fruits = s.Update(0.25, fruits, env(3), rng)
	}
	if len(fruits) != 0 {
		t.Fatalf("len(fruits) = %d before the interval elapsed, expected 0", len(fruits))
	}

	fruits = s.Update(0.25, fruits, env(3), rng)
	if len(fruits) != 1 {
		t.Fatalf("len(fruits) = %d after one interval, expected 1", len(fruits))
	}
	if fruits[0].Category != fruit.Trap {
		t.Errorf("Category = %v, expected trap", fruits[0].Category)
	}

	fruits = s.Update(0.25, fruits, env(3), rng)
	if len(fruits) != 1 {
		t.Errorf("accumulator should reset after an interval, got %d fruits", len(fruits))
	}
}

func TestEveryTickRule(t *testing.T) {
	s := NewScheduler([]Rule{{Category: fruit.Trap, EveryTick: true, Probability: 1}}, nil)
	rng := rand.New(rand.NewSource(1))

	var fruits []fruit.Fruit
	for i := 0; i < 5; i++ {
		fruits = s.Update(0.01, fruits, env(3), rng)
	}
	if len(fruits) != 5 {
		t.Errorf("len(fruits) = %d, expected 5", len(fruits))
	}
}

func TestRuleCapAndUnlock(t *testing.T) {
	s := NewScheduler([]Rule{{Category: fruit.Power, EveryTick: true, Probability: 1, MaxCount: 1, Unlock: 10}}, nil)
	rng := rand.New(rand.NewSource(2))

	var fruits []fruit.Fruit
	fruits = s.Update(0.1, fruits, env(9), rng)
	if len(fruits) != 0 {
		t.Fatalf("len(fruits) = %d below unlock, expected 0", len(fruits))
	}

	for i := 0; i < 10; i++ {
		fruits = s.Update(0.1, fruits, env(10), rng)
	}
	if len(fruits) != 1 {
		t.Errorf("len(fruits) = %d, expected cap of 1", len(fruits))
	}
}

func TestIndependentRule(t *testing.T) {
	s := NewScheduler(nil, []IndependentRule{{ID: fruit.IDEgg, Probability: 1, MaxCount: 2, Unlock: 5}})
	rng := rand.New(rand.NewSource(3))

	var fruits []fruit.Fruit
	fruits = s.Update(0.1, fruits, env(4), rng)
	if len(fruits) != 0 {
		t.Fatalf("len(fruits) = %d below unlock, expected 0", len(fruits))
	}

	for i := 0; i < 5; i++ {
		fruits = s.Update(0.1, fruits, env(5), rng)
	}
	if len(fruits) != 2 {
		t.Fatalf("len(fruits) = %d, expected cap of 2", len(fruits))
	}
	for _, f := range fruits {
		if f.ID != fruit.IDEgg || f.Lifetime != fruit.EggLifetime {
			t.Errorf("fruit = %+v, expected a snake egg", f)
		}
	}
}

func TestPauseDuringTransform(t *testing.T) {
	s := NewScheduler(
		[]Rule{{Category: fruit.Trap, EveryTick: true, Probability: 1, PauseDuringTransform: true}},
		[]IndependentRule{{ID: fruit.IDLucky, Probability: 1, MaxCount: 1, PauseDuringTransform: true}},
	)
	e := env(3)
	e.Transforming = true

	fruits := s.Update(1, nil, e, rand.New(rand.NewSource(4)))
	if len(fruits) != 0 {
		t.Errorf("len(fruits) = %d during transformation, expected 0", len(fruits))
	}
}

func TestFullBoardSkips(t *testing.T) {
	s := NewScheduler([]Rule{{Category: fruit.Trap, EveryTick: true, Probability: 1}}, nil)
	e := env(3)
	e.Blocked = func(core.Point) bool { return true }

	fruits := s.Update(0.1, nil, e, rand.New(rand.NewSource(5)))
	if len(fruits) != 0 {
		t.Errorf("len(fruits) = %d on a full board, expected 0", len(fruits))
	}
	if s.Stats().Skipped != 1 {
		t.Errorf("Skipped = %d, expected 1", s.Stats().Skipped)
	}
}

func TestPlaceAvoidsBlocked(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	blocked := func(p core.Point) bool { return p.X < 31 }

	for i := 0; i < 20; i++ {
		p, ok := Place(grid, blocked, 1000, rng)
		if !ok {
			continue
		}
		if p.X != 31 {
			t.Fatalf("Place() = %v, expected a cell in the free column", p)
		}
	}
}

func TestSpawnedFruitsDoNotOverlap(t *testing.T) {
	s := NewScheduler([]Rule{{Category: fruit.Trap, EveryTick: true, Probability: 1}}, nil)
	rng := rand.New(rand.NewSource(7))

	var fruits []fruit.Fruit
	for i := 0; i < 200; i++ {
		fruits = s.Update(0.1, fruits, env(3), rng)
	}
	seen := map[core.Point]bool{}
	for _, f := range fruits {
		if seen[f.Pos] {
			t.Fatalf("two fruits at %v", f.Pos)
		}
		seen[f.Pos] = true
	}
}

func TestValidate(t *testing.T) {
	reg := fruit.Builtin()
	tests := []struct {
		name  string
		rules []Rule
		ind   []IndependentRule
		err   error
	}{
		{"defaults", DefaultRules(), DefaultIndependentRules(), nil},
		{"zero interval", []Rule{{Category: fruit.Trap, Probability: 1}}, nil, ErrInvalidRule},
		{"negative interval", []Rule{{Category: fruit.Trap, Interval: -1, Probability: 1}}, nil, ErrInvalidRule},
		{"probability", []Rule{{Category: fruit.Trap, Interval: 1, Probability: 1.5}}, nil, ErrInvalidRule},
		{"unknown fruit", nil, []IndependentRule{{ID: "nope", Probability: 0.1, MaxCount: 1}}, fruit.ErrUnknownFruit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewScheduler(tc.rules, tc.ind).Validate(reg)
			if tc.err == nil && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if tc.err != nil && !errors.Is(err, tc.err) {
				t.Errorf("Validate() = %v, expected %v", err, tc.err)
			}
		})
	}
}
