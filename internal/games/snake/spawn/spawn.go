// Package spawn decides when and where new consumables appear.
//
// Category rules accumulate time and roll their probability once per
// elapsed interval. Independent rules roll their probability on every tick.
// The two are kept separate because folding one into the other changes
// spawn rates.
package spawn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
)

// ErrInvalidRule is returned by Validate for a malformed rule.
var ErrInvalidRule = errors.New("invalid spawn rule")

// Retries bounds the rejection sampling in Place.
const Retries = 100

// Rule spawns a weighted pick from one category.
type Rule struct {
	Category fruit.Category
	// Interval is the accumulation period in seconds. An interval of zero
	// is only valid with EveryTick set.
	Interval  float64
	EveryTick bool
	// Probability is rolled once per elapsed interval.
	Probability float64
	// MaxCount caps live fruits of the category; 0 means unlimited.
	MaxCount             int
	Unlock               int
	PauseDuringTransform bool
}

// IndependentRule spawns one named consumable with a per-tick chance.
type IndependentRule struct {
	ID                   string
	Probability          float64
	MaxCount             int
	Unlock               int
	PauseDuringTransform bool
}

// DefaultRules returns the stock category rules.
func DefaultRules() []Rule {
	return []Rule{
		{Category: fruit.Trap, Interval: 3, Probability: 0.4, PauseDuringTransform: true},
		{Category: fruit.Power, EveryTick: true, Probability: 0.015, MaxCount: 1, Unlock: 10, PauseDuringTransform: true},
	}
}

// DefaultIndependentRules returns the stock independent rules.
func DefaultIndependentRules() []IndependentRule {
	return []IndependentRule{
		{ID: fruit.IDLucky, Probability: 0.003, MaxCount: 1, PauseDuringTransform: true},
		{ID: fruit.IDEgg, Probability: 0.008, MaxCount: 1, Unlock: 5, PauseDuringTransform: true},
	}
}

// Validate checks a category rule.
func (r Rule) Validate() error {
	var errs []error
	switch {
	case r.Interval < 0:
		errs = append(errs, fmt.Errorf("spawn: %v interval %v: %w", r.Category, r.Interval, ErrInvalidRule))
	case r.Interval == 0 && !r.EveryTick:
		errs = append(errs, fmt.Errorf("spawn: %v has no interval and is not per-tick: %w", r.Category, ErrInvalidRule))
	}
	if r.Probability < 0 || r.Probability > 1 {
		errs = append(errs, fmt.Errorf("spawn: %v probability %v: %w", r.Category, r.Probability, ErrInvalidRule))
	}
	if r.MaxCount < 0 || r.Unlock < 0 {
		errs = append(errs, fmt.Errorf("spawn: %v negative cap or unlock: %w", r.Category, ErrInvalidRule))
	}
	return errors.Join(errs...)
}

// Validate checks an independent rule against the registry.
func (r IndependentRule) Validate(reg *fruit.Registry) error {
	var errs []error
	if _, ok := reg.Get(r.ID); !ok {
		errs = append(errs, fmt.Errorf("spawn: rule %q: %w", r.ID, fruit.ErrUnknownFruit))
	}
	if r.Probability < 0 || r.Probability > 1 {
		errs = append(errs, fmt.Errorf("spawn: %q probability %v: %w", r.ID, r.Probability, ErrInvalidRule))
	}
	if r.MaxCount < 1 {
		errs = append(errs, fmt.Errorf("spawn: %q max count %d: %w", r.ID, r.MaxCount, ErrInvalidRule))
	}
	if r.Unlock < 0 {
		errs = append(errs, fmt.Errorf("spawn: %q unlock %d: %w", r.ID, r.Unlock, ErrInvalidRule))
	}
	return errors.Join(errs...)
}

// Place picks a random free cell by rejection sampling. It gives up after
// retries attempts.
func Place(g actor.Grid, blocked actor.Occupied, retries int, rng *rand.Rand) (core.Point, bool) {
	for i := 0; i < retries; i++ {
		p := core.Pt(rng.Intn(g.W), rng.Intn(g.H))
		if blocked == nil || !blocked(p) {
			return p, true
		}
	}
	return core.Point{}, false
}

// Env is the world view the scheduler needs for one tick.
type Env struct {
	Registry     *fruit.Registry
	Grid         actor.Grid
	Length       int
	Blocked      actor.Occupied
	Now          float64
	Transforming bool
}

// Stats counts scheduler results since the last reset.
type Stats struct {
	Spawned int
	Skipped int
}

// Scheduler evaluates the rules once per tick.
type Scheduler struct {
	rules       []Rule
	independent []IndependentRule
	timers      []float64
	stats       Stats
}

// NewScheduler builds a scheduler. Rules are evaluated in the given order.
func NewScheduler(rules []Rule, independent []IndependentRule) *Scheduler {
	return &Scheduler{
		rules:       append([]Rule(nil), rules...),
		independent: append([]IndependentRule(nil), independent...),
		timers:      make([]float64, len(rules)),
	}
}

// Validate checks every rule.
func (s *Scheduler) Validate(reg *fruit.Registry) error {
	var errs []error
	for _, r := range s.rules {
		errs = append(errs, r.Validate())
	}
	for _, r := range s.independent {
		errs = append(errs, r.Validate(reg))
	}
	return errors.Join(errs...)
}

// Rules returns the category rules.
func (s *Scheduler) Rules() []Rule { return s.rules }

// IndependentRules returns the independent rules.
func (s *Scheduler) IndependentRules() []IndependentRule { return s.independent }

// Stats returns the attempt counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Reset zeroes the interval accumulators and counters.
func (s *Scheduler) Reset() {
	for i := range s.timers {
		s.timers[i] = 0
	}
	s.stats = Stats{}
}

// Update advances the rules by dt and returns fruits with any new spawns
// appended. A failed placement skips the attempt.
func (s *Scheduler) Update(dt float64, fruits []fruit.Fruit, env Env, rng *rand.Rand) []fruit.Fruit {
	for i, r := range s.rules {
		if r.PauseDuringTransform && env.Transforming {
			continue
		}
		if env.Length < r.Unlock {
			continue
		}

		s.timers[i] += dt
		if s.timers[i] < r.Interval {
			continue
		}
		s.timers[i] = 0

		if !roll(rng, r.Probability) {
			continue
		}
		if r.MaxCount > 0 && fruit.Count(fruits, fruit.InCategory(r.Category)) >= r.MaxCount {
			continue
		}

		pos, ok := Place(env.Grid, s.blocked(env, fruits), Retries, rng)
		if !ok {
			s.stats.Skipped++
			continue
		}
		id, ok := env.Registry.RandomByCategory(r.Category, env.Length, rng)
		if !ok {
			continue
		}
		fruits = s.add(fruits, env, id, pos)
	}

	for _, r := range s.independent {
		if r.PauseDuringTransform && env.Transforming {
			continue
		}
		if env.Length < r.Unlock {
			continue
		}
		if fruit.Count(fruits, fruit.WithID(r.ID)) >= r.MaxCount {
			continue
		}
		if !roll(rng, r.Probability) {
			continue
		}

		pos, ok := Place(env.Grid, s.blocked(env, fruits), Retries, rng)
		if !ok {
			s.stats.Skipped++
			continue
		}
		fruits = s.add(fruits, env, r.ID, pos)
	}

	return fruits
}

func (s *Scheduler) add(fruits []fruit.Fruit, env Env, id string, pos core.Point) []fruit.Fruit {
	cfg, ok := env.Registry.Config(id)
	if !ok {
		return fruits
	}
	s.stats.Spawned++
	return append(fruits, fruit.Fruit{
		ID:       id,
		Category: cfg.Category,
		Pos:      pos,
		Born:     env.Now,
		Lifetime: cfg.Lifetime,
	})
}

func (s *Scheduler) blocked(env Env, fruits []fruit.Fruit) actor.Occupied {
	return actor.AnyOf(env.Blocked, func(p core.Point) bool {
		return actor.IndexAt(fruits, p) >= 0
	})
}

func roll(rng *rand.Rand, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}
