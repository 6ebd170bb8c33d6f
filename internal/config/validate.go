package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

// Validation errors. Validate wraps them with the offending key.
var (
	ErrInvalidGrid        = errors.New("invalid grid")
	ErrInvalidInterval    = errors.New("invalid interval")
	ErrNegativeWeight     = errors.New("negative weight")
	ErrInvalidProbability = errors.New("probability outside [0,1]")
	ErrUnknownName        = errors.New("unknown name")
	ErrOutOfRange         = errors.New("value out of range")
)

// MinGridSize is the smallest playable board side.
const MinGridSize = 8

// Validate reports every problem in the configuration at once.
func (c SnakeConfig) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("config: "+format, args...))
	}

	if c.Grid.Width < MinGridSize || c.Grid.Height < MinGridSize {
		add("grid %dx%d: %w", c.Grid.Width, c.Grid.Height, ErrInvalidGrid)
	}

	if c.Timing.BaseTickMs <= 0 {
		add("timing.base_tick_ms %d: %w", c.Timing.BaseTickMs, ErrInvalidInterval)
	}
	if c.Timing.MinTickMs <= 0 || c.Timing.TickStepMs < 0 {
		add("timing.min_tick_ms/tick_step_ms: %w", ErrInvalidInterval)
	}
	if c.Timing.MaxSteps <= 0 {
		add("timing.max_steps %d: %w", c.Timing.MaxSteps, ErrInvalidInterval)
	}
	checkChance := func(key string, p float64) {
		if p < 0 || p > 1 {
			add("%s %v: %w", key, p, ErrInvalidProbability)
		}
	}
	checkChance("timing.dizzy_chance", c.Timing.DizzyChance)

	for i, r := range c.Spawn.Rules {
		if _, ok := fruit.ParseCategory(r.Category); !ok {
			add("spawn.rules[%d] category %q: %w", i, r.Category, ErrUnknownName)
		}
		if r.Interval < 0 || (r.Interval == 0 && !r.EveryTick) {
			add("spawn.rules[%d] interval %v: %w", i, r.Interval, ErrInvalidInterval)
		}
		checkChance(fmt.Sprintf("spawn.rules[%d].probability", i), r.Probability)
	}
	for i, r := range c.Spawn.Independent {
		if r.ID == "" {
			add("spawn.independent[%d] has no id: %w", i, ErrUnknownName)
		}
		checkChance(fmt.Sprintf("spawn.independent[%d].probability", i), r.Probability)
	}
	if c.Spawn.Portal.Every <= 0 {
		add("spawn.portal.every %v: %w", c.Spawn.Portal.Every, ErrInvalidInterval)
	}
	checkChance("spawn.portal.chance", c.Spawn.Portal.Chance)

	for id, o := range c.Fruits {
		if o.Weight != nil && *o.Weight < 0 {
			add("fruits.%s.weight %d: %w", id, *o.Weight, ErrNegativeWeight)
		}
		if o.Growth != nil && *o.Growth < 0 {
			add("fruits.%s.growth %d: %w", id, *o.Growth, ErrNegativeWeight)
		}
		if o.Lifetime != nil && *o.Lifetime < 0 {
			add("fruits.%s.lifetime %v: %w", id, *o.Lifetime, ErrInvalidInterval)
		}
	}

	for key, d := range c.Status {
		if _, ok := status.ParseName(key); !ok {
			add("status.%s: %w", key, ErrUnknownName)
		}
		if d < 0 {
			add("status.%s %v: %w", key, d, ErrInvalidInterval)
		}
	}

	h := c.Hazards
	if h.Explosive.Step <= 0 || h.Explosive.BleedInterval <= 0 {
		add("hazards.explosive: %w", ErrInvalidInterval)
	}
	if h.Explosive.Fraction <= 0 || h.Explosive.Fraction > 1 {
		add("hazards.explosive.fraction %v must be in (0,1]: %w", h.Explosive.Fraction, ErrOutOfRange)
	}
	if h.Damage.CrumbleEvery <= 0 || h.Damage.Flashes <= 0 {
		add("hazards.damage: %w", ErrInvalidInterval)
	}
	if h.Transform.SegmentEvery <= 0 || h.Transform.CellEvery <= 0 || h.Transform.CollapseRate <= 0 {
		add("hazards.transform: %w", ErrInvalidInterval)
	}

	if c.Rivals.ThinkEvery <= 0 || c.Rivals.BaseTickMs <= 0 || c.Rivals.MinTickMs <= 0 {
		add("rivals timing: %w", ErrInvalidInterval)
	}
	if c.Rivals.DropSpread < 0 {
		add("rivals.drop_spread %d: %w", c.Rivals.DropSpread, ErrOutOfRange)
	}
	if c.Rivals.SpawnMargin < 0 {
		add("rivals.spawn_margin %d: %w", c.Rivals.SpawnMargin, ErrOutOfRange)
	}
	checkChance("rivals.dizzy_chance", c.Rivals.DizzyChance)
	checkChance("rivals.wander_chance", c.Rivals.WanderChance)

	if c.Combo.Window < 0 {
		add("combo.window %v: %w", c.Combo.Window, ErrInvalidInterval)
	}

	return errors.Join(errs...)
}
