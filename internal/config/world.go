package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/hazard"
	"github.com/vovakirdan/snake-arena/internal/games/snake/rival"
	"github.com/vovakirdan/snake-arena/internal/games/snake/spawn"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
	"github.com/vovakirdan/snake-arena/internal/games/snake/world"
)

// Durations converts the status section. Missing keys keep the stock value.
func (c SnakeConfig) Durations() status.Durations {
	d := status.DefaultDurations()
	for key, v := range c.Status {
		if n, ok := status.ParseName(key); ok {
			d[n] = v
		}
	}
	return d
}

// World converts the configuration into a world configuration.
func (c SnakeConfig) World() (world.Config, error) {
	if err := c.Validate(); err != nil {
		return world.Config{}, err
	}

	durations := c.Durations()
	wc := world.Config{
		Grid:        actor.Grid{W: c.Grid.Width, H: c.Grid.Height},
		Wrap:        c.Grid.Wrap,
		BaseTickMs:  c.Timing.BaseTickMs,
		MinTickMs:   c.Timing.MinTickMs,
		TickStepMs:  c.Timing.TickStepMs,
		FixedSpeed:  c.Timing.FixedSpeed,
		MaxSteps:    c.Timing.MaxSteps,
		DizzyChance: c.Timing.DizzyChance,
		ComboWindow: c.Combo.Window,
		Portals: world.PortalConfig{
			Every:    c.Spawn.Portal.Every,
			Chance:   c.Spawn.Portal.Chance,
			Lifetime: c.Spawn.Portal.Lifetime,
		},
		Durations: durations,
		Explosive: hazard.ExplosiveConfig{
			Step:          c.Hazards.Explosive.Step,
			Fraction:      c.Hazards.Explosive.Fraction,
			AfterEffect:   c.Hazards.Explosive.AfterEffect,
			BleedInterval: c.Hazards.Explosive.BleedInterval,
		},
		Damage: hazard.DamageConfig{
			Flash:         c.Hazards.Damage.Flash,
			Flashes:       c.Hazards.Damage.Flashes,
			CrumbleEvery:  c.Hazards.Damage.CrumbleEvery,
			StainLifetime: c.Hazards.Damage.StainLifetime,
		},
		Transform: hazard.TransformConfig{
			Flash:        c.Hazards.Transform.Flash,
			SegmentEvery: c.Hazards.Transform.SegmentEvery,
			CellEvery:    c.Hazards.Transform.CellEvery,
			FilledFlash:  c.Hazards.Transform.FilledFlash,
			CollapseRate: c.Hazards.Transform.CollapseRate,
			Bonus:        c.Hazards.Transform.Bonus,
		},
		Rivals: rival.Config{
			MaxCount:      c.Rivals.MaxCount,
			ThinkEvery:    c.Rivals.ThinkEvery,
			BaseTickMs:    c.Rivals.BaseTickMs,
			MinTickMs:     c.Rivals.MinTickMs,
			TickStepMs:    c.Rivals.TickStepMs,
			DizzyChance:   c.Rivals.DizzyChance,
			WanderChance:  c.Rivals.WanderChance,
			SpawnMargin:   c.Rivals.SpawnMargin,
			SpawnAttempts: c.Rivals.SpawnAttempts,
			MinLength:     c.Rivals.MinLength,
			MaxLength:     c.Rivals.MaxLength,
			DropLifetime:  c.Rivals.DropLifetime,
			DropSpread:    c.Rivals.DropSpread,
			DevourScore:   c.Rivals.DevourScore,
			Durations:     durations,
		},
		DevourFruit: c.Hazards.Transform.DevourFruit,
		DevourFood:  c.Hazards.Transform.DevourFood,
	}

	for _, r := range c.Spawn.Rules {
		cat, _ := fruit.ParseCategory(r.Category)
		wc.Rules = append(wc.Rules, spawn.Rule{
			Category:             cat,
			Interval:             r.Interval,
			EveryTick:            r.EveryTick,
			Probability:          r.Probability,
			MaxCount:             r.MaxCount,
			Unlock:               r.Unlock,
			PauseDuringTransform: r.PauseDuringTransform,
		})
	}
	for _, r := range c.Spawn.Independent {
		wc.Independent = append(wc.Independent, spawn.IndependentRule{
			ID:                   r.ID,
			Probability:          r.Probability,
			MaxCount:             r.MaxCount,
			Unlock:               r.Unlock,
			PauseDuringTransform: r.PauseDuringTransform,
		})
	}
	return wc, nil
}

// Registry returns the built-in consumables with the fruits section
// applied.
func (c SnakeConfig) Registry() (*fruit.Registry, error) {
	reg := fruit.Builtin()
	var errs []error
	for id, o := range c.Fruits {
		err := reg.Tune(id, func(fc *fruit.Config) {
			if o.Weight != nil {
				fc.Weight = *o.Weight
			}
			if o.Lifetime != nil {
				fc.Lifetime = *o.Lifetime
			}
			if o.Unlock != nil {
				fc.Unlock = *o.Unlock
			}
			if o.Growth != nil {
				fc.Growth = *o.Growth
			}
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("config: fruits.%s: %w", id, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Build returns the world configuration and registry together.
func (c SnakeConfig) Build() (world.Config, *fruit.Registry, error) {
	wc, err := c.World()
	if err != nil {
		return world.Config{}, nil, err
	}
	reg, err := c.Registry()
	if err != nil {
		return world.Config{}, nil, err
	}
	if err := wc.Validate(reg); err != nil {
		return world.Config{}, nil, err
	}
	return wc, reg, nil
}
