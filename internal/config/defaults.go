package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Width:  32,
			Height: 24,
			Wrap:   true,
		},
		Timing: SnakeTiming{
			BaseTickMs:  120,
			MinTickMs:   40,
			TickStepMs:  5,
			MaxSteps:    5,
			DizzyChance: 0.4,
		},
		Spawn: SnakeSpawn{
			Rules: []CategoryRule{
				{Category: "trap", Interval: 3, Probability: 0.4, PauseDuringTransform: true},
				{Category: "power", EveryTick: true, Probability: 0.015, MaxCount: 1, Unlock: 10, PauseDuringTransform: true},
			},
			Independent: []IndependentRule{
				{ID: "lucky", Probability: 0.003, MaxCount: 1, PauseDuringTransform: true},
				{ID: "snake_egg", Probability: 0.008, MaxCount: 1, Unlock: 5, PauseDuringTransform: true},
			},
			Portal: PortalRule{
				Every:    15,
				Chance:   0.3,
				Lifetime: 20,
			},
		},
		Status: map[string]float64{
			"shield": 10,
			"speed":  5,
			"ghost":  5,
			"frozen": 2,
			"slow":   4,
			"dizzy":  5,
			"slime":  4,
		},
		Hazards: SnakeHazards{
			Explosive: ExplosiveTimings{
				Step:          0.3,
				Fraction:      0.5,
				AfterEffect:   20,
				BleedInterval: 0.5,
			},
			Damage: DamageTimings{
				Flash:         0.6,
				Flashes:       4,
				CrumbleEvery:  0.15,
				StainLifetime: 5,
			},
			Transform: TransformTimings{
				Flash:        1.5,
				SegmentEvery: 0.08,
				CellEvery:    0.02,
				FilledFlash:  1.5,
				CollapseRate: 0.8,
				Bonus:        100,
				DevourFruit:  5,
				DevourFood:   1,
			},
		},
		Rivals: SnakeRivals{
			MaxCount:      3,
			ThinkEvery:    0.2,
			BaseTickMs:    150,
			MinTickMs:     60,
			TickStepMs:    5,
			DizzyChance:   0.4,
			WanderChance:  0.1,
			SpawnMargin:   3,
			SpawnAttempts: 100,
			MinLength:     3,
			MaxLength:     5,
			DropLifetime:  10,
			DropSpread:    1,
			DevourScore:   2,
		},
		Combo: SnakeCombo{
			Window: 1.5,
		},
		Audio: SnakeAudio{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game mode.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake", "snake_walls":
		return defaultSnakeYAML
	default:
		return nil
	}
}
