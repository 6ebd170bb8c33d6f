// Package config provides YAML-based configuration loading and difficulty
// presets for the arena.
package config

// SnakeConfig contains all configuration for the snake world.
type SnakeConfig struct {
	Grid    SnakeGrid                `yaml:"grid"`
	Timing  SnakeTiming              `yaml:"timing"`
	Spawn   SnakeSpawn               `yaml:"spawn"`
	Fruits  map[string]FruitOverride `yaml:"fruits"`
	Status  map[string]float64       `yaml:"status"`
	Hazards SnakeHazards             `yaml:"hazards"`
	Rivals  SnakeRivals              `yaml:"rivals"`
	Combo   SnakeCombo               `yaml:"combo"`
	Audio   SnakeAudio               `yaml:"audio"`
}

// SnakeGrid defines the board.
type SnakeGrid struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Wrap   bool `yaml:"wrap"`
}

// SnakeTiming defines the player's step interval and the frame budget.
type SnakeTiming struct {
	BaseTickMs  int     `yaml:"base_tick_ms"`
	MinTickMs   int     `yaml:"min_tick_ms"`
	TickStepMs  int     `yaml:"tick_step_ms"`
	FixedSpeed  bool    `yaml:"fixed_speed"`
	MaxSteps    int     `yaml:"max_steps"`
	DizzyChance float64 `yaml:"dizzy_chance"`
}

// SnakeSpawn holds every spawn rule.
type SnakeSpawn struct {
	Rules       []CategoryRule    `yaml:"rules"`
	Independent []IndependentRule `yaml:"independent"`
	Portal      PortalRule        `yaml:"portal"`
}

// CategoryRule spawns a weighted pick from a category.
type CategoryRule struct {
	Category             string  `yaml:"category"`
	Interval             float64 `yaml:"interval"`
	EveryTick            bool    `yaml:"every_tick"`
	Probability          float64 `yaml:"probability"`
	MaxCount             int     `yaml:"max_count"`
	Unlock               int     `yaml:"unlock"`
	PauseDuringTransform bool    `yaml:"pause_during_transform"`
}

// IndependentRule spawns one named consumable with a per-tick chance.
type IndependentRule struct {
	ID                   string  `yaml:"id"`
	Probability          float64 `yaml:"probability"`
	MaxCount             int     `yaml:"max_count"`
	Unlock               int     `yaml:"unlock"`
	PauseDuringTransform bool    `yaml:"pause_during_transform"`
}

// PortalRule controls portal pairs.
type PortalRule struct {
	Every    float64 `yaml:"every"`
	Chance   float64 `yaml:"chance"`
	Lifetime float64 `yaml:"lifetime"`
}

// FruitOverride replaces selected fields of a built-in consumable. Nil
// fields keep the built-in value.
type FruitOverride struct {
	Weight   *int     `yaml:"weight,omitempty"`
	Lifetime *float64 `yaml:"lifetime,omitempty"`
	Unlock   *int     `yaml:"unlock,omitempty"`
	Growth   *int     `yaml:"growth,omitempty"`
}

// SnakeHazards holds the hazard timings.
type SnakeHazards struct {
	Explosive ExplosiveTimings `yaml:"explosive"`
	Damage    DamageTimings    `yaml:"damage"`
	Transform TransformTimings `yaml:"transform"`
}

// ExplosiveTimings defines the explosive hazard.
type ExplosiveTimings struct {
	Step          float64 `yaml:"step"`
	Fraction      float64 `yaml:"fraction"`
	AfterEffect   float64 `yaml:"after_effect"`
	BleedInterval float64 `yaml:"bleed_interval"`
}

// DamageTimings defines the crumble animation.
type DamageTimings struct {
	Flash         float64 `yaml:"flash"`
	Flashes       int     `yaml:"flashes"`
	CrumbleEvery  float64 `yaml:"crumble_every"`
	StainLifetime float64 `yaml:"stain_lifetime"`
}

// TransformTimings defines the sandworm transformation.
type TransformTimings struct {
	Flash        float64 `yaml:"flash"`
	SegmentEvery float64 `yaml:"segment_every"`
	CellEvery    float64 `yaml:"cell_every"`
	FilledFlash  float64 `yaml:"filled_flash"`
	CollapseRate float64 `yaml:"collapse_rate"`
	Bonus        int     `yaml:"bonus"`
	DevourFruit  int     `yaml:"devour_fruit"`
	DevourFood   int     `yaml:"devour_food"`
}

// SnakeRivals defines the rival population.
type SnakeRivals struct {
	MaxCount      int     `yaml:"max_count"`
	ThinkEvery    float64 `yaml:"think_every"`
	BaseTickMs    int     `yaml:"base_tick_ms"`
	MinTickMs     int     `yaml:"min_tick_ms"`
	TickStepMs    int     `yaml:"tick_step_ms"`
	DizzyChance   float64 `yaml:"dizzy_chance"`
	WanderChance  float64 `yaml:"wander_chance"`
	SpawnMargin   int     `yaml:"spawn_margin"`
	SpawnAttempts int     `yaml:"spawn_attempts"`
	MinLength     int     `yaml:"min_length"`
	MaxLength     int     `yaml:"max_length"`
	DropLifetime  float64 `yaml:"drop_lifetime"`
	DropSpread    int     `yaml:"drop_spread"`
	DevourScore   int     `yaml:"devour_score"`
}

// SnakeCombo defines the combo window.
type SnakeCombo struct {
	Window float64 `yaml:"window"`
}

// SnakeAudio defines the sound cues.
type SnakeAudio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name. Unknown names map to normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	for _, p := range Presets {
		if string(p) == s {
			return p, true
		}
	}
	return DifficultyNormal, false
}

// IsFixedPreset returns true if the preset disables the speed-up.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Grid.Wrap = true
		cfg.Rivals.MaxCount = 1
		cfg.Timing.BaseTickMs = 140
	case DifficultyHard:
		cfg.Grid.Wrap = false
		cfg.Rivals.MaxCount = 5
		cfg.Timing.BaseTickMs = 100
	case DifficultyFixed:
		cfg.Timing.FixedSpeed = true
	}
}
