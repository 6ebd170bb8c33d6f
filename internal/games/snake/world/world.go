// Package world runs the snake simulation. A World owns every entity and
// advances them in a fixed order once per logic step; the presentation
// layer only reads Snapshots and drains Events.
package world

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fx"
	"github.com/vovakirdan/snake-arena/internal/games/snake/hazard"
	"github.com/vovakirdan/snake-arena/internal/games/snake/rival"
	"github.com/vovakirdan/snake-arena/internal/games/snake/spawn"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

// ErrInvalidConfig is returned by New for an unusable configuration.
var ErrInvalidConfig = errors.New("invalid world config")

// PortalConfig controls the portal spawner.
type PortalConfig struct {
	Every    float64 // seconds between attempts while no pair exists
	Chance   float64
	Lifetime float64
}

// Config holds every tunable of a world.
type Config struct {
	Grid actor.Grid
	Wrap bool
	// WrapLocked refuses the wrap toggle.
	WrapLocked bool

	BaseTickMs int
	MinTickMs  int
	TickStepMs int
	// FixedSpeed disables the length based speed-up.
	FixedSpeed bool
	// MaxSteps bounds logic steps per Advance.
	MaxSteps int

	DizzyChance float64
	ComboWindow float64

	Rules       []spawn.Rule
	Independent []spawn.IndependentRule
	Portals     PortalConfig

	Durations status.Durations
	Explosive hazard.ExplosiveConfig
	Damage    hazard.DamageConfig
	Transform hazard.TransformConfig
	Rivals    rival.Config

	// Devour scores for cells filled during the transformation.
	DevourFruit int
	DevourFood  int
}

// DefaultConfig returns the stock world.
func DefaultConfig() Config {
	return Config{
		Grid:        actor.Grid{W: 32, H: 24},
		Wrap:        true,
		BaseTickMs:  120,
		MinTickMs:   40,
		TickStepMs:  5,
		MaxSteps:    5,
		DizzyChance: 0.4,
		ComboWindow: 1.5,
		Rules:       spawn.DefaultRules(),
		Independent: spawn.DefaultIndependentRules(),
		Portals:     PortalConfig{Every: 15, Chance: 0.3, Lifetime: 20},
		Durations:   status.DefaultDurations(),
		Explosive:   hazard.DefaultExplosiveConfig(),
		Damage:      hazard.DefaultDamageConfig(),
		Transform:   hazard.DefaultTransformConfig(),
		Rivals:      rival.DefaultConfig(),
		DevourFruit: 5,
		DevourFood:  1,
	}
}

// Validate checks the configuration against a registry and reports every
// problem at once.
func (c Config) Validate(reg *fruit.Registry) error {
	var errs []error
	if c.Grid.W < 8 || c.Grid.H < 8 {
		errs = append(errs, fmt.Errorf("world: grid %dx%d: %w", c.Grid.W, c.Grid.H, ErrInvalidConfig))
	}
	if c.BaseTickMs <= 0 || c.MinTickMs <= 0 || c.TickStepMs < 0 {
		errs = append(errs, fmt.Errorf("world: tick %d/%d/%d ms: %w", c.BaseTickMs, c.MinTickMs, c.TickStepMs, ErrInvalidConfig))
	}
	if c.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("world: max steps %d: %w", c.MaxSteps, ErrInvalidConfig))
	}
	if c.Portals.Every <= 0 || c.Portals.Chance < 0 || c.Portals.Chance > 1 {
		errs = append(errs, fmt.Errorf("world: portal rule: %w", ErrInvalidConfig))
	}
	if c.Rivals.MaxCount < 0 || c.Rivals.MinLength < 1 || c.Rivals.MaxLength < c.Rivals.MinLength {
		errs = append(errs, fmt.Errorf("world: rival population or length: %w", ErrInvalidConfig))
	}
	if c.Rivals.DropSpread < 0 || c.Rivals.SpawnMargin < 0 {
		errs = append(errs, fmt.Errorf("world: rival drop spread %d or spawn margin %d: %w", c.Rivals.DropSpread, c.Rivals.SpawnMargin, ErrInvalidConfig))
	}
	if f := c.Explosive.Fraction; f <= 0 || f > 1 {
		errs = append(errs, fmt.Errorf("world: explosive fraction %v: %w", f, ErrInvalidConfig))
	}
	if reg == nil {
		errs = append(errs, fmt.Errorf("world: no fruit registry: %w", ErrInvalidConfig))
	} else {
		if _, ok := reg.Get(fruit.IDNormal); !ok {
			errs = append(errs, fmt.Errorf("world: food needs %q: %w", fruit.IDNormal, fruit.ErrUnknownFruit))
		}
		errs = append(errs, reg.Validate())
		errs = append(errs, spawn.NewScheduler(c.Rules, c.Independent).Validate(reg))
	}
	return errors.Join(errs...)
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithRand replaces the seeded generator.
func WithRand(rng *rand.Rand) Option {
	return func(w *World) {
		if rng != nil {
			w.rng = rng
		}
	}
}

// WithHighScore seeds the best score, e.g. from the score store.
func WithHighScore(n int) Option {
	return func(w *World) {
		w.highScore = max(w.highScore, n)
	}
}

// World is the complete simulation state.
type World struct {
	cfg Config
	reg *fruit.Registry
	rng *rand.Rand
	log *log.Logger

	seed int64

	player    *actor.Snake
	status    *status.State
	food      core.Point
	hasFood   bool
	fruits    []fruit.Fruit
	portals   []actor.Portal
	rivals    *rival.Manager
	scheduler *spawn.Scheduler
	fx        *fx.Sink

	explosive *hazard.Explosive
	damage    *hazard.Damage
	transform *hazard.Transformation

	input Input
	wrap  bool

	now         float64
	acc         float64
	blend       float64
	steps       uint64
	portalTimer float64

	score     int
	highScore int
	combo     int
	comboLeft float64

	paused   bool
	gameOver bool
	cause    Cause

	events []Event

	// trace is called at the start of each phase of a step.
	trace func(phase)
}

// New validates cfg and builds a world seeded with seed.
func New(cfg Config, reg *fruit.Registry, seed int64, opts ...Option) (*World, error) {
	if err := cfg.Validate(reg); err != nil {
		return nil, err
	}

	w := &World{
		cfg:  cfg,
		reg:  reg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
		log:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.player = actor.New(cfg.Grid)
	w.status = status.New(cfg.Durations)
	w.rivals = rival.NewManager(cfg.Rivals, cfg.Grid)
	w.scheduler = spawn.NewScheduler(cfg.Rules, cfg.Independent)
	w.fx = &fx.Sink{}
	w.explosive = hazard.NewExplosive(cfg.Explosive)
	w.damage = hazard.NewDamage(cfg.Damage)
	w.transform = hazard.NewTransformation(cfg.Transform, cfg.Grid)

	w.Reset()
	return w, nil
}

// Reset rebuilds every owned entity. The high score and the generator
// carry over.
func (w *World) Reset() {
	w.player.Reset()
	w.status.Reset()
	w.rivals.Reset()
	w.scheduler.Reset()
	w.fx.Reset()
	w.explosive.Reset()
	w.damage.Reset()
	w.transform.Reset()
	w.input.Reset()

	w.fruits = nil
	w.portals = nil
	w.wrap = w.cfg.Wrap
	w.now, w.acc, w.blend, w.steps, w.portalTimer = 0, 0, 0, 0, 0
	w.score, w.combo, w.comboLeft = 0, 0, 0
	w.paused, w.gameOver, w.cause = false, false, CauseNone
	w.events = nil

	w.respawnFood()
}

// Config returns the configuration.
func (w *World) Config() Config { return w.cfg }

// Registry returns the consumable registry.
func (w *World) Registry() *fruit.Registry { return w.reg }

// Seed returns the seed the world was built with.
func (w *World) Seed() int64 { return w.seed }

// Input returns the command buffer.
func (w *World) Input() *Input { return &w.input }

// Score returns the current score.
func (w *World) Score() int { return w.score }

// HighScore returns the best score seen by this world.
func (w *World) HighScore() int { return w.highScore }

// Length returns the player's length.
func (w *World) Length() int { return w.player.Len() }

// Now returns simulated seconds since the last reset.
func (w *World) Now() float64 { return w.now }

// Steps returns logic steps since the last reset.
func (w *World) Steps() uint64 { return w.steps }

// State returns the run state.
func (w *World) State() State {
	switch {
	case w.gameOver:
		return StateGameOver
	case w.paused:
		return StatePaused
	default:
		return StatePlaying
	}
}

// Cause returns why the run ended.
func (w *World) Cause() Cause { return w.cause }

// Wrap reports whether walls wrap.
func (w *World) Wrap() bool { return w.wrap }

// DrainEvents returns and clears the events raised since the last call.
func (w *World) DrainEvents() []Event {
	ev := w.events
	w.events = nil
	return ev
}

// TickInterval returns the player's current step interval.
func (w *World) TickInterval() time.Duration {
	return time.Duration(w.tickSeconds() * float64(time.Second))
}

func (w *World) tickSeconds() float64 {
	ms := w.cfg.BaseTickMs
	if !w.cfg.FixedSpeed {
		ms = max(w.cfg.MinTickMs, ms-(w.player.Len()/3)*w.cfg.TickStepMs)
	}
	return float64(ms) / 1000 * w.status.TickMultiplier()
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

func (w *World) addScore(n int) {
	w.score += n
	if w.score > w.highScore {
		w.highScore = w.score
	}
}

func (w *World) end(c Cause) {
	if w.gameOver {
		return
	}
	w.gameOver = true
	w.cause = c
	w.blend = 1
	w.emit(EventGameOver)
	w.log.Debug("game over", "cause", c, "score", w.score, "length", w.player.Len(), "time", w.now)
}

// blocked reports cells unavailable for placement.
func (w *World) blocked() actor.Occupied {
	return actor.AnyOf(
		w.player.Occupies,
		w.rivals.Occupies,
		func(p core.Point) bool { return w.hasFood && p == w.food },
		func(p core.Point) bool { return actor.IndexAt(w.fruits, p) >= 0 },
		func(p core.Point) bool {
			for _, pt := range w.portals {
				if pt.A == p || pt.B == p {
					return true
				}
			}
			return false
		},
	)
}

func (w *World) respawnFood() {
	p, ok := spawn.Place(w.cfg.Grid, w.blocked(), spawn.Retries, w.rng)
	if !ok {
		p, ok = w.firstFree()
	}
	w.food, w.hasFood = p, ok
}

func (w *World) firstFree() (core.Point, bool) {
	blocked := w.blocked()
	for y := 0; y < w.cfg.Grid.H; y++ {
		for x := 0; x < w.cfg.Grid.W; x++ {
			if p := core.Pt(x, y); !blocked(p) {
				return p, true
			}
		}
	}
	return core.Point{}, false
}
