// Package snake adapts the snake world to the platform's Game interface.
// The simulation itself lives in the world package and its siblings; this
// package owns configuration loading, input forwarding and drawing.
package snake

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/world"
	"github.com/vovakirdan/snake-arena/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeArena Mode = "snake"
	ModeWalls Mode = "snake_walls"
)

// Package-level settings shared by every new game, set by the CLI.
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset = config.DifficultyNormal
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the config file path. Empty uses the search order of
// config.LoadSnake.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset by name. Unknown names
// select normal.
func SetDifficultyPreset(preset string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset, _ = config.ParsePreset(preset)
}

// SetLogger sets the logger handed to new worlds.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func settings() (string, config.DifficultyPreset, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return configPath, difficultyPreset, logger
}

// Game implements registry.Game over a world.
type Game struct {
	mode  Mode
	world *world.World
	seed  int64
	best  int

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a wrap-around arena game.
func New() *Game {
	return &Game{mode: ModeArena}
}

// NewWalls creates a game with solid walls and the wrap toggle disabled.
func NewWalls() *Game {
	return &Game{mode: ModeWalls}
}

func init() {
	registry.Register(string(ModeArena), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeWalls), func() registry.Game {
		return NewWalls()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeWalls {
		return "Snake Arena (Walls)"
	}
	return "Snake Arena"
}

// Reset builds a fresh world. A broken config file is logged and replaced
// by the defaults so the game stays playable.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	path, preset, l := settings()

	wc, reg := g.worldConfig(path, preset, l)
	if g.world != nil {
		g.best = max(g.best, g.world.HighScore())
	}

	w, err := world.New(wc, reg, cfg.Seed, world.WithLogger(l), world.WithHighScore(g.best))
	if err != nil {
		l.Error("world rejected config, using defaults", "err", err)
		wc, reg = g.defaults()
		w, _ = world.New(wc, reg, cfg.Seed, world.WithLogger(l), world.WithHighScore(g.best))
	}

	g.world = w
	g.seed = cfg.Seed
	g.resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) worldConfig(path string, preset config.DifficultyPreset, l *log.Logger) (world.Config, *fruit.Registry) {
	sc, err := config.LoadSnake(path)
	if err != nil {
		l.Warn("config not loaded, using defaults", "path", path, "err", err)
		sc = config.DefaultSnakeConfig()
	}
	config.ApplySnakePreset(&sc, preset)

	wc, reg, err := sc.Build()
	if err != nil {
		l.Warn("config invalid, using defaults", "err", err)
		return g.defaults()
	}
	g.applyMode(&wc)
	return wc, reg
}

func (g *Game) defaults() (world.Config, *fruit.Registry) {
	wc := world.DefaultConfig()
	g.applyMode(&wc)
	return wc, fruit.Builtin()
}

func (g *Game) applyMode(wc *world.Config) {
	if g.mode == ModeWalls {
		wc.Wrap = false
		wc.WrapLocked = true
	}
}

// SetBest raises the remembered best score, e.g. from the score store.
func (g *Game) SetBest(n int) {
	g.best = max(g.best, n)
}

// Resize updates the screen size without touching the simulation.
func (g *Game) Resize(w, h int) {
	g.resize(w, h)
}

func (g *Game) resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.world == nil {
		return
	}
	bw, bh := boardSize(g.world.Config().Grid.W, g.world.Config().Grid.H)
	g.tooSmall = w < bw || h < bh+hudHeight
}

// World returns the underlying simulation.
func (g *Game) World() *world.World {
	return g.world
}

// Step forwards one platform frame to the world.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	if g.world.State() == world.StateGameOver {
		if in.Has(core.ActionRestart) {
			g.best = max(g.best, g.world.HighScore())
			g.world.Reset()
		}
		return core.StepResult{State: g.State(), Cues: cues(g.world.DrainEvents())}
	}

	for _, a := range in.Sequence {
		g.world.Input().Push(a)
	}

	// A terminal too small to draw the board holds the game still.
	if g.tooSmall {
		elapsed = 0
	}
	g.world.Advance(elapsed)

	return core.StepResult{State: g.State(), Cues: cues(g.world.DrainEvents())}
}

func cues(events []world.Event) []string {
	if len(events) == 0 {
		return nil
	}
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = string(e)
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	st := g.world.State()
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: st == world.StateGameOver,
		Paused:   st == world.StatePaused || g.tooSmall,
	}
}

// Run summarizes the current run for the score store.
func (g *Game) Run() core.RunSummary {
	if g.world == nil {
		return core.RunSummary{}
	}
	return core.RunSummary{
		Score:    g.world.Score(),
		Length:   g.world.Length(),
		Duration: time.Duration(g.world.Now() * float64(time.Second)),
		Cause:    string(g.world.Cause()),
		Seed:     g.seed,
	}
}
