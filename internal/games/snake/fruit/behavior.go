package fruit

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fx"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

// Behavior is the capability set of a consumable. Implementations are
// registered once and shared by every live instance.
type Behavior interface {
	// Config returns the static configuration.
	Config() Config

	// OnConsume runs when the player's head reaches the consumable.
	OnConsume(ctx *Context) Outcome

	// OnExpire runs when the consumable times out. ctx.Status is nil.
	OnExpire(ctx *Context)

	// Render returns the board cell for the consumable at world time now.
	Render(now float64) core.Cell

	// FeedRival applies the consumable to a rival and returns how many
	// segments the rival grows.
	FeedRival(st *status.State) int
}

// Rivals spawns rival agents on behalf of a behavior.
type Rivals interface {
	Spawn(origin *actor.Snake, rng *rand.Rand) bool
}

// Hazards starts hazard machines on behalf of a behavior.
type Hazards interface {
	Damage(amount int)
	ArmExplosive()
	ClearAfterEffect()
	BeginTransformation()
}

// Context is the mutable view of the world handed to a behavior.
type Context struct {
	Status  *status.State
	Player  *actor.Snake
	FX      *fx.Sink
	Rivals  Rivals
	Hazards Hazards
	Rng     *rand.Rand
	Pos     core.Point
	Now     float64
	Combo   int
}

// Base supplies the optional capabilities. Embed it and implement OnConsume.
type Base struct {
	Cfg Config
}

// Config implements Behavior.
func (b Base) Config() Config { return b.Cfg }

// OnExpire implements Behavior; it does nothing.
func (Base) OnExpire(*Context) {}

// Render implements Behavior with the configured glyph and color.
func (b Base) Render(float64) core.Cell {
	return core.Cell{Rune: b.Cfg.Glyph, Color: b.Cfg.Color}
}

// FeedRival implements Behavior; rivals grow by one.
func (Base) FeedRival(*status.State) int { return 1 }

// pulse alternates between two colors at hz.
func pulse(now, hz float64, a, b core.Color) core.Color {
	if math.Mod(now*hz, 1) < 0.5 {
		return a
	}
	return b
}

// tuned wraps a behavior with an adjusted configuration.
type tuned struct {
	Behavior
	cfg Config
}

func (t tuned) Config() Config { return t.cfg }

func (t tuned) Render(now float64) core.Cell {
	c := t.Behavior.Render(now)
	if t.cfg.Glyph != 0 && t.cfg.Glyph != t.Behavior.Config().Glyph {
		c.Rune = t.cfg.Glyph
	}
	return c
}
