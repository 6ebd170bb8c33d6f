package fruit

import (
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fx"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

// Lifetimes of the built-in consumables, in seconds.
const (
	TrapLifetime    = 5.0
	BombLifetime    = 8.0
	PowerLifetime   = 8.0
	ReverseLifetime = 5.0
	HealLifetime    = 10.0
	WormLifetime    = 3.0
	LuckyLifetime   = 6.0
	EggLifetime     = 15.0
)

// Built-in identifiers.
const (
	IDNormal   = "normal"
	IDTrap     = "trap"
	IDFreeze   = "freeze"
	IDSlow     = "slow"
	IDDizzy    = "dizzy"
	IDSlime    = "slime"
	IDBomb     = "bomb"
	IDShield   = "shield"
	IDSpeed    = "speed"
	IDGhost    = "ghost"
	IDReverse  = "reverse"
	IDHeal     = "heal"
	IDSandworm = "sandworm"
	IDLucky    = "lucky"
	IDEgg      = "snake_egg"
)

// TrapDamage is how many tail segments a trap removes.
const TrapDamage = 2

// MinViableLength is the shortest body a trap may leave behind.
const MinViableLength = 3

// Builtin returns a registry holding every built-in consumable.
func Builtin() *Registry {
	r := NewRegistry()
	r.MustRegister(
		NormalFruit{Base{Config{ID: IDNormal, Name: "Apple", Category: Normal,
			Color: core.ColorBrightRed, Glyph: '●', Weight: 100}}},

		TrapFruit{Base{Config{ID: IDTrap, Name: "Trap", Category: Trap,
			Color: core.ColorMagenta, Glyph: '☠', Lifetime: TrapLifetime, Weight: 35}}},
		DebuffFruit{Base{Config{ID: IDFreeze, Name: "Freeze", Category: Trap,
			Color: core.ColorIce, Glyph: '❄', Lifetime: TrapLifetime, Weight: 15}}, status.Frozen},
		DebuffFruit{Base{Config{ID: IDSlow, Name: "Slow", Category: Trap,
			Color: core.ColorBlue, Glyph: '◔', Lifetime: TrapLifetime, Weight: 20}}, status.Slow},
		DebuffFruit{Base{Config{ID: IDDizzy, Name: "Dizzy", Category: Trap,
			Color: core.ColorBrightMagenta, Glyph: '@', Lifetime: TrapLifetime, Weight: 15}}, status.Dizzy},
		DebuffFruit{Base{Config{ID: IDSlime, Name: "Slime", Category: Trap,
			Color: core.ColorGreen, Glyph: '≈', Lifetime: TrapLifetime, Weight: 15}}, status.Slime},
		BombFruit{Base{Config{ID: IDBomb, Name: "Bomb", Category: Trap,
			Color: core.ColorGray, Glyph: 'ó', Lifetime: BombLifetime, Weight: 15, Unlock: 4, Growth: 2}}},

		BuffFruit{Base{Config{ID: IDShield, Name: "Shield", Category: Power,
			Color: core.ColorBrightCyan, Glyph: '◆', Lifetime: PowerLifetime, Weight: 30, Unlock: 10}}, status.Shield},
		BuffFruit{Base{Config{ID: IDSpeed, Name: "Speed", Category: Power,
			Color: core.ColorBrightYellow, Glyph: '»', Lifetime: PowerLifetime, Weight: 25, Unlock: 10}}, status.Speed},
		BuffFruit{Base{Config{ID: IDGhost, Name: "Ghost", Category: Power,
			Color: core.ColorBrightWhite, Glyph: '◌', Lifetime: PowerLifetime, Weight: 20, Unlock: 10}}, status.Ghost},
		ReverseFruit{Base{Config{ID: IDReverse, Name: "Reverse", Category: Power,
			Color: core.ColorOrange, Glyph: '⇄', Lifetime: ReverseLifetime, Weight: 15, Unlock: 10}}},
		HealFruit{Base{Config{ID: IDHeal, Name: "Heal", Category: Power,
			Color: core.ColorBrightGreen, Glyph: '✚', Lifetime: HealLifetime, Weight: 5, Unlock: 8}}},
		SandwormFruit{Base{Config{ID: IDSandworm, Name: "Sandworm", Category: Power,
			Color: core.ColorSand, Glyph: '§', Lifetime: WormLifetime, Weight: 1, Unlock: 15, Growth: 10}}},

		LuckyFruit{Base{Config{ID: IDLucky, Name: "Lucky Box", Category: Special,
			Color: core.ColorYellow, Glyph: '?', Lifetime: LuckyLifetime, Weight: 100}}},
		EggFruit{Base{Config{ID: IDEgg, Name: "Snake Egg", Category: Special,
			Color: core.ColorPink, Glyph: '0', Lifetime: EggLifetime, Weight: 50, Unlock: 5}}},
	)
	return r
}

// NormalFruit scores one point plus the combo bonus and grows the player.
type NormalFruit struct{ Base }

// MaxComboBonus caps the combo contribution of a normal fruit.
const MaxComboBonus = 5

func (NormalFruit) OnConsume(ctx *Context) Outcome {
	ctx.Player.Grow(1)
	return Outcome{Score: 1 + min(ctx.Combo, MaxComboBonus)}
}

// TrapFruit starts the crumble animation. A short snake dies instead.
type TrapFruit struct{ Base }

func (TrapFruit) OnConsume(ctx *Context) Outcome {
	if ctx.Status.Immune() {
		return Outcome{ResetCombo: true}
	}
	if ctx.Player.Len() <= MinViableLength {
		return Outcome{EndGame: true, ResetCombo: true}
	}
	ctx.Hazards.Damage(TrapDamage)
	return Outcome{ResetCombo: true}
}

func (t TrapFruit) Render(now float64) core.Cell {
	return core.Cell{Rune: t.Cfg.Glyph, Color: pulse(now, 2, t.Cfg.Color, core.ColorBrightMagenta)}
}

func (TrapFruit) FeedRival(*status.State) int { return 0 }

// DebuffFruit applies one timed debuff to the consumer.
type DebuffFruit struct {
	Base
	Effect status.Name
}

func (d DebuffFruit) OnConsume(ctx *Context) Outcome {
	if !ctx.Status.Apply(d.Effect) {
		return Outcome{ResetCombo: true}
	}
	if d.Effect == status.Frozen {
		ctx.FX.Scatter(ctx.Player.Body, 5, core.ColorIce, ctx.Rng)
	}
	return Outcome{ResetCombo: true}
}

func (d DebuffFruit) FeedRival(st *status.State) int {
	st.Apply(d.Effect)
	return 0
}

// BombFruit arms the explosive hazard inside the body.
type BombFruit struct{ Base }

func (BombFruit) OnConsume(ctx *Context) Outcome {
	if ctx.Status.Immune() {
		return Continue
	}
	ctx.Hazards.ArmExplosive()
	return Outcome{ResetCombo: true}
}

func (b BombFruit) Render(now float64) core.Cell {
	return core.Cell{Rune: b.Cfg.Glyph, Color: pulse(now, 3, b.Cfg.Color, core.ColorRed)}
}

func (BombFruit) FeedRival(*status.State) int { return 0 }

// BuffFruit activates one timed buff.
type BuffFruit struct {
	Base
	Effect status.Name
}

func (b BuffFruit) OnConsume(ctx *Context) Outcome {
	ctx.Status.Apply(b.Effect)
	return Continue
}

func (b BuffFruit) FeedRival(st *status.State) int {
	st.Apply(b.Effect)
	return 0
}

// ReverseFruit turns the player around.
type ReverseFruit struct{ Base }

func (ReverseFruit) OnConsume(ctx *Context) Outcome {
	ctx.Player.Reverse()
	return Continue
}

// HealBonus is the score awarded by a heal.
const HealBonus = 20

// HealFruit clears debuffs and the explosive after-effect.
type HealFruit struct{ Base }

func (HealFruit) OnConsume(ctx *Context) Outcome {
	ctx.Status.ClearDebuffs()
	ctx.Hazards.ClearAfterEffect()
	ctx.FX.Emit(ctx.Player.Head(), fx.Sparkle, ctx.Rng)
	return Outcome{Score: HealBonus}
}

// SandwormFruit starts the transformation sequence.
type SandwormFruit struct{ Base }

func (SandwormFruit) OnConsume(ctx *Context) Outcome {
	ctx.Hazards.BeginTransformation()
	return Continue
}

func (s SandwormFruit) Render(now float64) core.Cell {
	return core.Cell{Rune: s.Cfg.Glyph, Color: pulse(now, 4, s.Cfg.Color, core.ColorOrange)}
}

// Lucky box rewards.
const (
	LuckyScore  = 10
	LuckyGrowth = 3
)

// LuckyFruit rolls a random positive or negative effect.
type LuckyFruit struct{ Base }

func (LuckyFruit) OnConsume(ctx *Context) Outcome {
	ctx.FX.Emit(ctx.Pos, fx.Confetti, ctx.Rng)

	if ctx.Rng.Intn(2) == 0 {
		switch ctx.Rng.Intn(5) {
		case 0:
			ctx.Status.Apply(status.Shield)
		case 1:
			ctx.Status.Apply(status.Speed)
		case 2:
			ctx.Status.Apply(status.Ghost)
		case 3:
			return Outcome{Score: LuckyScore}
		default:
			ctx.Player.Grow(LuckyGrowth)
		}
		return Continue
	}

	if ctx.Status.Immune() {
		return Outcome{ResetCombo: true}
	}
	switch ctx.Rng.Intn(6) {
	case 0:
		ctx.Status.Apply(status.Frozen)
	case 1:
		ctx.Status.Apply(status.Slow)
	case 2:
		ctx.Status.Apply(status.Dizzy)
	case 3:
		ctx.Status.Apply(status.Slime)
	case 4:
		if ctx.Player.Len() > MinViableLength {
			ctx.Hazards.Damage(TrapDamage)
		}
	default:
		ctx.Rivals.Spawn(ctx.Player, ctx.Rng)
	}
	return Outcome{ResetCombo: true}
}

func (l LuckyFruit) Render(now float64) core.Cell {
	return core.Cell{Rune: l.Cfg.Glyph, Color: pulse(now, 2, l.Cfg.Color, core.ColorBrightYellow)}
}

// EggBonus is the score for eating an egg before it hatches.
const EggBonus = 5

// EggFruit hatches a rival if left alone.
type EggFruit struct{ Base }

func (EggFruit) OnConsume(ctx *Context) Outcome {
	ctx.FX.Emit(ctx.Player.Head(), fx.Hatch, ctx.Rng)
	return Outcome{Score: EggBonus}
}

func (EggFruit) OnExpire(ctx *Context) {
	ctx.Rivals.Spawn(ctx.Player, ctx.Rng)
	ctx.FX.Emit(ctx.Pos, fx.Hatch, ctx.Rng)
}
