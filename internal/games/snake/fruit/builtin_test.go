package fruit

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fx"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

type fakeHazards struct {
	damage      int
	armed       bool
	healed      bool
	transformed bool
}

func (f *fakeHazards) Damage(n int)         { f.damage += n }
func (f *fakeHazards) ArmExplosive()        { f.armed = true }
func (f *fakeHazards) ClearAfterEffect()    { f.healed = true }
func (f *fakeHazards) BeginTransformation() { f.transformed = true }

type fakeRivals struct{ spawned int }

func (f *fakeRivals) Spawn(*actor.Snake, *rand.Rand) bool {
	f.spawned++
	return true
}

func newContext(length int) (*Context, *fakeHazards, *fakeRivals) {
	s := actor.New(actor.Grid{W: 32, H: 24})
	s.Grow(length - s.Len())
	h := &fakeHazards{}
	r := &fakeRivals{}
	return &Context{
		Status:  &status.State{},
		Player:  s,
		FX:      &fx.Sink{},
		Rivals:  r,
		Hazards: h,
		Rng:     rand.New(rand.NewSource(3)),
		Pos:     core.Pt(5, 5),
	}, h, r
}

func consume(t *testing.T, id string, ctx *Context) Outcome {
	t.Helper()
	b, ok := Builtin().Get(id)
	if !ok {
		t.Fatalf("Get(%q) missing", id)
	}
	return b.OnConsume(ctx)
}

func TestNormalFruitComboBonus(t *testing.T) {
	tests := []struct {
		combo    int
		expected int
	}{
		{0, 1},
		{3, 4},
		{9, 6},
	}

	for _, tc := range tests {
		ctx, _, _ := newContext(3)
		ctx.Combo = tc.combo
		out := consume(t, IDNormal, ctx)
		if out.Score != tc.expected {
			t.Errorf("combo %d: Score = %d, expected %d", tc.combo, out.Score, tc.expected)
		}
		if ctx.Player.Len() != 4 {
			t.Errorf("Len() = %d, expected 4", ctx.Player.Len())
		}
	}
}

func TestTrapFruit(t *testing.T) {
	t.Run("short snake dies", func(t *testing.T) {
		ctx, h, _ := newContext(3)
		out := consume(t, IDTrap, ctx)
		if !out.EndGame {
			t.Error("expected EndGame at length 3")
		}
		if h.damage != 0 {
			t.Errorf("damage = %d, expected 0", h.damage)
		}
	})

	t.Run("long snake takes damage", func(t *testing.T) {
		ctx, h, _ := newContext(6)
		out := consume(t, IDTrap, ctx)
		if out.EndGame || !out.ResetCombo {
			t.Errorf("Outcome = %+v, expected reset combo only", out)
		}
		if h.damage != TrapDamage {
			t.Errorf("damage = %d, expected %d", h.damage, TrapDamage)
		}
	})

	t.Run("immune", func(t *testing.T) {
		ctx, h, _ := newContext(3)
		ctx.Status.Apply(status.Shield)
		out := consume(t, IDTrap, ctx)
		if out.EndGame || h.damage != 0 {
			t.Errorf("immune trap: Outcome = %+v, damage = %d", out, h.damage)
		}
	})
}

func TestDebuffFruits(t *testing.T) {
	tests := []struct {
		id     string
		effect status.Name
	}{
		{IDFreeze, status.Frozen},
		{IDSlow, status.Slow},
		{IDDizzy, status.Dizzy},
		{IDSlime, status.Slime},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			ctx, _, _ := newContext(4)
			out := consume(t, tc.id, ctx)
			if !out.ResetCombo {
				t.Error("expected ResetCombo")
			}
			if !ctx.Status.Active(tc.effect) {
				t.Errorf("%v should be active", tc.effect)
			}

			ctx, _, _ = newContext(4)
			ctx.Status.Apply(status.Ghost)
			consume(t, tc.id, ctx)
			if ctx.Status.Active(tc.effect) {
				t.Errorf("%v should be refused while immune", tc.effect)
			}
		})
	}
}

func TestFreezeEmitsFrost(t *testing.T) {
	ctx, _, _ := newContext(4)
	consume(t, IDFreeze, ctx)
	if got := len(ctx.FX.Particles); got != 4*5 {
		t.Errorf("len(Particles) = %d, expected %d", got, 4*5)
	}
}

func TestBombFruit(t *testing.T) {
	ctx, h, _ := newContext(10)
	consume(t, IDBomb, ctx)
	if !h.armed {
		t.Error("bomb should arm the explosive")
	}

	ctx, h, _ = newContext(10)
	ctx.Status.Apply(status.Shield)
	consume(t, IDBomb, ctx)
	if h.armed {
		t.Error("bomb should not arm while immune")
	}
}

func TestPowerFruits(t *testing.T) {
	for _, tc := range []struct {
		id     string
		effect status.Name
	}{
		{IDShield, status.Shield},
		{IDSpeed, status.Speed},
		{IDGhost, status.Ghost},
	} {
		ctx, _, _ := newContext(10)
		consume(t, tc.id, ctx)
		if !ctx.Status.Active(tc.effect) {
			t.Errorf("%s: %v should be active", tc.id, tc.effect)
		}
	}
}

func TestReverseFruit(t *testing.T) {
	ctx, _, _ := newContext(3)
	tail := ctx.Player.Tail()
	consume(t, IDReverse, ctx)
	if ctx.Player.Head() != tail {
		t.Errorf("Head() = %v, expected %v", ctx.Player.Head(), tail)
	}
}

func TestHealFruit(t *testing.T) {
	ctx, h, _ := newContext(10)
	ctx.Status.Apply(status.Slow)
	out := consume(t, IDHeal, ctx)

	if ctx.Status.Active(status.Slow) {
		t.Error("heal should clear debuffs")
	}
	if !h.healed {
		t.Error("heal should clear the after-effect")
	}
	if out.Score != HealBonus {
		t.Errorf("Score = %d, expected %d", out.Score, HealBonus)
	}
}

func TestSandwormFruit(t *testing.T) {
	ctx, h, _ := newContext(15)
	consume(t, IDSandworm, ctx)
	if !h.transformed {
		t.Error("sandworm should begin the transformation")
	}
}

func TestEggHatchesOnExpire(t *testing.T) {
	ctx, _, r := newContext(5)
	b, _ := Builtin().Get(IDEgg)

	out := b.OnConsume(ctx)
	if out.Score != EggBonus || r.spawned != 0 {
		t.Errorf("OnConsume: Score = %d, spawned = %d", out.Score, r.spawned)
	}

	ctx.Status = nil
	b.OnExpire(ctx)
	if r.spawned != 1 {
		t.Errorf("spawned = %d, expected 1", r.spawned)
	}
}

func TestLuckyFruitNeverEndsGame(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		ctx, _, _ := newContext(3)
		ctx.Rng = rand.New(rand.NewSource(seed))
		if out := consume(t, IDLucky, ctx); out.EndGame {
			t.Fatalf("seed %d: lucky box ended the game", seed)
		}
		if ctx.Player.Len() < 3 {
			t.Fatalf("seed %d: Len() = %d", seed, ctx.Player.Len())
		}
	}
}

func TestFeedRival(t *testing.T) {
	r := Builtin()
	tests := []struct {
		id     string
		grow   int
		effect status.Name
		active bool
	}{
		{IDNormal, 1, status.Shield, false},
		{IDTrap, 0, status.Shield, false},
		{IDBomb, 0, status.Shield, false},
		{IDShield, 0, status.Shield, true},
		{IDSlow, 0, status.Slow, true},
		{IDReverse, 1, status.Shield, false},
		{IDLucky, 1, status.Shield, false},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			b, _ := r.Get(tc.id)
			st := &status.State{}
			if got := b.FeedRival(st); got != tc.grow {
				t.Errorf("FeedRival() = %d, expected %d", got, tc.grow)
			}
			if st.Active(tc.effect) != tc.active {
				t.Errorf("Active(%v) = %v, expected %v", tc.effect, st.Active(tc.effect), tc.active)
			}
		})
	}
}

func TestFruitExpiry(t *testing.T) {
	f := Fruit{Born: 2, Lifetime: 5}
	if f.Expired(6.9) {
		t.Error("fruit should be alive before its lifetime")
	}
	if !f.Expired(7) {
		t.Error("fruit should expire at its lifetime")
	}
	if got := f.Remaining(4); got != 3 {
		t.Errorf("Remaining(4) = %v, expected 3", got)
	}

	permanent := Fruit{Born: 0}
	if permanent.Expired(1e9) {
		t.Error("a zero lifetime never expires")
	}
}
