package world

import (
	"math/rand"

	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
)

// hooks hands the world's hazard machines and rival manager to consumable
// behaviors.
type hooks struct{ w *World }

var (
	_ fruit.Hazards = hooks{}
	_ fruit.Rivals  = hooks{}
)

func (h hooks) Damage(amount int) {
	h.w.damage.Start(amount)
}

func (h hooks) ArmExplosive() {
	h.w.explosive.Arm()
}

func (h hooks) ClearAfterEffect() {
	h.w.explosive.ClearAfterEffect()
}

func (h hooks) BeginTransformation() {
	w := h.w
	if !w.transform.Begin(w.player) {
		return
	}
	w.status.Transforming = true
	w.emit(EventTransformPhase)
	w.log.Debug("transformation", "phase", w.transform.Phase(), "length", w.player.Len())
}

func (h hooks) Spawn(origin *actor.Snake, rng *rand.Rand) bool {
	w := h.w
	if origin == nil {
		origin = w.player
	}
	if !w.rivals.Spawn(origin, rng) {
		return false
	}
	w.emit(EventRivalSpawn)
	w.log.Debug("rival spawned", "rivals", len(w.rivals.Agents()))
	return true
}

func (w *World) context(pos actor.Positioned) *fruit.Context {
	h := hooks{w}
	return &fruit.Context{
		Status:  w.status,
		Player:  w.player,
		FX:      w.fx,
		Rivals:  h,
		Hazards: h,
		Rng:     w.rng,
		Pos:     pos.Position(),
		Now:     w.now,
		Combo:   w.combo,
	}
}
