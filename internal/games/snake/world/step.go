package world

import (
	"slices"
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fx"
	"github.com/vovakirdan/snake-arena/internal/games/snake/hazard"
	"github.com/vovakirdan/snake-arena/internal/games/snake/rival"
	"github.com/vovakirdan/snake-arena/internal/games/snake/spawn"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

// phase names the stages of one logic step, in execution order.
type phase int

const (
	phaseInput phase = iota
	phaseStatus
	phaseTransform
	phaseDamage
	phaseExplosive
	phaseMove
	phaseCollide
	phaseRivals
	phaseExpire
	phaseSpawn
	phasePortals
	phaseCombo
	phaseFX
)

func (w *World) mark(p phase) {
	if w.trace != nil {
		w.trace(p)
	}
}

// Advance applies pending toggles, then runs as many logic steps as the
// elapsed time covers, at most Config.MaxSteps. It returns the blend
// factor in [0,1] between the previous and current body.
func (w *World) Advance(elapsed time.Duration) float64 {
	pause, wrap := w.input.toggles()
	if pause && !w.gameOver {
		w.paused = !w.paused
	}
	if wrap && !w.cfg.WrapLocked {
		w.wrap = !w.wrap
	}
	if w.paused || w.gameOver {
		return w.blend
	}

	w.acc += elapsed.Seconds()
	tick := w.tickSeconds()
	for n := 0; n < w.cfg.MaxSteps && w.acc >= tick; n++ {
		w.acc -= tick
		w.step(tick)
		if w.gameOver {
			w.acc, w.blend = 0, 1
			return w.blend
		}
		tick = w.tickSeconds()
	}
	if w.acc >= tick {
		// Too far behind; drop the backlog.
		w.acc = 0
	}
	w.blend = core.ClampF(w.acc/tick, 0, 1)
	return w.blend
}

func (w *World) step(dt float64) {
	w.steps++
	w.now += dt

	w.mark(phaseInput)
	turn, hasTurn := w.input.next()

	w.mark(phaseStatus)
	w.status.Update(dt)

	w.mark(phaseTransform)
	transforming := w.transform.Active()
	if transforming {
		w.updateTransform(dt)
	}

	w.mark(phaseDamage)
	if !transforming {
		w.updateDamage(dt)
	}

	w.mark(phaseExplosive)
	if !transforming {
		w.updateExplosive(dt)
	}

	w.mark(phaseMove)
	moved := false
	if !transforming && !w.gameOver {
		moved = w.movePlayer(turn, hasTurn)
	}

	w.mark(phaseCollide)
	if moved {
		w.collide()
	}

	w.mark(phaseRivals)
	if !w.gameOver {
		w.updateRivals(dt)
	}

	w.mark(phaseExpire)
	w.expire()

	w.mark(phaseSpawn)
	if !w.gameOver {
		w.fruits = w.scheduler.Update(dt, w.fruits, spawn.Env{
			Registry:     w.reg,
			Grid:         w.cfg.Grid,
			Length:       w.player.Len(),
			Blocked:      w.blocked(),
			Now:          w.now,
			Transforming: w.transform.Active(),
		}, w.rng)
	}

	w.mark(phasePortals)
	w.updatePortals(dt)

	w.mark(phaseCombo)
	if w.combo > 0 {
		w.comboLeft -= dt
		if w.comboLeft <= 0 {
			w.combo, w.comboLeft = 0, 0
		}
	}

	w.mark(phaseFX)
	w.fx.Update(dt, w.now)

	if w.player.Len() == 0 {
		w.end(CauseInvariant)
	}
}

func (w *World) updateTransform(dt float64) {
	ev := w.transform.Update(dt, w.player)
	if ev.PhaseChanged {
		w.emit(EventTransformPhase)
		w.log.Debug("transformation", "phase", ev.Phase, "length", w.player.Len())
	}

	for _, p := range ev.Filled {
		if idx := actor.IndexAt(w.fruits, p); idx >= 0 {
			w.fruits = slices.Delete(w.fruits, idx, idx+1)
			w.addScore(w.cfg.DevourFruit)
		}
		if w.hasFood && p == w.food {
			w.hasFood = false
			w.addScore(w.cfg.DevourFood)
		}
		if n := w.rivals.EatDrops(p); n > 0 {
			w.addScore(n)
		}
	}

	switch ev.Phase {
	case hazard.Filling, hazard.FilledFlashing, hazard.Consuming:
		score, eaten := w.rivals.Devour(w.player.Occupies, w.fx, w.rng)
		if len(eaten) > 0 {
			w.addScore(score)
			w.emit(EventRivalDeath)
			w.log.Debug("rivals devoured", "ids", eaten, "score", score)
		}
	}

	if ev.Done {
		w.status.Transforming = false
		w.addScore(w.transform.Config().Bonus)
		w.fx.Emit(w.player.Head(), fx.Collapse, w.rng)
		w.respawnFood()
	}
}

func (w *World) updateDamage(dt float64) {
	for _, p := range w.damage.Update(dt, w.player) {
		w.fx.Bleed(p, w.now, w.cfg.Damage.StainLifetime, w.rng)
	}
}

func (w *World) updateExplosive(dt float64) {
	ev := w.explosive.Update(dt, w.player)
	if ev.Detonated {
		w.fx.Emit(ev.At, fx.Explosion, w.rng)
		w.emit(EventExplosion)
		if ev.Terminal {
			w.end(CauseExplosion)
			return
		}
	}
	for _, p := range ev.Bled {
		w.fx.Bleed(p, w.now, w.cfg.Damage.StainLifetime, w.rng)
	}
}

// movePlayer applies the next turn and moves the head. It reports whether
// the head reached a new cell.
func (w *World) movePlayer(turn core.Direction, hasTurn bool) bool {
	if w.status.Active(status.Frozen) {
		w.player.Prev = append(w.player.Prev[:0], w.player.Body...)
		return false
	}

	if hasTurn {
		if w.status.Active(status.Dizzy) && w.rng.Float64() < w.cfg.DizzyChance {
			turn = w.randomTurn()
		}
		w.player.SetDirection(turn)
	}

	res := w.player.MoveForward(w.wrap, w.status.CanPassSelf())
	switch res.Outcome {
	case actor.WallCollision:
		w.emit(EventCollision)
		w.end(CauseWall)
		return false
	case actor.SelfCollision:
		w.emit(EventCollision)
		w.end(CauseSelf)
		return false
	}

	if _, exit, ok := actor.CheckPortal(res.Head, w.portals); ok {
		w.player.Teleport(exit)
		w.emit(EventPortal)
	}
	return true
}

func (w *World) randomTurn() core.Direction {
	valid := make([]core.Direction, 0, 3)
	for _, d := range core.Directions {
		if !d.IsOpposite(w.player.Dir) {
			valid = append(valid, d)
		}
	}
	return valid[w.rng.Intn(len(valid))]
}

func (w *World) collide() {
	head := w.player.Head()

	if w.hasFood && actor.CheckFood(head, w.food) {
		cat := fruit.Normal
		if cfg, ok := w.reg.Config(fruit.IDNormal); ok {
			cat = cfg.Category
		}
		w.consume(fruit.Fruit{ID: fruit.IDNormal, Category: cat, Pos: w.food})
		w.respawnFood()
	}

	if idx := actor.CheckFruit(head, w.fruits); idx >= 0 {
		f := w.fruits[idx]
		w.fruits = slices.Delete(w.fruits, idx, idx+1)
		w.consume(f)
	}

	if n := w.rivals.EatDrops(head); n > 0 {
		w.player.Grow(n)
		w.addScore(n)
		w.emit(EventEat)
	}

	if !w.status.Immune() && w.rivals.HitsBody(head) {
		w.emit(EventCollision)
		w.end(CauseRival)
	}
}

func (w *World) consume(f fruit.Fruit) {
	b, ok := w.reg.Get(f.ID)
	if !ok {
		return
	}
	out := b.OnConsume(w.context(f))

	w.addScore(out.Score)
	w.combo++
	w.comboLeft = w.cfg.ComboWindow
	if out.ResetCombo {
		w.combo, w.comboLeft = 0, 0
	}

	switch f.Category {
	case fruit.Normal:
		w.emit(EventEat)
	case fruit.Trap:
		w.emit(EventTrap)
	default:
		w.emit(EventPower)
	}

	if out.EndGame {
		w.end(CauseTrap)
	}
}

func (w *World) updateRivals(dt float64) {
	targets := make([]core.Point, 0, len(w.fruits)+1)
	if w.hasFood {
		targets = append(targets, w.food)
	}
	for _, f := range w.fruits {
		targets = append(targets, f.Pos)
	}
	w.rivals.Think(dt, targets, w.player, w.wrap, w.rng)

	food := core.Pt(-1, -1)
	if w.hasFood {
		food = w.food
	}
	rep := w.rivals.Move(dt, rival.MoveEnv{
		Registry:     w.reg,
		Player:       w.player,
		PlayerImmune: w.status.Immune(),
		Wrap:         w.wrap,
		Food:         food,
		Fruits:       w.fruits,
		Now:          w.now,
		FX:           w.fx,
	}, w.rng)

	w.fruits = rep.Fruits
	if rep.AteFood {
		w.respawnFood()
	}
	for _, d := range rep.Deaths {
		w.emit(EventRivalDeath)
		w.log.Debug("rival died", "id", d.ID, "cause", d.Cause, "length", len(d.Body))
	}
	if rep.PlayerHit {
		w.emit(EventCollision)
		w.end(CauseRival)
	}
}

func (w *World) expire() {
	var expired []fruit.Fruit
	kept := w.fruits[:0]
	for _, f := range w.fruits {
		if f.Expired(w.now) {
			expired = append(expired, f)
			continue
		}
		kept = append(kept, f)
	}
	w.fruits = kept

	for _, f := range expired {
		b, ok := w.reg.Get(f.ID)
		if !ok {
			continue
		}
		ctx := w.context(f)
		ctx.Status = nil
		b.OnExpire(ctx)
	}

	w.rivals.ExpireDrops(w.now)
	w.portals = slices.DeleteFunc(w.portals, func(p actor.Portal) bool {
		return p.Expired(w.now)
	})
}

// updatePortals tries to open a pair at a fixed interval while none exist.
func (w *World) updatePortals(dt float64) {
	if len(w.portals) > 0 {
		w.portalTimer = 0
		return
	}
	w.portalTimer += dt
	if w.portalTimer < w.cfg.Portals.Every {
		return
	}
	w.portalTimer = 0
	if w.rng.Float64() >= w.cfg.Portals.Chance {
		return
	}

	blocked := w.blocked()
	a, ok := spawn.Place(w.cfg.Grid, blocked, spawn.Retries, w.rng)
	if !ok {
		return
	}
	b, ok := spawn.Place(w.cfg.Grid, actor.AnyOf(blocked, func(p core.Point) bool { return p == a }), spawn.Retries, w.rng)
	if !ok {
		return
	}
	w.portals = append(w.portals, actor.Portal{
		A:        a,
		B:        b,
		Born:     w.now,
		Lifetime: w.cfg.Portals.Lifetime,
		Hue:      w.rng.Intn(4),
	})
}
