// Package hazard implements the timed state machines that act on the
// player's body: the explosive that travels down the body, the damage
// crumble, and the transformation sequence.
//
// Machines are driven only by elapsed time and trigger calls. Update
// reports what happened; the world applies score, particles and sound.
package hazard

import (
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
)

// MinLength is the shortest body a hazard may leave without ending the game.
const MinLength = 3

// ExplosivePhase is the state of the explosive machine.
type ExplosivePhase int

const (
	ExplosiveIdle ExplosivePhase = iota
	Swallowed
	Traveling
	Detonated
	AfterEffect
)

func (p ExplosivePhase) String() string {
	switch p {
	case ExplosiveIdle:
		return "idle"
	case Swallowed:
		return "swallowed"
	case Traveling:
		return "traveling"
	case Detonated:
		return "detonated"
	case AfterEffect:
		return "after-effect"
	default:
		return "unknown"
	}
}

// ExplosiveConfig holds the explosive timings.
type ExplosiveConfig struct {
	Step          float64 // seconds per body index
	Fraction      float64 // detonates at index >= len*Fraction
	AfterEffect   float64 // after-effect duration
	BleedInterval float64 // seconds between attrition ticks
}

// DefaultExplosiveConfig returns the stock timings.
func DefaultExplosiveConfig() ExplosiveConfig {
	return ExplosiveConfig{Step: 0.3, Fraction: 0.5, AfterEffect: 20, BleedInterval: 0.5}
}

// ExplosiveEvent reports what an update did.
type ExplosiveEvent struct {
	// Detonated is set on the update the explosive goes off; At is the
	// cell it went off in.
	Detonated bool
	At        core.Point

	// Bled holds tail cells lost to attrition during this update.
	Bled []core.Point

	// Terminal asks the world to end the game.
	Terminal bool
}

// Explosive travels through the body, detonates, then bleeds the tail.
type Explosive struct {
	cfg   ExplosiveConfig
	phase ExplosivePhase

	pos       int
	stepTimer float64

	remaining  float64
	bleedTimer float64
}

// NewExplosive returns an idle machine.
func NewExplosive(cfg ExplosiveConfig) *Explosive {
	return &Explosive{cfg: cfg}
}

// Phase returns the current phase.
func (e *Explosive) Phase() ExplosivePhase { return e.phase }

// Position returns the body index the explosive has reached.
func (e *Explosive) Position() int { return e.pos }

// AfterEffectRemaining returns the seconds left on the after-effect.
func (e *Explosive) AfterEffectRemaining() float64 { return e.remaining }

// Armed reports whether an explosive is inside the body.
func (e *Explosive) Armed() bool {
	return e.phase == Swallowed || e.phase == Traveling
}

// Arm puts a fresh explosive at the head, replacing any after-effect in
// progress.
func (e *Explosive) Arm() {
	e.phase = Swallowed
	e.pos = 0
	e.stepTimer = 0
}

// ClearAfterEffect ends attrition. An armed explosive is unaffected.
func (e *Explosive) ClearAfterEffect() {
	if e.phase == AfterEffect {
		e.phase = ExplosiveIdle
	}
	e.remaining = 0
	e.bleedTimer = 0
}

// Reset returns to idle.
func (e *Explosive) Reset() {
	*e = Explosive{cfg: e.cfg}
}

// FlashHz is the blink rate of the explosive: 2Hz at the head rising to
// 10Hz at the detonation point.
func (e *Explosive) FlashHz(length int) float64 {
	if length <= 0 {
		return 2
	}
	progress := float64(e.pos) / (float64(length) * e.cfg.Fraction)
	return 2 + min(progress, 1)*8
}

func (e *Explosive) detonationIndex(length int) int {
	return int(float64(length) * e.cfg.Fraction)
}

// Update advances the machine by dt and mutates the body on detonation
// and attrition.
func (e *Explosive) Update(dt float64, s *actor.Snake) ExplosiveEvent {
	var ev ExplosiveEvent

	switch e.phase {
	case Swallowed:
		e.phase = Traveling
		fallthrough

	case Traveling:
		e.stepTimer += dt
		for e.stepTimer >= e.cfg.Step {
			e.stepTimer -= e.cfg.Step
			e.pos++
		}
		if e.pos < e.detonationIndex(s.Len()) {
			return ev
		}
		e.detonate(s, &ev)

	case AfterEffect:
		e.bleed(dt, s, &ev)
	}
	return ev
}

func (e *Explosive) detonate(s *actor.Snake, ev *ExplosiveEvent) {
	e.phase = Detonated
	idx := min(e.pos, s.Len()-1)
	ev.Detonated = true
	ev.At = s.Body[idx]

	if e.pos < MinLength || s.Len() < MinLength {
		ev.Terminal = true
		e.phase = ExplosiveIdle
		return
	}

	s.Truncate(e.pos)
	e.phase = AfterEffect
	e.remaining = e.cfg.AfterEffect
	e.bleedTimer = 0
	e.pos = 0
}

func (e *Explosive) bleed(dt float64, s *actor.Snake, ev *ExplosiveEvent) {
	step := min(dt, e.remaining)
	e.remaining -= dt
	e.bleedTimer += step

	for e.bleedTimer >= e.cfg.BleedInterval {
		e.bleedTimer -= e.cfg.BleedInterval
		tail, ok := s.PopTail(MinLength)
		if !ok {
			break
		}
		ev.Bled = append(ev.Bled, tail)
	}

	if e.remaining <= 0 || s.Len() <= MinLength {
		e.phase = ExplosiveIdle
		e.remaining = 0
		e.bleedTimer = 0
	}
}
