package hazard

import (
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
)

// DamagePhase is the state of the damage machine.
type DamagePhase int

const (
	DamageIdle DamagePhase = iota
	Flashing
	Crumbling
)

func (p DamagePhase) String() string {
	switch p {
	case DamageIdle:
		return "idle"
	case Flashing:
		return "flashing"
	case Crumbling:
		return "crumbling"
	default:
		return "unknown"
	}
}

// DamageConfig holds the damage timings.
type DamageConfig struct {
	Flash         float64 // total flash time
	Flashes       int     // blinks during the flash
	CrumbleEvery  float64 // seconds between removed segments
	StainLifetime float64
}

// DefaultDamageConfig returns the stock timings.
func DefaultDamageConfig() DamageConfig {
	return DamageConfig{Flash: 0.6, Flashes: 4, CrumbleEvery: 0.15, StainLifetime: 5}
}

// Damage flashes the body, then removes tail segments one at a time.
type Damage struct {
	cfg     DamageConfig
	phase   DamagePhase
	timer   float64
	pending int
}

// NewDamage returns an idle machine.
func NewDamage(cfg DamageConfig) *Damage {
	return &Damage{cfg: cfg}
}

// Config returns the timings.
func (d *Damage) Config() DamageConfig { return d.cfg }

// Phase returns the current phase.
func (d *Damage) Phase() DamagePhase { return d.phase }

// Pending returns how many segments are still to be removed.
func (d *Damage) Pending() int { return d.pending }

// Start begins a damage sequence. Damage taken while one is running adds
// to the pending amount.
func (d *Damage) Start(amount int) {
	if amount <= 0 {
		return
	}
	d.pending += amount
	if d.phase == DamageIdle {
		d.phase = Flashing
		d.timer = 0
	}
}

// Visible reports whether the body is drawn at this point of the flash.
func (d *Damage) Visible() bool {
	if d.phase != Flashing || d.cfg.Flashes <= 0 {
		return true
	}
	period := d.cfg.Flash / float64(d.cfg.Flashes)
	return int(d.timer/(period/2))%2 == 0
}

// Reset returns to idle.
func (d *Damage) Reset() {
	*d = Damage{cfg: d.cfg}
}

// Update advances the machine and returns the tail cells removed.
func (d *Damage) Update(dt float64, s *actor.Snake) []core.Point {
	switch d.phase {
	case Flashing:
		d.timer += dt
		if d.timer < d.cfg.Flash {
			return nil
		}
		d.timer -= d.cfg.Flash
		d.phase = Crumbling
		return d.crumble(s)

	case Crumbling:
		d.timer += dt
		return d.crumble(s)
	}
	return nil
}

func (d *Damage) crumble(s *actor.Snake) []core.Point {
	var removed []core.Point
	for d.pending > 0 && d.timer >= d.cfg.CrumbleEvery {
		d.timer -= d.cfg.CrumbleEvery
		tail, ok := s.PopTail(MinLength)
		if !ok {
			d.pending = 0
			break
		}
		removed = append(removed, tail)
		d.pending--
	}
	if d.pending == 0 {
		d.phase = DamageIdle
		d.timer = 0
	}
	return removed
}
