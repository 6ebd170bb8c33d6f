// Package fx holds the cosmetic effect lists the simulation emits into:
// particles and blood stains. Nothing in the game logic reads them back.
package fx

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// Drag is the per-update velocity damping applied to particles.
const Drag = 0.95

// Particle is a short-lived point effect measured in grid cells.
type Particle struct {
	X, Y    float64 // cell coordinates, centre of a cell is +0.5
	VX, VY  float64 // cells per second
	Life    float64 // seconds remaining
	MaxLife float64
	Color   core.Color
}

// Cell returns the grid cell the particle currently occupies.
func (p Particle) Cell() core.Point {
	return core.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// Stain is a fading mark left on the board.
type Stain struct {
	Pos      core.Point
	Born     float64
	Lifetime float64
	Alpha    float64
}

// Burst describes a radial particle emission.
type Burst struct {
	Count              int
	MinSpeed, MaxSpeed float64
	MinLife, MaxLife   float64
	Colors             []core.Color
}

// Preset bursts used by the simulation.
var (
	Explosion = Burst{Count: 30, MinSpeed: 4, MaxSpeed: 10, MinLife: 0.3, MaxLife: 0.7,
		Colors: []core.Color{core.ColorOrange, core.ColorRed}}
	BloodSpray = Burst{Count: 15, MinSpeed: 2, MaxSpeed: 6, MinLife: 0.3, MaxLife: 0.6,
		Colors: []core.Color{core.ColorBlood}}
	Sparkle = Burst{Count: 20, MinSpeed: 2, MaxSpeed: 5, MinLife: 0.4, MaxLife: 0.8,
		Colors: []core.Color{core.ColorBrightGreen}}
	Confetti = Burst{Count: 25, MinSpeed: 3, MaxSpeed: 8, MinLife: 0.4, MaxLife: 0.9,
		Colors: []core.Color{core.ColorBrightYellow, core.ColorBrightMagenta, core.ColorBrightCyan}}
	Hatch = Burst{Count: 15, MinSpeed: 2, MaxSpeed: 5, MinLife: 0.3, MaxLife: 0.6,
		Colors: []core.Color{core.ColorPink}}
	Collapse = Burst{Count: 50, MinSpeed: 5, MaxSpeed: 15, MinLife: 1, MaxLife: 1,
		Colors: []core.Color{core.ColorSand}}
)

// Sink collects particles and stains. It is owned by the world.
type Sink struct {
	Particles []Particle
	Stains    []Stain
}

// Emit spawns a burst centred on a grid cell.
func (s *Sink) Emit(at core.Point, b Burst, rng *rand.Rand) {
	for i := 0; i < b.Count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := between(rng, b.MinSpeed, b.MaxSpeed)
		life := between(rng, b.MinLife, b.MaxLife)
		c := core.ColorDefault
		if len(b.Colors) > 0 {
			c = b.Colors[rng.Intn(len(b.Colors))]
		}
		s.Particles = append(s.Particles, Particle{
			X:       float64(at.X) + 0.5,
			Y:       float64(at.Y) + 0.5,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
			Color:   c,
		})
	}
}

// Scatter spawns n slow particles per cell, used for rival deaths and
// freeze frost.
func (s *Sink) Scatter(cells []core.Point, n int, c core.Color, rng *rand.Rand) {
	for _, at := range cells {
		for i := 0; i < n; i++ {
			s.Particles = append(s.Particles, Particle{
				X:       float64(at.X) + 0.5,
				Y:       float64(at.Y) + 0.5,
				VX:      between(rng, -2.5, 2.5),
				VY:      between(rng, -2.5, 2.5),
				Life:    0.5,
				MaxLife: 0.5,
				Color:   c,
			})
		}
	}
}

// Bleed sprays blood at a cell and leaves a stain behind.
func (s *Sink) Bleed(at core.Point, now, lifetime float64, rng *rand.Rand) {
	s.Emit(at, BloodSpray, rng)
	s.Stains = append(s.Stains, Stain{
		Pos:      at,
		Born:     now,
		Lifetime: lifetime,
		Alpha:    between(rng, 0.5, 0.8),
	})
}

// Update moves particles, applies drag and drops expired entries.
func (s *Sink) Update(dt, now float64) {
	live := s.Particles[:0]
	for _, p := range s.Particles {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VX *= Drag
		p.VY *= Drag
		p.Life -= dt
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	s.Particles = live

	stains := s.Stains[:0]
	for _, st := range s.Stains {
		if now-st.Born < st.Lifetime {
			stains = append(stains, st)
		}
	}
	s.Stains = stains
}

// Reset drops every effect.
func (s *Sink) Reset() {
	s.Particles = s.Particles[:0]
	s.Stains = s.Stains[:0]
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}
