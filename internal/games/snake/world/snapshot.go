package world

import (
	"slices"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fx"
	"github.com/vovakirdan/snake-arena/internal/games/snake/hazard"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

// TimerView is one running status timer.
type TimerView struct {
	Name      status.Name
	Remaining float64
}

// FruitView is a live consumable as drawn.
type FruitView struct {
	ID        string
	Category  fruit.Category
	Pos       core.Point
	Remaining float64 // -1 for permanent
	Cell      core.Cell
}

// RivalView is a rival as drawn.
type RivalView struct {
	ID     int
	Body   []core.Point
	Prev   []core.Point
	Dir    core.Direction
	Color  core.Color
	Timers []TimerView
}

// DropView is dropped food as drawn.
type DropView struct {
	Pos       core.Point
	Remaining float64
}

// HazardView holds the phases of the hazard machines.
type HazardView struct {
	Explosive         hazard.ExplosivePhase
	ExplosiveIndex    int
	ExplosiveHz       float64
	AfterEffect       float64
	Damage            hazard.DamagePhase
	DamageVisible     bool
	Transform         hazard.TransformPhase
	TransformSegment  int
	TransformCollapse float64
}

// Snapshot is a read-only copy of the world for presentation. Nothing in
// it aliases world state.
type Snapshot struct {
	Grid  actor.Grid
	Now   float64
	Steps uint64
	Blend float64

	Body []core.Point
	Prev []core.Point
	Dir  core.Direction

	Food    core.Point
	HasFood bool

	Fruits    []FruitView
	Rivals    []RivalView
	Drops     []DropView
	Portals   []actor.Portal
	Particles []fx.Particle
	Stains    []fx.Stain

	Timers  []TimerView
	Hazards HazardView

	Score     int
	HighScore int
	Combo     int
	Length    int

	State State
	Cause Cause
	Wrap  bool
}

// Snapshot copies the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Grid:  w.cfg.Grid,
		Now:   w.now,
		Steps: w.steps,
		Blend: w.blend,

		Body: slices.Clone(w.player.Body),
		Prev: slices.Clone(w.player.Prev),
		Dir:  w.player.Dir,

		Food:    w.food,
		HasFood: w.hasFood,

		Portals:   slices.Clone(w.portals),
		Particles: slices.Clone(w.fx.Particles),
		Stains:    slices.Clone(w.fx.Stains),

		Timers: timers(w.status),
		Hazards: HazardView{
			Explosive:         w.explosive.Phase(),
			ExplosiveIndex:    w.explosive.Position(),
			ExplosiveHz:       w.explosive.FlashHz(w.player.Len()),
			AfterEffect:       w.explosive.AfterEffectRemaining(),
			Damage:            w.damage.Phase(),
			DamageVisible:     w.damage.Visible(),
			Transform:         w.transform.Phase(),
			TransformSegment:  w.transform.Segment(),
			TransformCollapse: w.transform.Collapse(),
		},

		Score:     w.score,
		HighScore: w.highScore,
		Combo:     w.combo,
		Length:    w.player.Len(),

		State: w.State(),
		Cause: w.cause,
		Wrap:  w.wrap,
	}

	for _, f := range w.fruits {
		v := FruitView{ID: f.ID, Category: f.Category, Pos: f.Pos, Remaining: f.Remaining(w.now)}
		if b, ok := w.reg.Get(f.ID); ok {
			v.Cell = b.Render(w.now)
		}
		s.Fruits = append(s.Fruits, v)
	}
	for _, a := range w.rivals.Agents() {
		s.Rivals = append(s.Rivals, RivalView{
			ID:     a.ID,
			Body:   slices.Clone(a.Snake.Body),
			Prev:   slices.Clone(a.Snake.Prev),
			Dir:    a.Snake.Dir,
			Color:  a.Color,
			Timers: timers(a.Status),
		})
	}
	for _, d := range w.rivals.Drops() {
		s.Drops = append(s.Drops, DropView{Pos: d.Pos, Remaining: max(0, d.Lifetime-(w.now-d.Born))})
	}
	return s
}

func timers(st *status.State) []TimerView {
	var out []TimerView
	for _, r := range st.ActiveTimers() {
		out = append(out, TimerView{Name: r.Name, Remaining: r.Remaining})
	}
	return out
}
