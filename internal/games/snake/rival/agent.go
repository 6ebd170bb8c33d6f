// Package rival implements the computer-controlled snakes that compete
// with the player for food, and the food they leave behind when they die.
package rival

import (
	"math/rand"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

// Palette is the set of colors rivals are drawn in.
var Palette = []core.Color{
	core.ColorOrange,
	core.ColorMagenta,
	core.ColorPink,
	core.ColorBrightBlue,
	core.ColorYellow,
	core.ColorBrightMagenta,
}

// Agent is one rival snake.
type Agent struct {
	ID     int
	Snake  *actor.Snake
	Status *status.State
	Color  core.Color

	Target    core.Point
	HasTarget bool

	PendingGrowth int

	thinkTimer float64
	moveAcc    float64
}

// Body returns the segments, head first.
func (a *Agent) Body() []core.Point { return a.Snake.Body }

// Head returns the first segment.
func (a *Agent) Head() core.Point { return a.Snake.Head() }

// Len returns the number of segments.
func (a *Agent) Len() int { return a.Snake.Len() }

// Grow queues growth applied on the following moves.
func (a *Agent) Grow(n int) {
	if n > 0 {
		a.PendingGrowth += n
	}
}

// Tick returns the agent's movement interval in seconds.
func (a *Agent) Tick(cfg Config) float64 {
	ms := max(cfg.MinTickMs, cfg.BaseTickMs-(a.Len()/3)*cfg.TickStepMs)
	return float64(ms) / 1000 * a.Status.TickMultiplier()
}

// view is what an agent can see when deciding.
type view struct {
	grid    actor.Grid
	wrap    bool
	player  []core.Point
	others  [][]core.Point
	targets []core.Point
}

// think picks the next direction. Frozen agents do nothing; dizzy agents
// sometimes turn at random; the rest head for the nearest target.
func (a *Agent) think(cfg Config, v view, rng *rand.Rand) {
	if a.Status.Active(status.Frozen) {
		return
	}
	if a.Status.Active(status.Dizzy) && rng.Float64() < cfg.DizzyChance {
		a.Snake.SetDirection(randomTurn(a.Snake.Dir, rng))
		return
	}

	head := a.Head()
	a.Target, a.HasTarget = Nearest(head, v.targets)

	desired := a.Snake.Dir
	if a.HasTarget {
		desired = toward(head, a.Target, a.Snake.Dir)
	} else if rng.Float64() < cfg.WanderChance {
		desired = core.Directions[rng.Intn(len(core.Directions))]
	}

	if d, ok := a.safeDirection(desired, v); ok {
		a.Snake.SetDirection(d)
	}
}

// safeDirection tries the preferred direction, then the cardinal ones in
// order, skipping the reverse of the current heading. ok is false when
// nothing is safe.
func (a *Agent) safeDirection(preferred core.Direction, v view) (core.Direction, bool) {
	candidates := [5]core.Direction{preferred, core.DirUp, core.DirDown, core.DirLeft, core.DirRight}
	for _, d := range candidates {
		if d.IsOpposite(a.Snake.Dir) {
			continue
		}
		if a.safe(a.Head().Add(d), v) {
			return d, true
		}
	}
	return a.Snake.Dir, false
}

func (a *Agent) safe(p core.Point, v view) bool {
	if v.wrap {
		p = p.Wrap(v.grid.W, v.grid.H)
	} else if !v.grid.Contains(p) {
		return false
	}

	// MoveForward checks the whole body, tail included.
	if a.Snake.Occupies(p) {
		return false
	}
	for _, b := range v.player {
		if b == p {
			return false
		}
	}
	for _, other := range v.others {
		for _, b := range other {
			if b == p {
				return false
			}
		}
	}
	return true
}

// Nearest returns the closest target by straight-line distance. Ties keep
// the earlier target.
func Nearest(from core.Point, targets []core.Point) (core.Point, bool) {
	best, bestDist := core.Point{}, -1
	for _, t := range targets {
		d := from.DistSq(t)
		if bestDist < 0 || d < bestDist {
			best, bestDist = t, d
		}
	}
	return best, bestDist >= 0
}

// toward returns the axis direction that closes the larger gap. On the
// target itself it keeps the current heading.
func toward(from, to core.Point, current core.Direction) core.Direction {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case core.Abs(dx) > core.Abs(dy):
		if dx > 0 {
			return core.DirRight
		}
		return core.DirLeft
	case dy > 0:
		return core.DirDown
	case dy < 0:
		return core.DirUp
	default:
		return current
	}
}

func randomTurn(current core.Direction, rng *rand.Rand) core.Direction {
	valid := make([]core.Direction, 0, 3)
	for _, d := range core.Directions {
		if !d.IsOpposite(current) {
			valid = append(valid, d)
		}
	}
	return valid[rng.Intn(len(valid))]
}
