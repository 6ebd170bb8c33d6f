package hazard

import (
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
)

// TransformPhase is the state of the transformation machine.
type TransformPhase int

const (
	TransformIdle TransformPhase = iota
	TransformFlashing
	Transforming
	Exiting
	Filling
	FilledFlashing
	Consuming
)

func (p TransformPhase) String() string {
	switch p {
	case TransformIdle:
		return "idle"
	case TransformFlashing:
		return "flashing"
	case Transforming:
		return "transforming"
	case Exiting:
		return "exiting"
	case Filling:
		return "filling"
	case FilledFlashing:
		return "filled"
	case Consuming:
		return "consuming"
	default:
		return "unknown"
	}
}

// TransformConfig holds the transformation timings.
type TransformConfig struct {
	Flash        float64 // flash before the sequence starts
	SegmentEvery float64 // seconds per transformed segment
	CellEvery    float64 // seconds per cell while exiting and filling
	FilledFlash  float64
	CollapseRate float64 // collapse progress per second
	Bonus        int     // score when the sequence completes
}

// DefaultTransformConfig returns the stock timings.
func DefaultTransformConfig() TransformConfig {
	return TransformConfig{
		Flash:        1.5,
		SegmentEvery: 0.08,
		CellEvery:    0.02,
		FilledFlash:  1.5,
		CollapseRate: 0.8,
		Bonus:        100,
	}
}

// TransformEvent reports what an update did.
type TransformEvent struct {
	PhaseChanged bool
	Phase        TransformPhase

	// Filled holds cells the body grew into during this update.
	Filled []core.Point

	// Done is set when the original body has been restored.
	Done bool
}

// Transformation takes over the player's body: it turns to sand, leaves
// the board, re-enters and fills the board, then collapses back to the
// body it started with.
type Transformation struct {
	cfg  TransformConfig
	grid actor.Grid

	phase TransformPhase
	timer float64

	segment  int
	exitDir  core.Direction
	path     []core.Point
	index    int
	collapse float64

	origBody []core.Point
	origDir  core.Direction
}

// NewTransformation returns an idle machine for a grid.
func NewTransformation(cfg TransformConfig, g actor.Grid) *Transformation {
	return &Transformation{cfg: cfg, grid: g}
}

// Config returns the timings.
func (t *Transformation) Config() TransformConfig { return t.cfg }

// Phase returns the current phase.
func (t *Transformation) Phase() TransformPhase { return t.phase }

// Active reports whether the sequence owns the body.
func (t *Transformation) Active() bool { return t.phase != TransformIdle }

// Segment returns how many segments have turned to sand.
func (t *Transformation) Segment() int { return t.segment }

// Collapse returns the collapse progress in [0,1].
func (t *Transformation) Collapse() float64 { return t.collapse }

// Remaining returns how many fill cells are left.
func (t *Transformation) Remaining() int { return max(0, len(t.path)-t.index) }

// Begin saves the body and starts the flash. A running sequence is not
// restarted.
func (t *Transformation) Begin(s *actor.Snake) bool {
	if t.Active() {
		return false
	}
	t.origBody = append(t.origBody[:0], s.Body...)
	t.origDir = s.Dir
	t.path = nil
	t.index = 0
	t.segment = 0
	t.collapse = 0
	t.enter(TransformFlashing)
	return true
}

// Reset returns to idle without restoring any body.
func (t *Transformation) Reset() {
	*t = Transformation{cfg: t.cfg, grid: t.grid}
}

func (t *Transformation) enter(p TransformPhase) {
	t.phase = p
	t.timer = 0
}

// Update advances the sequence and mutates the body.
func (t *Transformation) Update(dt float64, s *actor.Snake) TransformEvent {
	if !t.Active() {
		return TransformEvent{}
	}
	start := t.phase
	var ev TransformEvent
	t.timer += dt

	switch t.phase {
	case TransformFlashing:
		if t.timer >= t.cfg.Flash {
			t.enter(Transforming)
		}

	case Transforming:
		for t.timer >= t.cfg.SegmentEvery {
			t.timer -= t.cfg.SegmentEvery
			t.segment++
			if t.segment >= s.Len() {
				t.exitDir = NearestEdge(t.grid, s.Head())
				t.enter(Exiting)
				break
			}
		}

	case Exiting:
		for t.timer >= t.cfg.CellEvery {
			t.timer -= t.cfg.CellEvery
			head := s.Head().Add(t.exitDir)
			copy(s.Body[1:], s.Body[:len(s.Body)-1])
			s.Body[0] = head
			if t.offBoard(s.Body) {
				t.beginFill(s, &ev)
				break
			}
		}

	case Filling:
		for t.timer >= t.cfg.CellEvery {
			t.timer -= t.cfg.CellEvery
			if t.index >= len(t.path) {
				t.enter(FilledFlashing)
				break
			}
			next := t.path[t.index]
			t.index++
			s.Body = append([]core.Point{next}, s.Body...)
			ev.Filled = append(ev.Filled, next)
		}

	case FilledFlashing:
		if t.timer >= t.cfg.FilledFlash {
			t.enter(Consuming)
			t.collapse = 0
		}

	case Consuming:
		t.collapse = min(1, t.collapse+dt*t.cfg.CollapseRate)
		if t.collapse >= 1 {
			s.Replace(t.origBody, t.origDir)
			t.origBody = nil
			t.path = nil
			t.enter(TransformIdle)
			ev.Done = true
		}
	}

	s.Prev = append(s.Prev[:0], s.Body...)
	ev.Phase = t.phase
	ev.PhaseChanged = t.phase != start
	return ev
}

func (t *Transformation) beginFill(s *actor.Snake, ev *TransformEvent) {
	dir := t.exitDir.Opposite()
	entry := EntryPoint(t.grid, dir)
	t.path = FillPath(t.grid, entry, dir)
	t.index = 1
	s.Body = []core.Point{entry}
	s.Dir = dir
	ev.Filled = append(ev.Filled, entry)
	t.enter(Filling)
}

func (t *Transformation) offBoard(body []core.Point) bool {
	for _, p := range body {
		if t.grid.Contains(p) {
			return false
		}
	}
	return true
}

// NearestEdge returns the direction to the closest wall. Ties prefer
// left, then right, top and bottom.
func NearestEdge(g actor.Grid, p core.Point) core.Direction {
	left, right := p.X, g.W-1-p.X
	top, bottom := p.Y, g.H-1-p.Y
	best := min(left, right, top, bottom)
	switch best {
	case left:
		return core.DirLeft
	case right:
		return core.DirRight
	case top:
		return core.DirUp
	default:
		return core.DirDown
	}
}

// EntryPoint returns the midpoint of the edge a body travelling in dir
// enters from.
func EntryPoint(g actor.Grid, dir core.Direction) core.Point {
	switch dir {
	case core.DirRight:
		return core.Pt(0, g.H/2)
	case core.DirLeft:
		return core.Pt(g.W-1, g.H/2)
	case core.DirDown:
		return core.Pt(g.W/2, 0)
	default:
		return core.Pt(g.W/2, g.H-1)
	}
}

// FillPath walks the board from start, going straight while it can and
// otherwise turning right, then left, then back. It stops when every
// neighbour has been visited. Every cell appears at most once.
func FillPath(g actor.Grid, start core.Point, dir core.Direction) []core.Point {
	visited := make([]bool, g.W*g.H)
	free := func(p core.Point) bool {
		return g.Contains(p) && !visited[p.Y*g.W+p.X]
	}

	path := make([]core.Point, 0, g.W*g.H)
	pos := start
	for {
		if free(pos) {
			visited[pos.Y*g.W+pos.X] = true
			path = append(path, pos)
		}

		moved := false
		for _, d := range [...]core.Direction{dir, dir.Clockwise(), dir.CounterClockwise(), dir.Opposite()} {
			if next := pos.Add(d); free(next) {
				pos, dir, moved = next, d, true
				break
			}
		}
		if !moved {
			return path
		}
	}
}
