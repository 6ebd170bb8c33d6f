package rival

import (
	"math/rand"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fx"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

// Config holds the rival tuning.
type Config struct {
	MaxCount      int
	ThinkEvery    float64
	BaseTickMs    int
	MinTickMs     int
	TickStepMs    int
	DizzyChance   float64
	WanderChance  float64
	SpawnMargin   int
	SpawnAttempts int
	MinLength     int
	MaxLength     int
	DropLifetime  float64
	DropSpread    int
	DevourScore   int // per devoured segment
	Durations     status.Durations
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		MaxCount:      3,
		ThinkEvery:    0.2,
		BaseTickMs:    150,
		MinTickMs:     60,
		TickStepMs:    5,
		DizzyChance:   0.4,
		WanderChance:  0.1,
		SpawnMargin:   3,
		SpawnAttempts: 100,
		MinLength:     3,
		MaxLength:     5,
		DropLifetime:  10,
		DropSpread:    1,
		DevourScore:   2,
		Durations:     status.DefaultDurations(),
	}
}

// DroppedFood is left behind by a dead rival.
type DroppedFood struct {
	Pos      core.Point
	Born     float64
	Lifetime float64
}

// Position implements actor.Positioned.
func (d DroppedFood) Position() core.Point { return d.Pos }

// Expired reports whether the food has outlived its lifetime.
func (d DroppedFood) Expired(now float64) bool {
	return now-d.Born >= d.Lifetime
}

// Cause says why a rival died.
type Cause int

const (
	HitPlayer Cause = iota
	HitRival
	HitSelf
	HitWall
)

func (c Cause) String() string {
	switch c {
	case HitPlayer:
		return "player"
	case HitRival:
		return "rival"
	case HitSelf:
		return "self"
	case HitWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Death records a rival that died this update.
type Death struct {
	ID    int
	Body  []core.Point
	Cause Cause
}

// MoveEnv is the world view needed to move rivals.
type MoveEnv struct {
	Registry     *fruit.Registry
	Player       *actor.Snake
	PlayerImmune bool
	Wrap         bool
	Food         core.Point
	Fruits       []fruit.Fruit
	Now          float64
	FX           *fx.Sink
}

// Report is the result of moving the rivals.
type Report struct {
	// Fruits is MoveEnv.Fruits minus anything rivals ate.
	Fruits    []fruit.Fruit
	AteFood   bool
	Deaths    []Death
	PlayerHit bool
}

// Manager owns the rivals and their dropped food.
type Manager struct {
	cfg    Config
	grid   actor.Grid
	agents []*Agent
	drops  []DroppedFood
	nextID int
}

// NewManager returns an empty manager.
func NewManager(cfg Config, g actor.Grid) *Manager {
	return &Manager{cfg: cfg, grid: g, nextID: 1}
}

// Config returns the tuning.
func (m *Manager) Config() Config { return m.cfg }

// Agents returns the live rivals.
func (m *Manager) Agents() []*Agent { return m.agents }

// Drops returns the dropped food.
func (m *Manager) Drops() []DroppedFood { return m.drops }

// Reset removes every rival and dropped food.
func (m *Manager) Reset() {
	m.agents = nil
	m.drops = nil
	m.nextID = 1
}

// Spawn adds a rival away from origin and the existing rivals. It refuses
// beyond the population cap and gives up after a bounded number of tries.
func (m *Manager) Spawn(origin *actor.Snake, rng *rand.Rand) bool {
	if len(m.agents) >= m.cfg.MaxCount {
		return false
	}

	var taken []core.Point
	if origin != nil {
		taken = append(taken, origin.Body...)
	}
	for _, a := range m.agents {
		taken = append(taken, a.Body()...)
	}
	blocked := actor.CellSet(taken)

	lo := m.cfg.SpawnMargin
	w, h := m.grid.W-2*lo, m.grid.H-2*lo
	if w <= 0 || h <= 0 {
		return false
	}

	for i := 0; i < m.cfg.SpawnAttempts; i++ {
		head := core.Pt(lo+rng.Intn(w), lo+rng.Intn(h))
		if blocked(head) {
			continue
		}
		dir := core.Directions[rng.Intn(len(core.Directions))]
		n := m.cfg.MinLength + rng.Intn(m.cfg.MaxLength-m.cfg.MinLength+1)

		body, ok := m.layout(head, dir, n, blocked)
		if !ok {
			continue
		}

		s := &actor.Snake{Body: body, Prev: append([]core.Point(nil), body...), Dir: dir, Grid: m.grid}
		m.agents = append(m.agents, &Agent{
			ID:     m.nextID,
			Snake:  s,
			Status: status.New(m.cfg.Durations),
			Color:  Palette[rng.Intn(len(Palette))],
		})
		m.nextID++
		return true
	}
	return false
}

// Add places a rival with a given body, ignoring the cap. Scripted
// scenarios use it.
func (m *Manager) Add(body []core.Point, dir core.Direction) *Agent {
	b := append([]core.Point(nil), body...)
	a := &Agent{
		ID:     m.nextID,
		Snake:  &actor.Snake{Body: b, Prev: append([]core.Point(nil), b...), Dir: dir, Grid: m.grid},
		Status: status.New(m.cfg.Durations),
		Color:  Palette[(m.nextID-1)%len(Palette)],
	}
	m.nextID++
	m.agents = append(m.agents, a)
	return a
}

func (m *Manager) layout(head core.Point, dir core.Direction, n int, blocked actor.Occupied) ([]core.Point, bool) {
	back := dir.Opposite()
	body := make([]core.Point, 0, n)
	p := head
	for i := 0; i < n; i++ {
		if !m.grid.Contains(p) || blocked(p) {
			return nil, false
		}
		body = append(body, p)
		p = p.Add(back)
	}
	return body, true
}

// Think runs each rival's decision cycle.
func (m *Manager) Think(dt float64, targets []core.Point, player *actor.Snake, wrap bool, rng *rand.Rand) {
	for i, a := range m.agents {
		a.thinkTimer += dt
		if a.thinkTimer < m.cfg.ThinkEvery {
			continue
		}
		a.thinkTimer = 0

		v := view{grid: m.grid, wrap: wrap, targets: targets}
		if player != nil {
			v.player = player.Body
		}
		for j, o := range m.agents {
			if j != i {
				v.others = append(v.others, o.Body())
			}
		}
		a.think(m.cfg, v, rng)
	}
}

// Move advances every rival by dt, resolves its collisions and feeding,
// then converts dead rivals into dropped food.
func (m *Manager) Move(dt float64, env MoveEnv, rng *rand.Rand) Report {
	rep := Report{Fruits: env.Fruits}

	bodies := make([][]core.Point, len(m.agents))
	for i, a := range m.agents {
		bodies[i] = append([]core.Point(nil), a.Body()...)
	}

	dead := make(map[int]Cause)
	for i, a := range m.agents {
		a.Status.Update(dt)
		a.moveAcc += dt
		tick := a.Tick(m.cfg)
		if a.moveAcc < tick {
			continue
		}
		a.moveAcc -= tick

		if a.Status.Active(status.Frozen) {
			continue
		}

		// Buffs never let a rival through walls or its own body.
		res := a.Snake.MoveForward(env.Wrap, false)
		switch res.Outcome {
		case actor.WallCollision:
			dead[i] = HitWall
			continue
		case actor.SelfCollision:
			dead[i] = HitSelf
			continue
		}
		if a.PendingGrowth > 0 {
			a.Snake.Grow(1)
			a.PendingGrowth--
		}

		head := res.Head
		if env.Player != nil && env.Player.Occupies(head) && !env.PlayerImmune {
			dead[i] = HitPlayer
			continue
		}
		if hitsOther(i, head, bodies) {
			dead[i] = HitRival
			continue
		}

		m.feed(a, head, env, &rep)
	}

	if env.Player != nil && env.Player.Len() > 0 && !env.PlayerImmune {
		ph := env.Player.Head()
		for i, a := range m.agents {
			if _, gone := dead[i]; gone {
				continue
			}
			if a.Snake.Occupies(ph) {
				rep.PlayerHit = true
				break
			}
		}
	}

	if len(dead) > 0 {
		rep.Deaths = m.bury(dead, env, rng)
	}
	return rep
}

func hitsOther(self int, head core.Point, bodies [][]core.Point) bool {
	for j, body := range bodies {
		if j == self {
			continue
		}
		for _, b := range body {
			if b == head {
				return true
			}
		}
	}
	return false
}

func (m *Manager) feed(a *Agent, head core.Point, env MoveEnv, rep *Report) {
	if head == env.Food && !rep.AteFood {
		a.Grow(1)
		rep.AteFood = true
	}

	kept := m.drops[:0]
	for _, d := range m.drops {
		if d.Pos == head {
			a.Grow(1)
			continue
		}
		kept = append(kept, d)
	}
	m.drops = kept

	if idx := actor.IndexAt(rep.Fruits, head); idx >= 0 {
		f := rep.Fruits[idx]
		rep.Fruits = append(rep.Fruits[:idx:idx], rep.Fruits[idx+1:]...)
		if b, ok := env.Registry.Get(f.ID); ok {
			a.Grow(b.FeedRival(a.Status))
		}
	}
}

// bury removes dead rivals, leaving one dropped food per segment near
// where it was.
func (m *Manager) bury(dead map[int]Cause, env MoveEnv, rng *rand.Rand) []Death {
	var deaths []Death
	alive := m.agents[:0]
	for i, a := range m.agents {
		cause, gone := dead[i]
		if !gone {
			alive = append(alive, a)
			continue
		}
		body := append([]core.Point(nil), a.Body()...)
		deaths = append(deaths, Death{ID: a.ID, Body: body, Cause: cause})

		if env.FX != nil {
			env.FX.Scatter(body, 3, a.Color, rng)
		}
		m.Drop(body, env.Now, rng)
	}
	for i := len(alive); i < len(m.agents); i++ {
		m.agents[i] = nil
	}
	m.agents = alive
	return deaths
}

// Drop scatters one food per cell at a small random offset.
func (m *Manager) Drop(cells []core.Point, now float64, rng *rand.Rand) {
	s := m.cfg.DropSpread
	for _, p := range cells {
		dx := rng.Intn(2*s+1) - s
		dy := rng.Intn(2*s+1) - s
		m.drops = append(m.drops, DroppedFood{
			Pos:      core.Pt(core.Clamp(p.X+dx, 0, m.grid.W-1), core.Clamp(p.Y+dy, 0, m.grid.H-1)),
			Born:     now,
			Lifetime: m.cfg.DropLifetime,
		})
	}
}

// HitsBody reports whether p lies on any rival.
func (m *Manager) HitsBody(p core.Point) bool {
	for _, a := range m.agents {
		if a.Snake.Occupies(p) {
			return true
		}
	}
	return false
}

// Occupies reports whether p lies on any rival or dropped food.
func (m *Manager) Occupies(p core.Point) bool {
	if m.HitsBody(p) {
		return true
	}
	return actor.IndexAt(m.drops, p) >= 0
}

// Devour removes every rival touching a blocked cell without a drop and
// returns the score for the devoured segments.
func (m *Manager) Devour(cells actor.Occupied, sink *fx.Sink, rng *rand.Rand) (score int, eaten []int) {
	alive := m.agents[:0]
	var gone []*Agent
	for _, a := range m.agents {
		hit := false
		for _, p := range a.Body() {
			if cells(p) {
				hit = true
				break
			}
		}
		if !hit {
			alive = append(alive, a)
			continue
		}
		score += a.Len() * m.cfg.DevourScore
		eaten = append(eaten, a.ID)
		gone = append(gone, a)
	}
	for i := len(alive); i < len(m.agents); i++ {
		m.agents[i] = nil
	}
	m.agents = alive
	for _, a := range gone {
		if sink != nil {
			sink.Scatter(a.Body(), 2, core.ColorSand, rng)
		}
	}
	return score, eaten
}

// EatDrops removes dropped food at p and returns how many were eaten.
func (m *Manager) EatDrops(p core.Point) int {
	n := 0
	kept := m.drops[:0]
	for _, d := range m.drops {
		if d.Pos == p {
			n++
			continue
		}
		kept = append(kept, d)
	}
	m.drops = kept
	return n
}

// ExpireDrops removes dropped food past its lifetime.
func (m *Manager) ExpireDrops(now float64) {
	kept := m.drops[:0]
	for _, d := range m.drops {
		if !d.Expired(now) {
			kept = append(kept, d)
		}
	}
	m.drops = kept
}
