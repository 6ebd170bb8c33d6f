package rival

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/actor"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fx"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
)

var grid = actor.Grid{W: 32, H: 24}

func addAgent(m *Manager, dir core.Direction, body ...core.Point) *Agent {
	a := &Agent{
		ID:     m.nextID,
		Snake:  &actor.Snake{Body: body, Prev: slices.Clone(body), Dir: dir, Grid: grid},
		Status: status.New(m.cfg.Durations),
	}
	m.nextID++
	m.agents = append(m.agents, a)
	return a
}

func playerAt(body ...core.Point) *actor.Snake {
	return &actor.Snake{Body: body, Prev: slices.Clone(body), Dir: core.DirRight, Grid: grid}
}

// oneTick is long enough for a short rival to take exactly one step.
const oneTick = 0.15

func TestSpawnRespectsCap(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	rng := rand.New(rand.NewSource(1))
	player := actor.New(grid)

	for i := 0; i < 3; i++ {
		if !m.Spawn(player, rng) {
			t.Fatalf("Spawn() #%d = false, expected true", i+1)
		}
	}
	if m.Spawn(player, rng) {
		t.Error("Spawn() beyond the cap should be refused")
	}
	if len(m.Agents()) != 3 {
		t.Fatalf("Agents() = %d, expected 3", len(m.Agents()))
	}

	cfg := m.Config()
	for _, a := range m.Agents() {
		if a.Len() < cfg.MinLength || a.Len() > cfg.MaxLength {
			t.Errorf("rival %d Len() = %d, expected %d..%d", a.ID, a.Len(), cfg.MinLength, cfg.MaxLength)
		}
		for _, p := range a.Body() {
			if !grid.Contains(p) {
				t.Errorf("rival %d segment %v off the board", a.ID, p)
			}
			if player.Occupies(p) {
				t.Errorf("rival %d spawned on the player at %v", a.ID, p)
			}
		}
	}
}

func TestNearestTieKeepsFirst(t *testing.T) {
	tests := []struct {
		name     string
		targets  []core.Point
		expected core.Point
		ok       bool
	}{
		{"none", nil, core.Point{}, false},
		{"single", []core.Point{core.Pt(1, 1)}, core.Pt(1, 1), true},
		{"closer wins", []core.Point{core.Pt(9, 5), core.Pt(6, 5)}, core.Pt(6, 5), true},
		{"tie keeps first", []core.Point{core.Pt(7, 5), core.Pt(3, 5)}, core.Pt(7, 5), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Nearest(core.Pt(5, 5), tc.targets)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("Nearest() = %v, %v, expected %v, %v", got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestThinkAvoidsBlockedTarget(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	a := addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))
	player := playerAt(core.Pt(6, 5), core.Pt(7, 5))

	m.Think(0.2, []core.Point{core.Pt(10, 5)}, player, false, rand.New(rand.NewSource(1)))
	if a.Snake.Dir != core.DirUp {
		t.Errorf("Dir = %v, expected up around the blocked cell", a.Snake.Dir)
	}
	if !a.HasTarget || a.Target != core.Pt(10, 5) {
		t.Errorf("Target = %v (%v), expected (10,5)", a.Target, a.HasTarget)
	}
}

func TestThinkKeepsHeadingWhenBoxedIn(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	a := addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))
	player := playerAt(core.Pt(6, 5), core.Pt(5, 4), core.Pt(5, 6))

	m.Think(0.2, []core.Point{core.Pt(5, 0)}, player, false, rand.New(rand.NewSource(1)))
	if a.Snake.Dir != core.DirRight {
		t.Errorf("Dir = %v, expected the current heading when nothing is safe", a.Snake.Dir)
	}
}

func TestThinkWaitsForInterval(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	a := addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))

	m.Think(0.1, []core.Point{core.Pt(5, 1)}, nil, false, rand.New(rand.NewSource(1)))
	if a.Snake.Dir != core.DirRight {
		t.Errorf("Dir = %v before the think interval, expected right", a.Snake.Dir)
	}
	m.Think(0.1, []core.Point{core.Pt(5, 1)}, nil, false, rand.New(rand.NewSource(1)))
	if a.Snake.Dir != core.DirUp {
		t.Errorf("Dir = %v after the think interval, expected up", a.Snake.Dir)
	}
}

func TestRivalDeathDropsFood(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	body := []core.Point{core.Pt(31, 5), core.Pt(30, 5), core.Pt(29, 5), core.Pt(28, 5), core.Pt(27, 5)}
	addAgent(m, core.DirRight, slices.Clone(body)...)

	sink := &fx.Sink{}
	rep := m.Move(oneTick, MoveEnv{Registry: fruit.Builtin(), Now: 3, FX: sink, Food: core.Pt(0, 0)}, rand.New(rand.NewSource(7)))

	if len(rep.Deaths) != 1 || rep.Deaths[0].Cause != HitWall {
		t.Fatalf("Deaths = %+v, expected one wall death", rep.Deaths)
	}
	if len(m.Agents()) != 0 {
		t.Errorf("Agents() = %d, expected 0", len(m.Agents()))
	}

	drops := m.Drops()
	if len(drops) != len(body) {
		t.Fatalf("Drops() = %d, expected %d", len(drops), len(body))
	}
	for i, d := range drops {
		if core.Abs(d.Pos.X-body[i].X) > 1 || core.Abs(d.Pos.Y-body[i].Y) > 1 {
			t.Errorf("drop %d at %v, expected within 1 of %v", i, d.Pos, body[i])
		}
		if !grid.Contains(d.Pos) {
			t.Errorf("drop %d at %v off the board", i, d.Pos)
		}
		if d.Lifetime != 10 || d.Born != 3 {
			t.Errorf("drop %d lifetime %v born %v, expected 10 and 3", i, d.Lifetime, d.Born)
		}
	}
	if len(sink.Particles) != 3*len(body) {
		t.Errorf("Particles = %d, expected %d", len(sink.Particles), 3*len(body))
	}

	m.ExpireDrops(12.9)
	if len(m.Drops()) != len(body) {
		t.Errorf("drops expired early")
	}
	m.ExpireDrops(13)
	if len(m.Drops()) != 0 {
		t.Errorf("Drops() = %d after lifetime, expected 0", len(m.Drops()))
	}
}

func TestRivalHitsPlayer(t *testing.T) {
	tests := []struct {
		name   string
		immune bool
		dies   bool
	}{
		{"vulnerable player", false, true},
		{"immune player", true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(DefaultConfig(), grid)
			addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))
			player := playerAt(core.Pt(6, 4), core.Pt(6, 5), core.Pt(6, 6))

			rep := m.Move(oneTick, MoveEnv{
				Registry:     fruit.Builtin(),
				Player:       player,
				PlayerImmune: tc.immune,
				Food:         core.Pt(0, 0),
			}, rand.New(rand.NewSource(1)))

			died := len(rep.Deaths) == 1 && rep.Deaths[0].Cause == HitPlayer
			if died != tc.dies {
				t.Errorf("rival died = %v, expected %v", died, tc.dies)
			}
		})
	}
}

func TestPlayerHitsRival(t *testing.T) {
	tests := []struct {
		name     string
		immune   bool
		expected bool
	}{
		{"vulnerable player", false, true},
		{"immune player", true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(DefaultConfig(), grid)
			addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))
			player := playerAt(core.Pt(4, 5), core.Pt(4, 6), core.Pt(4, 7))

			rep := m.Move(0.01, MoveEnv{
				Registry:     fruit.Builtin(),
				Player:       player,
				PlayerImmune: tc.immune,
				Food:         core.Pt(0, 0),
			}, rand.New(rand.NewSource(1)))

			if rep.PlayerHit != tc.expected {
				t.Errorf("PlayerHit = %v, expected %v", rep.PlayerHit, tc.expected)
			}
		})
	}
}

func TestRivalFeeding(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		growth int
		effect status.Name
	}{
		{"normal grows", fruit.IDNormal, 1, -1},
		{"trap is eaten without growth", fruit.IDTrap, 0, -1},
		{"freeze affects the rival", fruit.IDFreeze, 0, status.Frozen},
		{"shield buffs the rival", fruit.IDShield, 0, status.Shield},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(DefaultConfig(), grid)
			a := addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))
			fruits := []fruit.Fruit{
				{ID: tc.id, Pos: core.Pt(6, 5)},
				{ID: fruit.IDNormal, Pos: core.Pt(20, 20)},
			}

			rep := m.Move(oneTick, MoveEnv{
				Registry: fruit.Builtin(),
				Fruits:   fruits,
				Food:     core.Pt(0, 0),
			}, rand.New(rand.NewSource(1)))

			if len(rep.Fruits) != 1 || rep.Fruits[0].Pos != core.Pt(20, 20) {
				t.Errorf("Fruits = %v, expected only the untouched fruit", rep.Fruits)
			}
			if len(fruits) != 2 || fruits[0].ID != tc.id {
				t.Errorf("input fruits were modified: %v", fruits)
			}
			if a.PendingGrowth != tc.growth {
				t.Errorf("PendingGrowth = %d, expected %d", a.PendingGrowth, tc.growth)
			}
			if tc.effect >= 0 && !a.Status.Active(tc.effect) {
				t.Errorf("%v should be active on the rival", tc.effect)
			}
		})
	}
}

func TestRivalEatsFoodAndDrops(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	a := addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))
	m.drops = []DroppedFood{{Pos: core.Pt(6, 5), Lifetime: 10}, {Pos: core.Pt(6, 5), Lifetime: 10}}

	rep := m.Move(oneTick, MoveEnv{Registry: fruit.Builtin(), Food: core.Pt(6, 5)}, rand.New(rand.NewSource(1)))
	if !rep.AteFood {
		t.Error("AteFood = false, expected true")
	}
	if a.PendingGrowth != 3 {
		t.Errorf("PendingGrowth = %d, expected 3", a.PendingGrowth)
	}
	if len(m.Drops()) != 0 {
		t.Errorf("Drops() = %d, expected 0", len(m.Drops()))
	}

	m.Move(oneTick, MoveEnv{Registry: fruit.Builtin(), Food: core.Pt(0, 0)}, rand.New(rand.NewSource(1)))
	if a.Len() != 4 {
		t.Errorf("Len() = %d, expected 4 after one grown move", a.Len())
	}
}

func TestFrozenRivalHoldsStill(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	a := addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))
	a.Status.Apply(status.Frozen)

	m.Move(oneTick, MoveEnv{Registry: fruit.Builtin(), Food: core.Pt(0, 0)}, rand.New(rand.NewSource(1)))
	if a.Head() != core.Pt(5, 5) {
		t.Errorf("Head() = %v, expected a frozen rival to stay put", a.Head())
	}
}

func TestDevourLeavesNoDrops(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5), core.Pt(2, 5))
	keep := addAgent(m, core.DirRight, core.Pt(5, 15), core.Pt(4, 15), core.Pt(3, 15))

	sink := &fx.Sink{}
	score, eaten := m.Devour(actor.CellSet([]core.Point{core.Pt(3, 5)}), sink, rand.New(rand.NewSource(1)))

	if score != 8 {
		t.Errorf("score = %d, expected 8", score)
	}
	if len(eaten) != 1 {
		t.Errorf("eaten = %v, expected one rival", eaten)
	}
	if len(m.Agents()) != 1 || m.Agents()[0] != keep {
		t.Errorf("Agents() = %v, expected only the untouched rival", m.Agents())
	}
	if len(m.Drops()) != 0 {
		t.Errorf("Drops() = %d, expected none after devouring", len(m.Drops()))
	}
}

func TestTickShortensWithLength(t *testing.T) {
	cfg := DefaultConfig()
	m := NewManager(cfg, grid)
	short := addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))

	if got := short.Tick(cfg); got != 0.145 {
		t.Errorf("Tick() = %v, expected 0.145", got)
	}

	long := make([]core.Point, 60)
	for i := range long {
		long[i] = core.Pt(i%30, 10+i/30)
	}
	a := addAgent(m, core.DirRight, long...)
	if got := a.Tick(cfg); got != 0.06 {
		t.Errorf("Tick() = %v, expected the 0.06 floor", got)
	}

	short.Status.Apply(status.Slow)
	if got := short.Tick(cfg); got != 0.29 {
		t.Errorf("Tick() with slow = %v, expected 0.29", got)
	}
}

func TestThinkRejectsOwnTail(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	a := addAgent(m, core.DirLeft, core.Pt(5, 5), core.Pt(6, 5), core.Pt(6, 6), core.Pt(5, 6))

	m.Think(0.2, []core.Point{core.Pt(5, 12)}, nil, false, rand.New(rand.NewSource(1)))
	if a.Snake.Dir == core.DirDown {
		t.Fatalf("Dir = down, expected the tail cell to be rejected")
	}

	rep := m.Move(oneTick, MoveEnv{Registry: fruit.Builtin(), Food: core.Pt(0, 0)}, rand.New(rand.NewSource(1)))
	if len(rep.Deaths) != 0 {
		t.Errorf("Deaths = %+v, expected the rival to survive its move", rep.Deaths)
	}
}

func TestBuffedRivalStillCollides(t *testing.T) {
	tests := []struct {
		name   string
		buff   status.Name
		body   []core.Point
		dir    core.Direction
		expect Cause
	}{
		{"shield into wall", status.Shield, []core.Point{core.Pt(31, 5), core.Pt(30, 5), core.Pt(29, 5)}, core.DirRight, HitWall},
		{"ghost into wall", status.Ghost, []core.Point{core.Pt(0, 5), core.Pt(1, 5), core.Pt(2, 5)}, core.DirLeft, HitWall},
		{"ghost into self", status.Ghost, []core.Point{core.Pt(5, 5), core.Pt(6, 5), core.Pt(6, 6), core.Pt(5, 6)}, core.DirDown, HitSelf},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(DefaultConfig(), grid)
			a := addAgent(m, tc.dir, slices.Clone(tc.body)...)
			a.Status.Apply(tc.buff)

			rep := m.Move(oneTick, MoveEnv{Registry: fruit.Builtin(), Food: core.Pt(0, 0)}, rand.New(rand.NewSource(1)))
			if len(rep.Deaths) != 1 || rep.Deaths[0].Cause != tc.expect {
				t.Errorf("Deaths = %+v, expected one %v death", rep.Deaths, tc.expect)
			}
		})
	}
}

func TestDevourClearsRemovedSlots(t *testing.T) {
	m := NewManager(DefaultConfig(), grid)
	addAgent(m, core.DirRight, core.Pt(5, 5), core.Pt(4, 5), core.Pt(3, 5))
	addAgent(m, core.DirRight, core.Pt(5, 15), core.Pt(4, 15), core.Pt(3, 15))
	backing := m.agents

	m.Devour(actor.CellSet([]core.Point{core.Pt(4, 5)}), nil, rand.New(rand.NewSource(1)))

	if len(m.Agents()) != 1 {
		t.Fatalf("Agents() = %d, expected 1", len(m.Agents()))
	}
	if backing[1] != nil {
		t.Errorf("backing slot 1 = %v, expected nil after devouring", backing[1])
	}
}
