package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

// fakeGame records what the model feeds it.
type fakeGame struct {
	resets   int
	resized  [2]int
	elapsed  []time.Duration
	inputs   [][]core.Action
	state    core.GameState
	cues     []string
	run      core.RunSummary
	bestSeen int
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++ }

func (g *fakeGame) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	g.elapsed = append(g.elapsed, elapsed)
	g.inputs = append(g.inputs, in.Clone().Sequence)
	cues := g.cues
	g.cues = nil
	return core.StepResult{State: g.state, Cues: cues}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) Resize(w, h int)         { g.resized = [2]int{w, h} }
func (g *fakeGame) Run() core.RunSummary    { return g.run }
func (g *fakeGame) SetBest(n int)           { g.bestSeen = n }

// recordingSink remembers every cue it was asked to play.
type recordingSink struct {
	played []string
	muted  bool
}

func (s *recordingSink) Play(cues []string) { s.played = append(s.played, cues...) }
func (s *recordingSink) ToggleMute() bool   { s.muted = !s.muted; return s.muted }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{Seed: 1, ScreenW: 40, ScreenH: 20, TickRate: 60}
}

func tick(m Model, at time.Time) Model {
	next, _ := m.Update(TickMsg(at))
	return next.(Model)
}

func press(m Model, key string) Model {
	next, _ := m.Update(keyMsg(key))
	return next.(Model)
}

func TestModelStepsByElapsedTime(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, testConfig())

	start := time.Unix(100, 0)
	m = tick(m, start)
	m = tick(m, start.Add(25*time.Millisecond))

	if len(g.elapsed) != 2 {
		t.Fatalf("Step called %d times, expected 2", len(g.elapsed))
	}
	if g.elapsed[0] != 0 {
		t.Errorf("first elapsed = %v, expected 0", g.elapsed[0])
	}
	if g.elapsed[1] != 25*time.Millisecond {
		t.Errorf("second elapsed = %v, expected 25ms", g.elapsed[1])
	}
}

func TestModelForwardsInputsInOrder(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, testConfig())

	m = press(m, "down")
	m = press(m, "left")
	m = tick(m, time.Unix(1, 0))
	m = tick(m, time.Unix(2, 0))

	if got := g.inputs[0]; len(got) != 2 || got[0] != core.ActionDown || got[1] != core.ActionLeft {
		t.Errorf("first frame inputs = %v, expected [Down Left]", got)
	}
	if got := g.inputs[1]; len(got) != 0 {
		t.Errorf("second frame inputs = %v, expected none", got)
	}
}

func TestModelPlaysCuesAndMutes(t *testing.T) {
	g := &fakeGame{cues: []string{"eat", "combo"}}
	sink := &recordingSink{}
	m := NewModel(g, nil, sink, testConfig())

	m = tick(m, time.Unix(1, 0))
	if len(sink.played) != 2 || sink.played[0] != "eat" {
		t.Errorf("played = %v, expected [eat combo]", sink.played)
	}

	press(m, "m")
	if !sink.muted {
		t.Errorf("muted = false after m, expected true")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	g := &fakeGame{
		state: core.GameState{Score: 42, GameOver: true},
		run:   core.RunSummary{Score: 42, Length: 11, Duration: 3 * time.Second, Cause: "wall", Seed: 7},
	}
	m := NewModel(g, store, nil, testConfig())

	m = tick(m, time.Unix(1, 0))
	m = tick(m, time.Unix(2, 0))

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	if runs[0].Score != 42 || runs[0].Length != 11 || runs[0].Cause != "wall" || runs[0].Seed != 7 {
		t.Errorf("saved run = %+v, expected the reported summary", runs[0])
	}

	// A new run that ends saves again.
	g.state = core.GameState{}
	m = tick(m, time.Unix(3, 0))
	g.state = core.GameState{Score: 5, GameOver: true}
	g.run = core.RunSummary{Score: 5, Length: 4}
	tick(m, time.Unix(4, 0))

	runs, _ = store.RecentRuns("fake", 10)
	if len(runs) != 2 {
		t.Errorf("saved %d runs, expected 2", len(runs))
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, testConfig())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resets != 0 {
		t.Errorf("Reset called %d times on resize, expected 0", g.resets)
	}
	if g.resized != [2]int{100, 40} {
		t.Errorf("Resize got %v, expected [100 40]", g.resized)
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, testConfig())

	m = press(m, "esc")
	if !m.BackToMenu() {
		t.Errorf("BackToMenu() = false after esc, expected true")
	}
	if m.View() != "" {
		t.Errorf("View() = %q after leaving, expected empty", m.View())
	}
}

func TestModelIgnoresEnterMidRun(t *testing.T) {
	g := &fakeGame{}
	m := NewModel(g, nil, nil, testConfig())

	m = press(m, "enter")
	tick(m, time.Unix(1, 0))

	if got := g.inputs[0]; len(got) != 0 {
		t.Errorf("inputs = %v, expected restart to be dropped mid-run", got)
	}
}
