package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/snake-arena/internal/games/snake/world"
)

// Snapshot captures the complete world state for determinism testing and
// the headless simulator.
func (g *Game) Snapshot() world.Snapshot {
	if g.world == nil {
		return world.Snapshot{}
	}
	return g.world.Snapshot()
}

// DebugState returns a short description of the game state.
func (g *Game) DebugState() string {
	s := g.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Steps: %d, Time: %.2fs, Score: %d, Best: %d\n", s.Steps, s.Now, s.Score, s.HighScore)
	fmt.Fprintf(&b, "Length: %d, Direction: %s, Wrap: %v\n", s.Length, s.Dir, s.Wrap)
	if len(s.Body) > 0 {
		fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", s.Body[0].X, s.Body[0].Y, s.Food.X, s.Food.Y)
	}
	fmt.Fprintf(&b, "Fruits: %d, Rivals: %d, Drops: %d, Portals: %d\n", len(s.Fruits), len(s.Rivals), len(s.Drops), len(s.Portals))
	fmt.Fprintf(&b, "State: %s", s.State)
	if s.Cause != world.CauseNone {
		fmt.Fprintf(&b, " (%s)", s.Cause)
	}
	b.WriteString("\n")
	return b.String()
}
