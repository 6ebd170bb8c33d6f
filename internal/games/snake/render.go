package snake

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/games/snake/fruit"
	"github.com/vovakirdan/snake-arena/internal/games/snake/hazard"
	"github.com/vovakirdan/snake-arena/internal/games/snake/status"
	"github.com/vovakirdan/snake-arena/internal/games/snake/world"
)

// hudHeight is the number of rows above the board.
const hudHeight = 2

// cellW is the number of screen columns per grid cell.
const cellW = 2

// expiryBlink is when a timed consumable starts blinking, in seconds left.
const expiryBlink = 1.5

var portalColors = [...]core.Color{
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
	core.ColorBrightYellow,
}

// boardSize returns the screen size of a board including its border.
func boardSize(gw, gh int) (int, int) {
	return gw*cellW + 2, gh + 2
}

// board maps grid cells to screen cells.
type board struct {
	dst  *core.Screen
	x, y int // top-left of the border
}

func (b board) set(p core.Point, r rune, c core.Color) {
	b.dst.SetColor(b.x+1+p.X*cellW, b.y+1+p.Y, r, c)
}

func (b board) cell(p core.Point, cell core.Cell) {
	b.set(p, cell.Rune, cell.Color)
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	if g.tooSmall {
		bw, bh := boardSize(g.world.Config().Grid.W, g.world.Config().Grid.H)
		g.renderOverlay(dst, "Terminal too small", fmt.Sprintf("Need %dx%d", bw, bh+hudHeight))
		return
	}

	s := g.world.Snapshot()
	g.renderHUD(dst, s)

	bw, bh := boardSize(s.Grid.W, s.Grid.H)
	b := board{
		dst: dst,
		x:   max(0, (dst.Width()-bw)/2),
		y:   hudHeight + max(0, (dst.Height()-hudHeight-bh)/2),
	}
	border := core.ColorGray
	if !s.Wrap {
		border = core.ColorWhite
	}
	dst.DrawBox(core.NewRect(b.x, b.y, bw, bh), border)

	g.renderGround(b, s)
	g.renderItems(b, s)
	g.renderRivals(b, s)
	g.renderPlayer(b, s)
	g.renderParticles(b, s)

	switch s.State {
	case world.StateGameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("%s  Score %d  R to restart", causeText(s.Cause), s.Score))
	case world.StatePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the score line and the timer line.
func (g *Game) renderHUD(dst *core.Screen, s world.Snapshot) {
	walls := "wrap"
	if !s.Wrap {
		walls = "walls"
	}
	hud := fmt.Sprintf(" %s  Score %d  Best %d  Len %d  [%s]", g.Title(), s.Score, s.HighScore, s.Length, walls)
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
	if s.Combo > 1 {
		dst.DrawTextColor(len([]rune(hud))+2, 0, fmt.Sprintf("Combo x%d", s.Combo), core.ColorBrightYellow)
	}

	x := 1
	put := func(text string, c core.Color) {
		dst.DrawTextColor(x, 1, text, c)
		x += len([]rune(text)) + 2
	}
	for _, t := range s.Timers {
		c := core.ColorBrightGreen
		if t.Name.IsDebuff() {
			c = core.ColorBrightRed
		}
		put(fmt.Sprintf("%s %.1fs", t.Name, t.Remaining), c)
	}

	h := s.Hazards
	switch h.Explosive {
	case hazard.Swallowed, hazard.Traveling:
		put(fmt.Sprintf("BOMB %d/%d", h.ExplosiveIndex, s.Length), core.ColorOrange)
	case hazard.AfterEffect:
		put(fmt.Sprintf("BLEEDING %.0fs", h.AfterEffect), core.ColorBlood)
	}
	if h.Damage != hazard.DamageIdle {
		put(strings.ToUpper(h.Damage.String()), core.ColorRed)
	}
	if h.Transform != hazard.TransformIdle {
		put("SANDWORM "+h.Transform.String(), core.ColorSand)
	}
}

// renderGround draws stains and portals under everything else.
func (g *Game) renderGround(b board, s world.Snapshot) {
	for _, st := range s.Stains {
		r := '·'
		if st.Alpha > 0.5 {
			r = '░'
		}
		b.set(st.Pos, r, core.ColorBlood)
	}
	for _, p := range s.Portals {
		c := portalColors[p.Hue%len(portalColors)]
		b.set(p.A, '◎', c)
		b.set(p.B, '◎', c)
	}
}

// renderItems draws food, dropped food and consumables.
func (g *Game) renderItems(b board, s world.Snapshot) {
	for _, d := range s.Drops {
		if blinking(d.Remaining, s.Now) {
			continue
		}
		b.set(d.Pos, '•', core.ColorYellow)
	}
	if s.HasFood {
		cell := core.Cell{Rune: '●', Color: core.ColorBrightRed}
		if beh, ok := g.world.Registry().Get(fruit.IDNormal); ok {
			cell = beh.Render(s.Now)
		}
		b.cell(s.Food, cell)
	}
	for _, f := range s.Fruits {
		if f.Remaining >= 0 && blinking(f.Remaining, s.Now) {
			continue
		}
		cell := f.Cell
		if cell.Rune == 0 {
			cell.Rune = '?'
		}
		b.cell(f.Pos, cell)
	}
}

// blinking reports whether an expiring item is in the off half of its blink.
func blinking(remaining, now float64) bool {
	return remaining < expiryBlink && int(now*8)%2 == 1
}

func (g *Game) renderRivals(b board, s world.Snapshot) {
	for _, r := range s.Rivals {
		c := r.Color
		for _, t := range r.Timers {
			if t.Name == status.Frozen {
				c = core.ColorIce
			}
		}
		for i := len(r.Body) - 1; i >= 0; i-- {
			if i == 0 {
				b.set(r.Body[i], headGlyph(r.Dir), c)
			} else {
				b.set(r.Body[i], '▒', c)
			}
		}
	}
}

func (g *Game) renderPlayer(b board, s world.Snapshot) {
	h := s.Hazards
	if !h.DamageVisible {
		return
	}

	body, c := '█', playerColor(s)
	if hasTimer(s.Timers, status.Ghost) {
		body = '░'
	}

	bombOn := false
	if h.Explosive == hazard.Swallowed || h.Explosive == hazard.Traveling {
		bombOn = math.Mod(s.Now*h.ExplosiveHz, 1) < 0.5
	}

	for i := len(s.Body) - 1; i >= 0; i-- {
		p := s.Body[i]
		switch {
		case bombOn && i == h.ExplosiveIndex:
			b.set(p, '✹', core.ColorOrange)
		case h.Transform == hazard.Transforming && i < h.TransformSegment:
			b.set(p, '▓', core.ColorSand)
		case i == 0:
			b.set(p, headGlyph(s.Dir), c)
		case h.Explosive == hazard.AfterEffect && i == len(s.Body)-1:
			b.set(p, body, core.ColorBlood)
		default:
			b.set(p, body, c)
		}
	}
}

func playerColor(s world.Snapshot) core.Color {
	switch {
	case s.Hazards.Transform != hazard.TransformIdle && s.Hazards.Transform != hazard.TransformFlashing:
		return core.ColorSand
	case s.Hazards.Transform == hazard.TransformFlashing && int(s.Now*8)%2 == 0:
		return core.ColorSand
	case hasTimer(s.Timers, status.Frozen), hasTimer(s.Timers, status.Slow):
		return core.ColorIce
	case hasTimer(s.Timers, status.Shield):
		return core.ColorBrightCyan
	case hasTimer(s.Timers, status.Ghost):
		return core.ColorGray
	case hasTimer(s.Timers, status.Speed):
		return core.ColorBrightYellow
	case hasTimer(s.Timers, status.Dizzy):
		return core.ColorBrightMagenta
	case hasTimer(s.Timers, status.Slime):
		return core.ColorGreen
	default:
		return core.ColorBrightGreen
	}
}

func hasTimer(ts []world.TimerView, n status.Name) bool {
	for _, t := range ts {
		if t.Name == n {
			return true
		}
	}
	return false
}

func headGlyph(d core.Direction) rune {
	switch d {
	case core.DirUp:
		return '▲'
	case core.DirDown:
		return '▼'
	case core.DirLeft:
		return '◀'
	default:
		return '▶'
	}
}

// renderParticles draws particles on top of the board.
func (g *Game) renderParticles(b board, s world.Snapshot) {
	for _, p := range s.Particles {
		cell := p.Cell()
		if cell.X < 0 || cell.Y < 0 || cell.X >= s.Grid.W || cell.Y >= s.Grid.H {
			continue
		}
		r := '·'
		if p.MaxLife > 0 && p.Life > p.MaxLife/2 {
			r = '*'
		}
		b.set(cell, r, p.Color)
	}
}

func causeText(c world.Cause) string {
	switch c {
	case world.CauseWall:
		return "Hit the wall"
	case world.CauseSelf:
		return "Bit yourself"
	case world.CauseRival:
		return "Crashed into a rival"
	case world.CauseTrap:
		return "Caught in a trap"
	case world.CauseExplosion:
		return "Blown up"
	default:
		return "Game over"
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)

	dst.DrawTextCentered(boxY+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(boxY+3, line2, core.ColorDefault)
}
