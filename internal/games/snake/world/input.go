package world

import "github.com/vovakirdan/snake-arena/internal/core"

// MaxQueuedTurns bounds buffered direction changes.
const MaxQueuedTurns = 3

// Input buffers player commands between logic steps. Turns are consumed
// one per step so quick double taps are not lost; toggles apply at the
// start of the next Advance.
type Input struct {
	turns       []core.Direction
	togglePause bool
	toggleWrap  bool
}

// Push records a platform action.
func (in *Input) Push(a core.Action) {
	switch a {
	case core.ActionPause:
		in.togglePause = !in.togglePause
	case core.ActionToggleWrap:
		in.toggleWrap = !in.toggleWrap
	default:
		if d, ok := a.Direction(); ok {
			in.Turn(d)
		}
	}
}

// Turn queues a direction change. Repeats of the last queued direction
// and turns beyond the buffer are dropped.
func (in *Input) Turn(d core.Direction) {
	if n := len(in.turns); n > 0 && in.turns[n-1] == d {
		return
	}
	if len(in.turns) >= MaxQueuedTurns {
		return
	}
	in.turns = append(in.turns, d)
}

// Pending returns how many turns are buffered.
func (in *Input) Pending() int { return len(in.turns) }

func (in *Input) next() (core.Direction, bool) {
	if len(in.turns) == 0 {
		return 0, false
	}
	d := in.turns[0]
	in.turns = in.turns[1:]
	return d, true
}

func (in *Input) toggles() (pause, wrap bool) {
	pause, wrap = in.togglePause, in.toggleWrap
	in.togglePause, in.toggleWrap = false, false
	return pause, wrap
}

// Reset drops everything buffered.
func (in *Input) Reset() {
	*in = Input{}
}
