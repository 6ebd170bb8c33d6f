// Package status implements the timed buff/debuff engine owned by every
// actor (the player and each rival).
package status

import "fmt"

// Name identifies one of the fixed status timers.
type Name int

const (
	Shield Name = iota
	Speed
	Ghost
	Frozen
	Slow
	Dizzy
	Slime
	count
)

// All lists every timer in display order.
var All = [...]Name{Shield, Speed, Ghost, Frozen, Slow, Dizzy, Slime}

func (n Name) String() string {
	switch n {
	case Shield:
		return "shield"
	case Speed:
		return "speed"
	case Ghost:
		return "ghost"
	case Frozen:
		return "frozen"
	case Slow:
		return "slow"
	case Dizzy:
		return "dizzy"
	case Slime:
		return "slime"
	default:
		return fmt.Sprintf("status(%d)", int(n))
	}
}

// IsDebuff reports whether the timer is a negative effect that immunity blocks.
func (n Name) IsDebuff() bool {
	return n == Frozen || n == Slow || n == Dizzy || n == Slime
}

// ParseName resolves a config key such as "shield" to its Name.
func ParseName(s string) (Name, bool) {
	for _, n := range All {
		if n.String() == s {
			return n, true
		}
	}
	return 0, false
}

// Timer is a single named countdown.
// Invariant: Active is false exactly when Remaining is zero.
type Timer struct {
	Active    bool
	Remaining float64
}

// Durations holds the default activation length of every timer, in seconds.
type Durations [count]float64

// DefaultDurations returns the stock timer lengths.
func DefaultDurations() Durations {
	var d Durations
	d[Shield] = 10
	d[Speed] = 5
	d[Ghost] = 5
	d[Frozen] = 2
	d[Slow] = 4
	d[Dizzy] = 5
	d[Slime] = 4
	return d
}

// State is the set of timers for one actor. The zero value has every
// timer inactive and uses DefaultDurations.
type State struct {
	timers    [count]Timer
	durations *Durations

	// Transforming is set by the transformation hazard while it owns the
	// actor's body. It grants immunity like shield and ghost.
	Transforming bool
}

// New returns a State that activates timers with the given durations.
func New(d Durations) *State {
	return &State{durations: &d}
}

// Update advances every active timer by dt seconds, clamping at zero.
func (s *State) Update(dt float64) {
	for i := range s.timers {
		t := &s.timers[i]
		if !t.Active {
			continue
		}
		t.Remaining -= dt
		if t.Remaining <= 0 {
			t.Remaining = 0
			t.Active = false
		}
	}
}

// Activate starts (or restarts) a timer for the given duration. Durations
// do not stack: re-activation replaces the remaining time.
func (s *State) Activate(n Name, duration float64) {
	if duration <= 0 {
		s.Clear(n)
		return
	}
	s.timers[n] = Timer{Active: true, Remaining: duration}
}

// Apply activates a timer with its configured default duration. Debuffs
// are refused while the actor is immune; the return value reports whether
// the timer was started.
func (s *State) Apply(n Name) bool {
	if n.IsDebuff() && s.Immune() {
		return false
	}
	s.Activate(n, s.duration(n))
	return true
}

// Clear stops a timer.
func (s *State) Clear(n Name) {
	s.timers[n] = Timer{}
}

// ClearDebuffs stops every negative timer.
func (s *State) ClearDebuffs() {
	for _, n := range All {
		if n.IsDebuff() {
			s.Clear(n)
		}
	}
}

// Reset stops every timer and clears the transformation flag.
func (s *State) Reset() {
	s.timers = [count]Timer{}
	s.Transforming = false
}

// Active reports whether a timer is running.
func (s *State) Active(n Name) bool {
	return s.timers[n].Active
}

// Remaining returns the seconds left on a timer.
func (s *State) Remaining(n Name) float64 {
	return s.timers[n].Remaining
}

// Timer returns a copy of a timer.
func (s *State) Timer(n Name) Timer {
	return s.timers[n]
}

// Immune reports whether debuffs and rival collisions are ignored.
func (s *State) Immune() bool {
	return s.Active(Shield) || s.Active(Ghost) || s.Transforming
}

// CanPassSelf reports whether the actor may move through its own body
// and across walls.
func (s *State) CanPassSelf() bool {
	return s.Immune()
}

// TickMultiplier scales the movement interval: speed halves it, slow
// doubles it, slime adds half. Effects multiply together.
func (s *State) TickMultiplier() float64 {
	m := 1.0
	if s.Active(Speed) {
		m *= 0.5
	}
	if s.Active(Slow) {
		m *= 2.0
	}
	if s.Active(Slime) {
		m *= 1.5
	}
	return m
}

// Running is an active timer and its time left.
type Running struct {
	Name      Name
	Remaining float64
}

// ActiveTimers returns the running timers in display order.
func (s *State) ActiveTimers() []Running {
	var out []Running
	for _, n := range All {
		if t := s.timers[n]; t.Active {
			out = append(out, Running{Name: n, Remaining: t.Remaining})
		}
	}
	return out
}

func (s *State) duration(n Name) float64 {
	if s.durations == nil {
		return DefaultDurations()[n]
	}
	return s.durations[n]
}
