package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // Up arrow, k
	ActionDown              // Down arrow, j
	ActionLeft              // Left arrow, h
	ActionRight             // Right arrow, l
	ActionConfirm           // Enter
	ActionBack              // B, Escape
	ActionRestart           // R, Enter after game over
	ActionQuit              // Q, Ctrl+C
	ActionPause             // Space, P
	ActionToggleWrap        // W - toggle wrap-around walls
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionToggleWrap:
		return "ToggleWrap"
	default:
		return "Unknown"
	}
}

// Direction maps a movement action to its grid direction.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}

// InputFrame represents the input state for a single player during one
// platform frame. It contains all actions that were triggered.
type InputFrame struct {
	Actions map[Action]bool
	// Sequence holds the actions in the order they arrived, so several
	// turns pressed within one frame are all delivered.
	Sequence []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Sequence = append(f.Sequence, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Sequence = f.Sequence[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Sequence = append([]Action(nil), f.Sequence...)
	return clone
}
