package window

// State tracks a window through its lifecycle. Transitions only move
// forward except for the Loading/Loaded pair, which alternates on every
// navigation.
type State int

const (
	StateUninitialized State = iota
	StateCreated
	StateLoading
	StateLoaded
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCreated:
		return "created"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// canTransition reports whether moving from s to next is legal.
func (s State) canTransition(next State) bool {
	switch s {
	case StateUninitialized:
		return next == StateCreated
	case StateCreated:
		return next == StateLoading || next == StateClosing
	case StateLoading:
		return next == StateLoaded || next == StateLoading || next == StateClosing
	case StateLoaded:
		return next == StateLoading || next == StateClosing
	case StateClosing:
		return next == StateClosed
	default:
		return false
	}
}
