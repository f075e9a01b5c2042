package release

// State identifies where a release attempt is in its lifecycle.
// A run moves Idle -> Validating -> Classifying -> Resolving -> Mutating
// -> Verifying -> Committed. Every state after Validating can exit to
// RolledBack on failure; Committed is terminal and irreversible.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateClassifying
	StateResolving
	StateMutating
	StateVerifying
	StateCommitted
	StateRolledBack
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateClassifying:
		return "classifying"
	case StateResolving:
		return "resolving"
	case StateMutating:
		return "mutating"
	case StateVerifying:
		return "verifying"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}
