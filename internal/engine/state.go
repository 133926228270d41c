package engine

// State names the phases of one conversation turn. The loop moves
// Idle -> AwaitingModel -> ToolDispatch (zero or more times) -> Responding
// and settles back on Idle when the turn ends.
type State int

const (
	StateIdle State = iota
	StateAwaitingModel
	StateToolDispatch
	StateResponding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingModel:
		return "awaiting_model"
	case StateToolDispatch:
		return "tool_dispatch"
	case StateResponding:
		return "responding"
	default:
		return "unknown"
	}
}
