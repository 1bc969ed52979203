package domain

// NodeState is the generic lifecycle state a provider status is normalized into.
type NodeState string

const (
	NodeStatePending    NodeState = "PENDING"
	NodeStateRunning    NodeState = "RUNNING"
	NodeStateRebooting  NodeState = "REBOOTING"
	NodeStateTerminated NodeState = "TERMINATED"
	NodeStateUnknown    NodeState = "UNKNOWN"
)

// NodeStates returns every lifecycle state in a stable order.
func NodeStates() []NodeState {
	return []NodeState{
		NodeStatePending,
		NodeStateRunning,
		NodeStateRebooting,
		NodeStateTerminated,
		NodeStateUnknown,
	}
}

// ParseNodeState matches s against the known states. Matching is exact
// (states are upper case); ok is false for anything else.
func ParseNodeState(s string) (NodeState, bool) {
	for _, st := range NodeStates() {
		if string(st) == s {
			return st, true
		}
	}
	return NodeStateUnknown, false
}
