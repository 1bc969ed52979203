package rackspace

import "nathanbeddoewebdev/rscloud/internal/domain"

// statusStates maps v1.0 server statuses onto lifecycle states.
//
// SUSPENDED maps to TERMINATED. Existing callers depend on that value, so
// it is kept even though a suspended server can come back.
var statusStates = map[string]domain.NodeState{
	"BUILD":              domain.NodeStatePending,
	"REBUILD":            domain.NodeStatePending,
	"ACTIVE":             domain.NodeStateRunning,
	"SUSPENDED":          domain.NodeStateTerminated,
	"QUEUE_RESIZE":       domain.NodeStatePending,
	"PREP_RESIZE":        domain.NodeStatePending,
	"VERIFY_RESIZE":      domain.NodeStateRunning,
	"PASSWORD":           domain.NodeStatePending,
	"RESCUE":             domain.NodeStatePending,
	"REBOOT":             domain.NodeStateRebooting,
	"HARD_REBOOT":        domain.NodeStateRebooting,
	"SHARE_IP":           domain.NodeStatePending,
	"SHARE_IP_NO_CONFIG": domain.NodeStatePending,
	"DELETE_IP":          domain.NodeStatePending,
	"UNKNOWN":            domain.NodeStateUnknown,
}

// NormalizeState returns the lifecycle state for a provider status.
// Unrecognised and empty statuses are UNKNOWN.
func NormalizeState(status string) domain.NodeState {
	if st, ok := statusStates[status]; ok {
		return st
	}
	return domain.NodeStateUnknown
}
