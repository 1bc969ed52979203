package rackspace

import (
	"testing"

	"nathanbeddoewebdev/rscloud/internal/domain"
)

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		status string
		want   domain.NodeState
	}{
		{"BUILD", domain.NodeStatePending},
		{"REBUILD", domain.NodeStatePending},
		{"ACTIVE", domain.NodeStateRunning},
		{"QUEUE_RESIZE", domain.NodeStatePending},
		{"PREP_RESIZE", domain.NodeStatePending},
		{"VERIFY_RESIZE", domain.NodeStateRunning},
		{"PASSWORD", domain.NodeStatePending},
		{"RESCUE", domain.NodeStatePending},
		{"REBOOT", domain.NodeStateRebooting},
		{"HARD_REBOOT", domain.NodeStateRebooting},
		{"SHARE_IP", domain.NodeStatePending},
		{"SHARE_IP_NO_CONFIG", domain.NodeStatePending},
		{"DELETE_IP", domain.NodeStatePending},
		{"UNKNOWN", domain.NodeStateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := NormalizeState(tt.status); got != tt.want {
				t.Errorf("NormalizeState(%q) = %s, want %s", tt.status, got, tt.want)
			}
		})
	}
}

// A suspended server is reported as TERMINATED even though it can be
// resumed. Clients rely on this value, so it must not be "fixed" here.
func TestNormalizeState_SuspendedIsTerminatedQuirk(t *testing.T) {
	if got := NormalizeState("SUSPENDED"); got != domain.NodeStateTerminated {
		t.Errorf("NormalizeState(SUSPENDED) = %s, want %s", got, domain.NodeStateTerminated)
	}
}

func TestNormalizeState_UnrecognisedIsUnknown(t *testing.T) {
	for _, status := range []string{"", "active", "DELETED", "ERROR", "MIGRATING", " ACTIVE"} {
		if got := NormalizeState(status); got != domain.NodeStateUnknown {
			t.Errorf("NormalizeState(%q) = %s, want UNKNOWN", status, got)
		}
	}
}
