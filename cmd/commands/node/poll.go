package node

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"nathanbeddoewebdev/rscloud/internal/domain"
)

// pollInterval is the delay between successive NodeDetails requests.
// It is a variable so tests can shorten it.
var pollInterval = 5 * time.Second

// maxPollAttempts caps how many times we poll before giving up. At 5 s
// intervals this is ten minutes, enough for a build or resize.
const maxPollAttempts = 120

// maxTransientErrors is the number of consecutive non-rate-limit errors
// allowed before the poll loop gives up.
const maxTransientErrors = 3

// pollNodeState calls NodeDetails until the node reaches target. When the
// target is TERMINATED a node that no longer exists also counts as reached.
// Progress is written to w.
func pollNodeState(
	ctx context.Context,
	provider domain.ComputeProvider,
	nodeID string,
	target domain.NodeState,
	w io.Writer,
) error {
	var consecutiveErrors int

	for i := 0; i < maxPollAttempts; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}

		node, found, err := provider.NodeDetails(ctx, nodeID)
		if err != nil {
			// Rate-limit errors abort immediately; more polling only
			// extends the lockout.
			if errors.Is(err, domain.ErrRateLimited) {
				return fmt.Errorf("polling stopped: %w", err)
			}
			consecutiveErrors++
			if consecutiveErrors >= maxTransientErrors {
				return fmt.Errorf("error polling node state (after %d consecutive failures): %w", consecutiveErrors, err)
			}
			fmt.Fprintf(w, "  Transient error, retrying... (%d/%d)\n", consecutiveErrors, maxTransientErrors)
			continue
		}
		consecutiveErrors = 0

		if !found {
			if target == domain.NodeStateTerminated {
				return nil
			}
			return fmt.Errorf("node %q disappeared while polling", nodeID)
		}

		if node.State == target {
			return nil
		}
		if node.State == domain.NodeStateTerminated {
			return fmt.Errorf("node %q became %s while waiting for %s", nodeID, node.State, target)
		}

		fmt.Fprintf(w, "  State: %s\n", node.State)
	}

	return fmt.Errorf("timed out waiting for node to reach %s (%d polls)", target, maxPollAttempts)
}
