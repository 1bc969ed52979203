package node

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

// WaitCommand returns a cobra.Command that blocks until a node reaches a
// lifecycle state.
func WaitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait <id>",
		Short: "Wait for a node to reach a lifecycle state",
		Long: `Poll a node until it reaches the given lifecycle state.

States: PENDING, RUNNING, REBOOTING, TERMINATED. Waiting for TERMINATED also
succeeds once the node no longer exists.

Examples:
  rscloud node wait 12345
  rscloud node wait 12345 --state terminated`,
		Args:         cobra.ExactArgs(1),
		RunE:         runWait,
		SilenceUsage: true,
	}

	cmd.Flags().String("state", string(domain.NodeStateRunning), "Target lifecycle state")

	return cmd
}

func runWait(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("state")
	target, ok := domain.ParseNodeState(strings.ToUpper(strings.TrimSpace(raw)))
	if !ok || target == domain.NodeStateUnknown {
		return fmt.Errorf("invalid state %q", raw)
	}

	provider, err := cmdutil.Provider(cmd)
	if err != nil {
		return err
	}

	node, found, err := provider.NodeDetails(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	switch {
	case !found && target == domain.NodeStateTerminated:
		fmt.Fprintf(cmd.OutOrStdout(), "Node %s no longer exists.\n", args[0])
		return nil
	case !found:
		return fmt.Errorf("node %s: %w", args[0], domain.ErrNotFound)
	case node.State == target:
		fmt.Fprintf(cmd.OutOrStdout(), "Node %q is %s.\n", node.Name, target)
		return nil
	}

	if err := waitForState(cmd, provider, node.ID, target); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Node %q is %s.\n", node.Name, target)
	return nil
}

// waitForState polls until the node reaches target, behind a spinner when
// attached to a terminal. Ctrl+C stops waiting without touching the node.
func waitForState(cmd *cobra.Command, provider domain.ComputeProvider, nodeID string, target domain.NodeState) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if !cmdutil.IsInteractive() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Waiting for node %s to reach %s...\n", nodeID, target)
		return pollNodeState(ctx, provider, nodeID, target, cmd.ErrOrStderr())
	}

	var pollErr error
	spinErr := spinner.New().
		Title(fmt.Sprintf("Waiting for node %s to reach %s...", nodeID, target)).
		Output(cmd.ErrOrStderr()).
		Context(ctx).
		Action(func() {
			pollErr = pollNodeState(ctx, provider, nodeID, target, io.Discard)
		}).
		Run()
	if spinErr != nil {
		return spinErr
	}
	return pollErr
}
