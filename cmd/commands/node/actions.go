package node

import (
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"

	"github.com/spf13/cobra"
)

// nodeAction runs one asynchronous server action against a looked-up node.
type nodeAction struct {
	use     string
	short   string
	long    string
	args    int
	verb    string
	run     func(cmd *cobra.Command, provider domain.ComputeProvider, node *domain.Node, args []string) (bool, error)
	setup   func(cmd *cobra.Command)
	success func(node *domain.Node, args []string) string
}

func (a nodeAction) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:          a.use,
		Short:        a.short,
		Long:         a.long,
		Args:         cobra.ExactArgs(a.args),
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			node, err := lookupNode(cmd.Context(), cmd, provider, args[0])
			if err != nil {
				return err
			}

			ok, err := a.run(cmd, provider, node, args)
			if err != nil {
				return fmt.Errorf("failed to %s node %s: %w", a.verb, node.ID, err)
			}
			if err := accepted(ok, a.verb+" node "+node.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.success(node, args))
			return nil
		},
	}
	if a.setup != nil {
		a.setup(cmd)
	}
	return cmd
}

// RebootCommand returns a cobra.Command that restarts a node.
func RebootCommand() *cobra.Command {
	return nodeAction{
		use:   "reboot <id>",
		short: "Reboot a node",
		long: `Reboot a node. A hard reboot power cycles it; --soft asks the
operating system to restart gracefully.

Examples:
  rscloud node reboot 12345
  rscloud node reboot 12345 --soft`,
		args: 1,
		verb: "reboot",
		setup: func(cmd *cobra.Command) {
			cmd.Flags().Bool("soft", false, "Graceful restart instead of a power cycle")
		},
		run: func(cmd *cobra.Command, p domain.ComputeProvider, n *domain.Node, _ []string) (bool, error) {
			kind := domain.RebootHard
			if soft, _ := cmd.Flags().GetBool("soft"); soft {
				kind = domain.RebootSoft
			}
			return p.Reboot(cmd.Context(), n, kind)
		},
		success: func(n *domain.Node, _ []string) string {
			return fmt.Sprintf("Reboot of node %q accepted.", n.Name)
		},
	}.command()
}

// ResizeCommand returns a cobra.Command that moves a node to another flavor.
func ResizeCommand() *cobra.Command {
	return nodeAction{
		use:   "resize <id> <size-id>",
		short: "Resize a node to another flavor",
		long: `Resize a node to another flavor. When the node reaches VERIFY_RESIZE
(shown as RUNNING), confirm with 'rscloud node confirm-resize' or roll back
with 'rscloud node revert-resize'.

Example:
  rscloud node resize 12345 3`,
		args: 2,
		verb: "resize",
		run: func(cmd *cobra.Command, p domain.ComputeProvider, n *domain.Node, args []string) (bool, error) {
			return p.Resize(cmd.Context(), n, args[1])
		},
		success: func(n *domain.Node, args []string) string {
			return fmt.Sprintf("Resize of node %q to size %s accepted.", n.Name, args[1])
		},
	}.command()
}

// ConfirmResizeCommand returns a cobra.Command that accepts a pending resize.
func ConfirmResizeCommand() *cobra.Command {
	return nodeAction{
		use:   "confirm-resize <id>",
		short: "Confirm a pending resize",
		args:  1,
		verb:  "confirm resize of",
		run: func(cmd *cobra.Command, p domain.ComputeProvider, n *domain.Node, _ []string) (bool, error) {
			return p.ConfirmResize(cmd.Context(), n)
		},
		success: func(n *domain.Node, _ []string) string {
			return fmt.Sprintf("Resize of node %q confirmed.", n.Name)
		},
	}.command()
}

// RevertResizeCommand returns a cobra.Command that rolls back a pending resize.
func RevertResizeCommand() *cobra.Command {
	return nodeAction{
		use:   "revert-resize <id>",
		short: "Revert a pending resize",
		args:  1,
		verb:  "revert resize of",
		run: func(cmd *cobra.Command, p domain.ComputeProvider, n *domain.Node, _ []string) (bool, error) {
			return p.RevertResize(cmd.Context(), n)
		},
		success: func(n *domain.Node, _ []string) string {
			return fmt.Sprintf("Resize of node %q reverted.", n.Name)
		},
	}.command()
}

// RebuildCommand returns a cobra.Command that reinstalls a node from an image.
func RebuildCommand() *cobra.Command {
	return nodeAction{
		use:   "rebuild <id> <image-id>",
		short: "Reinstall a node from an image",
		long: `Reinstall a node from an image. The node keeps its ID and addresses;
all data on its disk is lost.

Example:
  rscloud node rebuild 12345 112`,
		args: 2,
		verb: "rebuild",
		run: func(cmd *cobra.Command, p domain.ComputeProvider, n *domain.Node, args []string) (bool, error) {
			return p.Rebuild(cmd.Context(), n.ID, args[1])
		},
		success: func(n *domain.Node, args []string) string {
			return fmt.Sprintf("Rebuild of node %q from image %s accepted.", n.Name, args[1])
		},
	}.command()
}
