package node

import (
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

// DeleteCommand returns a cobra.Command that deletes a node.
func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a node",
		Long: `Delete a node. The API accepts the request and removes the node
asynchronously; use --wait to block until it is gone.

Examples:
  rscloud node delete 12345
  rscloud node delete 12345 --wait`,
		Args:         cobra.ExactArgs(1),
		RunE:         runDelete,
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}

	cmd.Flags().Bool("wait", false, "Wait until the node no longer exists")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	provider, err := cmdutil.Provider(cmd)
	if err != nil {
		return err
	}

	node, err := lookupNode(cmd.Context(), cmd, provider, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Deleting node %q (ID: %s)...\n", node.Name, node.ID)

	var ok bool
	if cmdutil.IsInteractive() {
		var deleteErr error
		spinErr := spinner.New().
			Title("Deleting node...").
			Output(cmd.ErrOrStderr()).
			Action(func() {
				ok, deleteErr = provider.DestroyNode(cmd.Context(), node)
			}).
			Run()
		if spinErr != nil {
			return spinErr
		}
		err = deleteErr
	} else {
		ok, err = provider.DestroyNode(cmd.Context(), node)
	}
	if err != nil {
		return err
	}
	if err := accepted(ok, "delete node "+node.ID); err != nil {
		return err
	}

	if wait, _ := cmd.Flags().GetBool("wait"); wait {
		if err := waitForState(cmd, provider, node.ID, domain.NodeStateTerminated); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Node %q (ID: %s) deleted.\n", node.Name, node.ID)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Delete of node %q (ID: %s) accepted.\n", node.Name, node.ID)
	return nil
}
