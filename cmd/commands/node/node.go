package node

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"

	"github.com/spf13/cobra"
)

// NewCommand returns the "node" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage Cloud Servers nodes",
		Long: `Create, inspect, resize and delete nodes on the selected provider variant.

The variant comes from --variant or the default-variant config key.`,
		PersistentPreRunE: cmdutil.ResolveVariant,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(RebootCommand())
	cmd.AddCommand(ResizeCommand())
	cmd.AddCommand(ConfirmResizeCommand())
	cmd.AddCommand(RevertResizeCommand())
	cmd.AddCommand(RebuildCommand())
	cmd.AddCommand(SetPasswordCommand())
	cmd.AddCommand(RenameCommand())
	cmd.AddCommand(IPsCommand())
	cmd.AddCommand(SaveImageCommand())
	cmd.AddCommand(WaitCommand())

	cmdutil.AddVariantFlag(cmd)

	return cmd
}

// lookupNode fetches a node and tags it as the command's audit subject.
func lookupNode(ctx context.Context, cmd *cobra.Command, provider domain.ComputeProvider, id string) (*domain.Node, error) {
	node, found, err := provider.NodeDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}
	cmdutil.TagNode(cmd, node.ID, node.Name)
	return node, nil
}

// accepted turns a rejected request into an error so the command exits
// non-zero.
func accepted(ok bool, what string) error {
	if !ok {
		return fmt.Errorf("%s: request not accepted by the provider (run with --verbose for the response)", what)
	}
	return nil
}
