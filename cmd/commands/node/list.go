package node

import (
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all nodes",
		Long: `List all nodes with their lifecycle state and addresses.

Examples:
  rscloud node list
  rscloud node list --variant rackspace-uk -o json`,
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	output, err := cmdutil.Output(cmd)
	if err != nil {
		return err
	}

	provider, err := cmdutil.Provider(cmd)
	if err != nil {
		return err
	}

	nodes, err := provider.ListNodes(cmd.Context())
	if err != nil {
		return err
	}

	if output == "json" {
		return cmdutil.PrintJSON(cmd.OutOrStdout(), nodes)
	}
	if len(nodes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No nodes found.")
		return nil
	}
	printNodesTable(cmd.OutOrStdout(), nodes)
	return nil
}
