package node

import (
	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

// ShowCommand returns a cobra.Command that displays details for a single node.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show details for a node",
		Long: `Display detailed information about a single node.

Examples:
  rscloud node show 12345
  rscloud node show 12345 -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	output, err := cmdutil.Output(cmd)
	if err != nil {
		return err
	}

	provider, err := cmdutil.Provider(cmd)
	if err != nil {
		return err
	}

	node, err := lookupNode(cmd.Context(), cmd, provider, args[0])
	if err != nil {
		return err
	}

	if output == "json" {
		return cmdutil.PrintJSON(cmd.OutOrStdout(), node)
	}
	printNodeDetail(cmd.OutOrStdout(), node)
	return nil
}
