package node

import (
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

// IPsCommand returns a cobra.Command that lists the addresses of a node.
func IPsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "ips <id>",
		Short:        "List the public and private addresses of a node",
		Args:         cobra.ExactArgs(1),
		RunE:         runIPs,
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}

func runIPs(cmd *cobra.Command, args []string) error {
	output, err := cmdutil.Output(cmd)
	if err != nil {
		return err
	}

	provider, err := cmdutil.Provider(cmd)
	if err != nil {
		return err
	}

	ips, err := provider.ListIPAddresses(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if output == "json" {
		return cmdutil.PrintJSON(cmd.OutOrStdout(), ips)
	}
	if len(ips.Public) == 0 && len(ips.Private) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No addresses assigned.")
		return nil
	}
	printIPAddresses(cmd.OutOrStdout(), ips)
	return nil
}
