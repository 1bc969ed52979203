package ipgroup

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/auditlog"
	"nathanbeddoewebdev/rscloud/internal/domain"

	"github.com/spf13/cobra"
)

// NewCommand returns the "ipgroup" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ipgroup",
		Short: "Manage shared IP groups",
		Long: `Manage shared IP groups. A shared IP group lets several nodes answer on
one public address; share an address into a group with 'ipgroup share'.`,
		PersistentPreRunE: cmdutil.ResolveVariant,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(ShareCommand())
	cmd.AddCommand(UnshareCommand())

	cmdutil.AddVariantFlag(cmd)

	return cmd
}

// ListCommand returns a cobra.Command listing shared IP groups.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shared IP groups",
		Long: `List shared IP groups. --details also fetches the member nodes.

Examples:
  rscloud ipgroup list
  rscloud ipgroup list --details -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.Output(cmd)
			if err != nil {
				return err
			}
			details, _ := cmd.Flags().GetBool("details")

			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			groups, err := provider.ListIPGroups(cmd.Context(), details)
			if err != nil {
				return err
			}

			if output == "json" {
				return cmdutil.PrintJSON(cmd.OutOrStdout(), groups)
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shared IP groups found.")
				return nil
			}
			printGroups(cmd, groups, details)
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().Bool("details", false, "Include member nodes")
	cmdutil.AddOutputFlag(cmd)

	return cmd
}

func printGroups(cmd *cobra.Command, groups []domain.SharedIPGroup, details bool) {
	header := []string{"ID", "NAME"}
	if details {
		header = append(header, "NODES")
	}
	table := cmdutil.NewTable(cmd.OutOrStdout(), header...)
	for _, g := range groups {
		row := []string{g.ID, g.Name}
		if details {
			row = append(row, cmdutil.DashIfEmpty(strings.Join(g.Servers, ", ")))
		}
		table.Append(row)
	}
	table.Render()
}

// CreateCommand returns a cobra.Command that creates a shared IP group.
func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a shared IP group",
		Long: `Create a shared IP group, optionally seeded with one node.

Example:
  rscloud ipgroup create web-vip --node 12345`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID, _ := cmd.Flags().GetString("node")

			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			tagGroup(cmd, "", args[0])

			group, err := provider.CreateIPGroup(cmd.Context(), args[0], nodeID)
			if err != nil {
				return err
			}
			tagGroup(cmd, group.ID, group.Name)

			fmt.Fprintf(cmd.OutOrStdout(), "Shared IP group %q created (ID: %s).\n", group.Name, group.ID)
			return nil
		},
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}

	cmd.Flags().String("node", "", "Node ID to place in the group")

	return cmd
}

// DeleteCommand returns a cobra.Command that deletes a shared IP group.
func DeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a shared IP group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			tagGroup(cmd, args[0], "")

			ok, err := provider.DeleteIPGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("delete shared IP group %s: request not accepted by the provider", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Shared IP group %s deleted.\n", args[0])
			return nil
		},
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}
}

// ShareCommand returns a cobra.Command that shares a public IP into a group.
func ShareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share <group-id> <node-id> <ip>",
		Short: "Share a node's public IP through a group",
		Long: `Share a public IP of a node with the other members of a shared IP
group. By default the node is reconfigured (and rebooted) to use the
address; --no-configure only registers the share.

Example:
  rscloud ipgroup share 1234 12345 67.23.10.132`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			noConfigure, _ := cmd.Flags().GetBool("no-configure")
			groupID, nodeID, ip := args[0], args[1], args[2]

			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			cmdutil.TagNode(cmd, nodeID, "")

			ok, err := provider.ShareIP(cmd.Context(), groupID, nodeID, ip, !noConfigure)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("share %s on node %s: request not accepted by the provider", ip, nodeID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sharing %s from node %s through group %s accepted.\n", ip, nodeID, groupID)
			return nil
		},
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}

	cmd.Flags().Bool("no-configure", false, "Do not reconfigure the node to use the address")

	return cmd
}

// UnshareCommand returns a cobra.Command that removes a shared IP from a node.
func UnshareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unshare <node-id> <ip>",
		Short: "Stop sharing a public IP on a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID, ip := args[0], args[1]

			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			cmdutil.TagNode(cmd, nodeID, "")

			ok, err := provider.UnshareIP(cmd.Context(), nodeID, ip)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("unshare %s on node %s: request not accepted by the provider", ip, nodeID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unsharing %s from node %s accepted.\n", ip, nodeID)
			return nil
		},
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}
}

func tagGroup(cmd *cobra.Command, id, name string) {
	cmdutil.Tag(cmd, auditlog.Metadata{ResourceType: "ipgroup", ResourceID: id, ResourceName: name})
}
