package node

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/util"

	"github.com/spf13/cobra"
)

// SetPasswordCommand returns a cobra.Command that changes a node's root password.
func SetPasswordCommand() *cobra.Command {
	return nodeAction{
		use:   "set-password <id>",
		short: "Change the root password of a node",
		long: `Change the root password of a node. Without --password the new
password is read from a hidden prompt.

Example:
  rscloud node set-password 12345`,
		args: 1,
		verb: "set password of",
		setup: func(cmd *cobra.Command) {
			cmd.Flags().String("password", "", "New root password (optional, overrides prompt)")
		},
		run: func(cmd *cobra.Command, p domain.ComputeProvider, n *domain.Node, _ []string) (bool, error) {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				var err error
				password, err = cmdutil.ReadSecret(cmd, "New root password: ")
				if err != nil {
					return false, err
				}
			}
			if password == "" {
				return false, errors.New("password cannot be empty")
			}
			return p.SetPassword(cmd.Context(), n, password)
		},
		success: func(n *domain.Node, _ []string) string {
			return fmt.Sprintf("Password of node %q changed.", n.Name)
		},
	}.command()
}

// RenameCommand returns a cobra.Command that renames a node.
func RenameCommand() *cobra.Command {
	return nodeAction{
		use:   "rename <id> <name>",
		short: "Rename a node",
		args:  2,
		verb:  "rename",
		run: func(cmd *cobra.Command, p domain.ComputeProvider, n *domain.Node, args []string) (bool, error) {
			name := strings.TrimSpace(args[1])
			if err := util.ValidateNodeName(name); err != nil {
				return false, err
			}
			return p.SetName(cmd.Context(), n, name)
		},
		success: func(n *domain.Node, args []string) string {
			return fmt.Sprintf("Node %q renamed to %q.", n.Name, strings.TrimSpace(args[1]))
		},
	}.command()
}
