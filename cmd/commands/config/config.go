package config

import (
	"nathanbeddoewebdev/rscloud/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rscloud configuration",
		Long: "View and modify persistent rscloud settings.\n\n" +
			"Configuration is stored at ~/.config/rscloud/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
