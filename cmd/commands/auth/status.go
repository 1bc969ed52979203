package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/providers"
	"nathanbeddoewebdev/rscloud/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which variants have a stored API key",
		Long: `Show which provider variants have a stored API key, and the configured
username and default variant.

Example:
  rscloud auth status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variants := providers.List()
			if len(variants) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No variants registered.")
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store := cmdutil.Store()
			table := cmdutil.NewTable(cmd.OutOrStdout(), "VARIANT", "API KEY", "DEFAULT")
			for _, variant := range variants {
				status := "not logged in"
				_, err := store.GetAPIKey(variant)
				switch {
				case err == nil:
					status = "logged in"
				case !errors.Is(err, auth.ErrKeyNotFound):
					status = fmt.Sprintf("error (%v)", err)
				}
				isDefault := ""
				if variant == cfg.DefaultVariant {
					isDefault = "*"
				}
				table.Append([]string{variant, status, isDefault})
			}
			table.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "\nUsername: %s\n", cmdutil.DashIfEmpty(cfg.Username))
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
