package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/auditlog"
	"nathanbeddoewebdev/rscloud/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <variant>",
		Short: "Remove the stored API key for a provider variant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant := auth.NormalizeVariant(args[0])
			cmdutil.Tag(cmd, auditlog.Metadata{Variant: variant})

			err := cmdutil.Store().DeleteAPIKey(variant)
			switch {
			case errors.Is(err, auth.ErrKeyNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No API key stored for variant %s\n", variant)
				return nil
			case err != nil:
				return fmt.Errorf("failed to remove API key: %w", err)
			}

			if authn, err := authenticator(variant, ""); err == nil {
				_ = authn.Invalidate()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for variant %s\n", variant)
			return nil
		},
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}
}
