package auth

import (
	"fmt"
	"slices"

	"nathanbeddoewebdev/rscloud/internal/providers"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage API keys for provider variants",
		Long: `Manage API keys for provider variants.

Keys are stored in the OS keychain, one per variant. The account username
is a config key ('rscloud config set username <name>').`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}

func checkVariant(name string) error {
	known := providers.List()
	if !slices.Contains(known, name) {
		return fmt.Errorf("unknown variant %q (registered: %v)", name, known)
	}
	return nil
}
