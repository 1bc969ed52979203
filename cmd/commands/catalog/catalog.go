package catalog

import (
	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

// NewCommand returns the "catalog" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse sizes, images, locations and account limits",
		Long: `Browse what the selected provider variant offers: flavors (sizes)
with their hourly price, ACTIVE images, the variant's location and the
account's rate and absolute limits.`,
		PersistentPreRunE: cmdutil.ResolveVariant,
	}

	cmd.AddCommand(SizesCommand())
	cmd.AddCommand(ImagesCommand())
	cmd.AddCommand(LocationsCommand())
	cmd.AddCommand(LimitsCommand())
	cmd.AddCommand(AllCommand())

	cmdutil.AddVariantFlag(cmd)
	cmd.PersistentFlags().Bool("refresh", false, "Ignore cached sizes and images")

	return cmd
}
