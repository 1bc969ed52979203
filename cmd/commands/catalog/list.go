package catalog

import (
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"

	"github.com/spf13/cobra"
)

// SizesCommand returns a cobra.Command listing flavors with prices.
func SizesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sizes",
		Short: "List available sizes (flavors)",
		Long: `List available sizes with RAM, disk and hourly price.

Prices come from the built-in table unless the pricing-file config key
points at another one. Sizes without a price show "-".

The list is cached for 15 minutes; pass --refresh to fetch it again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.Output(cmd)
			if err != nil {
				return err
			}
			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			sizes, err := cached(cmd.Context(), cmd, "sizes", provider.ListSizes)
			if err != nil {
				return err
			}
			if output == "json" {
				return cmdutil.PrintJSON(cmd.OutOrStdout(), sizes)
			}
			if len(sizes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sizes found.")
				return nil
			}
			printSizes(cmd.OutOrStdout(), sizes)
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}

// ImagesCommand returns a cobra.Command listing ACTIVE images.
func ImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "List available images",
		Long: `List images that are ready to boot. Images still being saved are not shown.

The list is cached for 15 minutes; pass --refresh to fetch it again.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.Output(cmd)
			if err != nil {
				return err
			}
			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			images, err := cached(cmd.Context(), cmd, "images", provider.ListImages)
			if err != nil {
				return err
			}
			if output == "json" {
				return cmdutil.PrintJSON(cmd.OutOrStdout(), images)
			}
			if len(images) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No images found.")
				return nil
			}
			printImages(cmd.OutOrStdout(), images)
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}

// LocationsCommand returns a cobra.Command listing the variant's location.
func LocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Show the variant's location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.Output(cmd)
			if err != nil {
				return err
			}
			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			locations := provider.ListLocations()
			if output == "json" {
				return cmdutil.PrintJSON(cmd.OutOrStdout(), locations)
			}
			printLocations(cmd.OutOrStdout(), locations)
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}

// LimitsCommand returns a cobra.Command showing account limits.
func LimitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Show account rate and absolute limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmdutil.Output(cmd)
			if err != nil {
				return err
			}
			provider, err := cmdutil.Provider(cmd)
			if err != nil {
				return err
			}
			limits, err := provider.Limits(cmd.Context())
			if err != nil {
				return err
			}
			if output == "json" {
				return cmdutil.PrintJSON(cmd.OutOrStdout(), limits)
			}
			printLimits(cmd.OutOrStdout(), limits)
			return nil
		},
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}
