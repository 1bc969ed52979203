package catalog

import (
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/domain"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Catalog is everything needed to pick the parameters of a new node.
type Catalog struct {
	Locations []domain.Location `json:"locations"`
	Sizes     []domain.Size     `json:"sizes"`
	Images    []domain.Image    `json:"images"`
}

// AllCommand returns a cobra.Command that fetches sizes and images
// concurrently and prints them with the location.
func AllCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Show locations, sizes and images together",
		Long: `Fetch sizes and images in parallel and print them with the variant's
location. Use it to pick the --image and --size of 'rscloud node create'.`,
		Args:         cobra.NoArgs,
		RunE:         runAll,
		SilenceUsage: true,
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}

func runAll(cmd *cobra.Command, args []string) error {
	output, err := cmdutil.Output(cmd)
	if err != nil {
		return err
	}

	provider, err := cmdutil.Provider(cmd)
	if err != nil {
		return err
	}

	cat := Catalog{Locations: provider.ListLocations()}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		sizes, err := cached(ctx, cmd, "sizes", provider.ListSizes)
		if err != nil {
			return fmt.Errorf("failed to fetch sizes: %w", err)
		}
		cat.Sizes = sizes
		return nil
	})
	g.Go(func() error {
		images, err := cached(ctx, cmd, "images", provider.ListImages)
		if err != nil {
			return fmt.Errorf("failed to fetch images: %w", err)
		}
		cat.Images = images
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if output == "json" {
		return cmdutil.PrintJSON(cmd.OutOrStdout(), cat)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Locations:")
	printLocations(w, cat.Locations)
	fmt.Fprintln(w, "\nSizes:")
	printSizes(w, cat.Sizes)
	fmt.Fprintln(w, "\nImages:")
	printImages(w, cat.Images)
	return nil
}
