package node

import (
	"fmt"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/catalogcache"
	"nathanbeddoewebdev/rscloud/internal/logger"

	"github.com/spf13/cobra"
)

// SaveImageCommand returns a cobra.Command that snapshots a node to an image.
func SaveImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save-image <id> <name>",
		Short: "Save a node as a new image",
		Long: `Snapshot a node into a new image. The image starts in SAVING and is
listed by 'rscloud catalog images' once it becomes ACTIVE.

Example:
  rscloud node save-image 12345 web-golden`,
		Args:         cobra.ExactArgs(2),
		RunE:         runSaveImage,
		SilenceUsage: true,
		Annotations:  cmdutil.Audited(),
	}

	cmdutil.AddOutputFlag(cmd)

	return cmd
}

func runSaveImage(cmd *cobra.Command, args []string) error {
	output, err := cmdutil.Output(cmd)
	if err != nil {
		return err
	}

	provider, err := cmdutil.Provider(cmd)
	if err != nil {
		return err
	}

	node, err := lookupNode(cmd.Context(), cmd, provider, args[0])
	if err != nil {
		return err
	}

	image, err := provider.SaveImage(cmd.Context(), node, args[1])
	if err != nil {
		return err
	}

	if key, err := cmdutil.CatalogKey(cmd, "images"); err == nil {
		if err := catalogcache.NewDefault().Invalidate(key); err != nil {
			logger.Ctx(cmd.Context()).Debug().Err(err).Msg("failed to drop cached images")
		}
	}

	if output == "json" {
		return cmdutil.PrintJSON(cmd.OutOrStdout(), image)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Image %q (ID: %s) created from node %q, status %s.\n",
		image.Name, image.ID, node.Name, cmdutil.DashIfEmpty(image.Extra.Status))
	return nil
}
