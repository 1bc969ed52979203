package catalog

import (
	"context"

	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	"nathanbeddoewebdev/rscloud/internal/catalogcache"
	"nathanbeddoewebdev/rscloud/internal/logger"

	"github.com/spf13/cobra"
)

// cached serves kind from the catalog cache of the selected variant and
// account. --refresh drops the entry first.
func cached[T any](ctx context.Context, cmd *cobra.Command, kind string, fetch func(context.Context) (T, error)) (T, error) {
	key, err := cmdutil.CatalogKey(cmd, kind)
	if err != nil {
		var zero T
		return zero, err
	}
	c := catalogcache.NewDefault()

	if refresh, _ := cmd.Flags().GetBool("refresh"); refresh {
		if err := c.Invalidate(key); err != nil {
			logger.Ctx(ctx).Debug().Err(err).Str("key", key).Msg("failed to drop cached catalog")
		}
	}
	return catalogcache.GetOrFetch(ctx, c, key, fetch)
}
