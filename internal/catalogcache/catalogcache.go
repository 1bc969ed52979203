// Package catalogcache keeps provider catalogs such as sizes and images on
// disk between invocations.
//
// Entries younger than the fresh TTL are served without a request. Older
// entries are refetched; when the refetch fails and the entry is within
// the max-stale window, the stale copy is served instead of the error.
package catalogcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"nathanbeddoewebdev/rscloud/internal/cache"
	"nathanbeddoewebdev/rscloud/internal/logger"
	"nathanbeddoewebdev/rscloud/internal/util"
)

const (
	DefaultFreshTTL = 15 * time.Minute
	DefaultMaxStale = 24 * time.Hour
)

// Cache stores catalog entries. A nil Cache always fetches.
type Cache struct {
	store    *cache.Cache
	freshTTL time.Duration
	maxStale time.Duration
}

type entry[T any] struct {
	Data      T         `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}

// New returns a cache rooted at dir with the default TTLs.
func New(dir string) *Cache {
	return WithTTLs(dir, DefaultFreshTTL, DefaultMaxStale)
}

// WithTTLs returns a cache rooted at dir with custom TTLs. maxStale below
// freshTTL disables serving stale entries.
func WithTTLs(dir string, freshTTL, maxStale time.Duration) *Cache {
	if maxStale < freshTTL {
		maxStale = freshTTL
	}
	return &Cache{store: cache.New(dir), freshTTL: freshTTL, maxStale: maxStale}
}

// NewDefault returns a cache under the user's cache directory.
func NewDefault() *Cache {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return New(filepath.Join(base, "rscloud", "catalog"))
}

// Key returns the entry key for one catalog kind of an account on a
// variant. Image lists include private snapshots, so entries are never
// shared between accounts.
func Key(variant, username, kind string) string {
	sum := sha256.Sum256([]byte(username))
	return util.NormalizeKey(variant) + "-" + hex.EncodeToString(sum[:6]) + "-" + kind
}

// GetOrFetch returns the cached value for key, calling fetch when the entry
// is missing or no longer fresh.
func GetOrFetch[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return fetch(ctx)
	}

	var cached entry[T]
	hit, err := c.store.Get(key, c.maxStale, &cached)
	if err != nil {
		logger.Ctx(ctx).Debug().Err(err).Str("key", key).Msg("catalog cache read failed")
		hit = false
	}
	age := time.Since(cached.FetchedAt)
	if hit && !cached.FetchedAt.IsZero() && age >= 0 && age <= c.freshTTL {
		return cached.Data, nil
	}

	data, err := fetch(ctx)
	if err != nil {
		if hit && !cached.FetchedAt.IsZero() {
			logger.Ctx(ctx).Warn().Err(err).Str("key", key).Dur("age", age.Round(time.Second)).
				Msg("refresh failed, using cached catalog")
			return cached.Data, nil
		}
		var zero T
		return zero, err
	}

	if err := c.store.Set(key, entry[T]{Data: data, FetchedAt: time.Now()}); err != nil {
		logger.Ctx(ctx).Debug().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
	return data, nil
}

// Invalidate drops the entry for key.
func (c *Cache) Invalidate(key string) error {
	if c == nil {
		return nil
	}
	return c.store.Invalidate(key)
}
