// Package cache stores small JSON values on disk with a time-to-live.
//
// Entries expire by file modification time. Files are written atomically
// and readable only by the current user, since they may hold session
// tokens.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache is a directory of JSON entries. A nil Cache or one without a
// directory never hits and silently drops writes.
type Cache struct {
	dir string
}

// New returns a cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// NewDefault returns a cache under the user's cache directory.
func NewDefault() *Cache {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return &Cache{dir: filepath.Join(base, "rscloud")}
}

// Get decodes the entry for key into dest. It reports false when the entry
// is missing, older than ttl, or unreadable as JSON; expired entries are
// removed.
func (c *Cache) Get(key string, ttl time.Duration, dest any) (bool, error) {
	if c == nil || c.dir == "" || ttl <= 0 {
		return false, nil
	}

	path := c.pathForKey(key)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if time.Since(info.ModTime()) > ttl {
		_ = os.Remove(path)
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if json.Unmarshal(data, dest) != nil {
		return false, nil
	}
	return true, nil
}

// Set writes value under key, replacing any previous entry.
func (c *Cache) Set(key string, value any) error {
	if c == nil || c.dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, sanitizeKey(key)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.pathForKey(key))
}

// Invalidate removes the entry for key. A missing entry is not an error.
func (c *Cache) Invalidate(key string) error {
	if c == nil || c.dir == "" {
		return nil
	}
	err := os.Remove(c.pathForKey(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *Cache) pathForKey(key string) string {
	return filepath.Join(c.dir, sanitizeKey(key)+".json")
}

// sanitizeKey maps key onto a safe file name.
func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
}
