// Package config handles persistent user configuration for rscloud.
//
// Configuration is stored as JSON at ~/.config/rscloud/config.json (or the
// platform-equivalent path returned by os.UserConfigDir). API keys are not
// stored here; they live in the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDir   = "rscloud"
	fileName = "config.json"
)

// pathOverride, when non-empty, replaces the default config file path.
// Use SetPath / ResetPath to manage it in tests.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds user preferences that persist across invocations.
type Config struct {
	// DefaultVariant is used when --variant is not given.
	DefaultVariant string `json:"default_variant,omitempty"`

	// Username is the account name sent with the API key.
	Username string `json:"username,omitempty"`

	// AuthURL is the auth endpoint of variants that have no fixed one,
	// i.e. OpenStack. Variants with a fixed endpoint ignore it.
	AuthURL string `json:"auth_url,omitempty"`

	// PricingFile points at a YAML or JSON price table replacing the
	// embedded one.
	PricingFile string `json:"pricing_file,omitempty"`
}

// Path returns the absolute path to the config file.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file. A missing file yields a zero Config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}
