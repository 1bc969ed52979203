package config

import (
	"fmt"
	"net/url"
	"strings"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "default-variant").
	Name string

	// Description is shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value to cfg in memory; the caller saves.
	Set func(cfg *Config, value string)

	// Validate, when set, rejects bad values before Set is called.
	Validate func(value string) error
}

// Keys is the authoritative list of supported configuration keys.
var Keys = []KeySpec{
	{
		Name:        "default-variant",
		Description: "Provider variant used when --variant is not specified",
		Get:         func(cfg *Config) string { return cfg.DefaultVariant },
		Set:         func(cfg *Config, v string) { cfg.DefaultVariant = strings.ToLower(v) },
	},
	{
		Name:        "username",
		Description: "Account username sent with the API key",
		Get:         func(cfg *Config) string { return cfg.Username },
		Set:         func(cfg *Config, v string) { cfg.Username = v },
	},
	{
		Name:        "auth-url",
		Description: "Auth endpoint of variants without a fixed one (openstack)",
		Get:         func(cfg *Config) string { return cfg.AuthURL },
		Set:         func(cfg *Config, v string) { cfg.AuthURL = v },
		Validate:    validateURL,
	},
	{
		Name:        "pricing-file",
		Description: "YAML or JSON price table replacing the built-in prices",
		Get:         func(cfg *Config) string { return cfg.PricingFile },
		Set:         func(cfg *Config, v string) { cfg.PricingFile = v },
	},
}

func validateURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", v)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp lists all keys with their descriptions for Cobra Long help.
func KeysHelp() string {
	maxLen := 0
	for _, k := range Keys {
		maxLen = max(maxLen, len(k.Name))
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
