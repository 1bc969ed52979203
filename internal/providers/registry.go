// Package providers resolves a variant name into a ready-to-use compute
// provider.
package providers

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"nathanbeddoewebdev/rscloud/internal/config"
	"nathanbeddoewebdev/rscloud/internal/domain"
	"nathanbeddoewebdev/rscloud/internal/services/auth"
	"nathanbeddoewebdev/rscloud/internal/util"
)

// Factory builds a provider from stored credentials and user configuration.
type Factory func(store auth.Store, cfg *config.Config) (domain.ComputeProvider, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// ErrNoVariant is returned when neither --variant nor default-variant is set.
var ErrNoVariant = errors.New("no variant selected; pass --variant or run 'rscloud config set default-variant <name>'")

func Register(name string, factory Factory) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		panic("providers: empty variant name")
	}
	if factory == nil {
		panic("providers: nil factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[normalizedName]; exists {
		panic(fmt.Sprintf("providers: variant %q already registered", name))
	}
	registry[normalizedName] = factory
}

// Get builds the provider registered under name. A nil cfg is treated as
// an empty configuration.
func Get(name string, store auth.Store, cfg *config.Config) (domain.ComputeProvider, error) {
	normalizedName := util.NormalizeKey(name)
	if normalizedName == "" {
		return nil, ErrNoVariant
	}

	mu.RLock()
	factory, ok := registry[normalizedName]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("providers: unknown variant %q (known: %v)", name, List())
	}

	if cfg == nil {
		cfg = &config.Config{}
	}
	return factory(store, cfg)
}

// Reset clears the registry. Intended for use in tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]Factory{}
}

// List returns the registered variant names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
