// Package auth stores provider API keys in the OS keychain.
package auth

import (
	"errors"

	"nathanbeddoewebdev/rscloud/internal/util"
)

// ServiceName is the keychain service entries are stored under.
const ServiceName = "rscloud"

var ErrKeyNotFound = errors.New("API key not found")

// Store holds one API key per provider variant.
type Store interface {
	SetAPIKey(variant string, key string) error
	GetAPIKey(variant string) (string, error)
	DeleteAPIKey(variant string) error
}

// DefaultStore returns the standard store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeVariant normalizes a variant name for consistent key lookup.
func NormalizeVariant(variant string) string {
	return util.NormalizeKey(variant)
}
