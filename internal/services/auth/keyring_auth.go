package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetAPIKey(variant string, key string) error {
	return keyring.Set(k.serviceName, NormalizeVariant(variant), key)
}

func (k *KeyringStore) GetAPIKey(variant string) (string, error) {
	key, err := keyring.Get(k.serviceName, NormalizeVariant(variant))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	return key, err
}

func (k *KeyringStore) DeleteAPIKey(variant string) error {
	err := keyring.Delete(k.serviceName, NormalizeVariant(variant))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyNotFound
	}
	return err
}
