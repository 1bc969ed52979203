package auth

// MockStore is an in-memory Store for tests.
type MockStore struct {
	keys map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{keys: make(map[string]string)}
}

func (m *MockStore) SetAPIKey(variant string, key string) error {
	m.keys[NormalizeVariant(variant)] = key
	return nil
}

func (m *MockStore) GetAPIKey(variant string) (string, error) {
	key, ok := m.keys[NormalizeVariant(variant)]
	if !ok {
		return "", ErrKeyNotFound
	}
	return key, nil
}

func (m *MockStore) DeleteAPIKey(variant string) error {
	v := NormalizeVariant(variant)
	if _, ok := m.keys[v]; !ok {
		return ErrKeyNotFound
	}
	delete(m.keys, v)
	return nil
}
