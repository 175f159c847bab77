package rulestore

// MemoryBackend is an in-memory Backend for tests.
type MemoryBackend struct {
	Items map[string]string

	// GetErr and SetErr, when set, are returned by the corresponding call.
	GetErr error
	SetErr error
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{Items: make(map[string]string)}
}

// GetItem returns the stored payload for a key.
func (b *MemoryBackend) GetItem(key string) (string, bool, error) {
	if b.GetErr != nil {
		return "", false, b.GetErr
	}
	value, ok := b.Items[key]
	return value, ok, nil
}

// SetItem stores the payload for a key.
func (b *MemoryBackend) SetItem(key, value string) error {
	if b.SetErr != nil {
		return b.SetErr
	}
	b.Items[key] = value
	return nil
}
