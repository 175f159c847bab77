package rulestore

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend is the store's only I/O surface: a key-value collaborator holding
// one serialized document per key.
type Backend interface {
	// GetItem returns the serialized payload for a key. The boolean is false
	// when the key has never been written.
	GetItem(key string) (string, bool, error)

	// SetItem replaces the payload for a key atomically. A failed write must
	// leave the previous payload intact.
	SetItem(key, value string) error
}

// FileBackend stores each key as a JSON document under a directory.
// Writes go through a temp file and rename so a crash mid-write never
// corrupts the previous payload.
type FileBackend struct {
	Dir string
}

// NewFileBackend creates a backend rooted at the given directory.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{Dir: dir}
}

// GetItem reads the payload for a key from disk.
func (b *FileBackend) GetItem(key string) (string, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error reading %s: %w", b.path(key), err)
	}
	return string(data), true, nil
}

// SetItem writes the payload for a key to disk via temp file and rename.
func (b *FileBackend) SetItem(key, value string) error {
	if err := os.MkdirAll(b.Dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(b.Dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, b.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("error replacing %s: %w", b.path(key), err)
	}
	return nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.Dir, key+".json")
}
