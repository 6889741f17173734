// Package localstore provides session.Store implementations: a file-backed
// store for the real client and an in-memory store for tests.
package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cyclesync/cyclesync-client/internal/session"
)

// File persists the session record as a single file on disk. The file is
// created user-only (0600); its parent directory is created on first save.
type File struct {
	path string
}

// NewFile creates a file store at the given path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the stored record. A missing file maps to session.ErrNoSession.
func (f *File) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, session.ErrNoSession
		}
		return nil, fmt.Errorf("localstore: read %s: %w", f.path, err)
	}
	return data, nil
}

// Save writes the record, replacing any previous one.
func (f *File) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("localstore: mkdir: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("localstore: write %s: %w", f.path, err)
	}
	return nil
}

// Delete removes the record. Deleting an absent record is not an error.
func (f *File) Delete() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("localstore: remove %s: %w", f.path, err)
	}
	return nil
}
