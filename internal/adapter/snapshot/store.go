package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cwygoda/rentwatch/internal/domain"
)

// Store implements domain.Store as a JSON snapshot file. Each save rewrites
// the full bounded history via a temp file and rename, so a crash mid-write
// leaves the previous snapshot intact.
type Store struct {
	path string
}

// New creates a snapshot store, ensuring the parent directory exists.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads the persisted history. A missing snapshot yields an empty list.
func (s *Store) Load() ([]domain.Listing, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return listings, nil
}

// Save atomically overwrites the snapshot with the given listings.
func (s *Store) Save(listings []domain.Listing) error {
	data, err := json.MarshalIndent(listings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
