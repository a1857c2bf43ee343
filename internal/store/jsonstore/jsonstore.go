// Package jsonstore persists the whole state tree to a single JSON file.
// Human-readable, portable, no locking; fine for a local single-user tool.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/tasklist/internal/model"
)

const stateFileName = "state.json"

// Store owns one persisted slot. There is no singleton; callers construct a
// Store and pass it where it is needed.
type Store struct {
	path string
}

// New returns a store rooted at dir. The directory is created lazily on the
// first Save.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, stateFileName)}
}

// Path returns the location of the persisted slot.
func (s *Store) Path() string { return s.path }

// Load reads the persisted tree. A missing file yields the defaults; an
// unreadable or malformed file is an error (local state is the source of
// truth, silently replacing it would lose data). Fields absent from the
// persisted document keep their default values, which gives the shallow
// merge-over-defaults the upgrade path relies on; Normalize back-fills the
// rest.
func (s *Store) Load() (*model.State, error) {
	st := model.Default()
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(b, st); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	st.Normalize()
	return st, nil
}

// Save serializes the entire tree and overwrites the slot unconditionally.
func (s *Store) Save(st *model.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}
