// Package store persists player state between sessions as JSON files,
// one file per identity, written atomically so a crash mid-save never
// corrupts an existing record.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/blackjacktrainer/internal/fileutil"
	"github.com/lox/blackjacktrainer/internal/game"
)

// FileStore implements game.PlayerStore on a directory of JSON files.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the snapshot for an identity, replacing any previous record.
func (s *FileStore) Save(identity string, snapshot game.PlayerSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal player %q: %w", identity, err)
	}
	if err := fileutil.WriteFileAtomic(s.path(identity), data, 0o644); err != nil {
		return fmt.Errorf("failed to save player %q: %w", identity, err)
	}
	return nil
}

// Load reads the snapshot for an identity. The second return is false when
// no record exists.
func (s *FileStore) Load(identity string) (game.PlayerSnapshot, bool, error) {
	data, err := os.ReadFile(s.path(identity))
	if os.IsNotExist(err) {
		return game.PlayerSnapshot{}, false, nil
	}
	if err != nil {
		return game.PlayerSnapshot{}, false, fmt.Errorf("failed to read player %q: %w", identity, err)
	}
	var snapshot game.PlayerSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return game.PlayerSnapshot{}, false, fmt.Errorf("failed to decode player %q: %w", identity, err)
	}
	return snapshot, true, nil
}

// path maps an identity to its file, sanitising path separators so an
// identity can never escape the store directory.
func (s *FileStore) path(identity string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.':
			return '_'
		}
		return r
	}, identity)
	return filepath.Join(s.dir, name+".json")
}
