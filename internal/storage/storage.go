package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/smartbookmarker/smark/internal/model"
)

// Storage persists a snapshot of the last-synced server state. The cache is
// never authoritative; server data always wins on reconcile.
type Storage interface {
	Load() (*model.Snapshot, error)
	Save(snap *model.Snapshot) error
}

// JSONStorage implements Storage using a JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the snapshot from the JSON file.
// Returns an empty snapshot if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewSnapshot(), nil
		}
		return nil, err
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	// Ensure slices are not nil
	if snap.Folders == nil {
		snap.Folders = []model.Folder{}
	}
	if snap.Bookmarks == nil {
		snap.Bookmarks = []model.Bookmark{}
	}

	return &snap, nil
}

// Save writes the snapshot to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(snap *model.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Open opens the snapshot cache at the given path. A .json extension selects
// the JSON backend, anything else SQLite.
func Open(path string) (Storage, error) {
	if filepath.Ext(path) == ".json" {
		return NewJSONStorage(path), nil
	}
	return NewSQLiteStorage(path)
}
