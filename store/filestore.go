package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// FileStore persists the snapshot as a single JSON document. Writes go
// through a temp file plus rename so a crash mid-save never leaves a
// truncated document behind.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON document at path. The
// file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file yields an empty snapshot.
func (fs *FileStore) Load() (model.Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return model.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file %s: %w", fs.path, err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", fs.path, err)
	}
	if snap == nil {
		snap = model.Snapshot{}
	}
	return snap, nil
}

// Save writes the snapshot atomically.
func (fs *FileStore) Save(snap model.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	log.Debug().Str("path", fs.path).Int("channels", len(snap)).Msg("Snapshot saved")
	return nil
}
