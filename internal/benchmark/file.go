package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the full history mapping in a single JSON file. Writes go
// to a temp file and rename into place so a crashed writer never leaves a
// corrupt history behind.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed history store at path. The file is
// created on first Put.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the full history mapping. A missing file is an empty history,
// not an error.
func (fs *FileStore) Load(_ context.Context) (map[string]Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	var history map[string]Snapshot
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to parse history file: %w", err)
	}
	if history == nil {
		history = map[string]Snapshot{}
	}
	return history, nil
}

// Get returns the snapshot for one post identifier.
func (fs *FileStore) Get(ctx context.Context, postID string) (Snapshot, bool, error) {
	history, err := fs.Load(ctx)
	if err != nil {
		return Snapshot{}, false, err
	}
	snap, ok := history[postID]
	return snap, ok, nil
}

// Put upserts the snapshot for postID and persists the whole mapping.
func (fs *FileStore) Put(ctx context.Context, postID string, snap Snapshot) error {
	history, err := fs.Load(ctx)
	if err != nil {
		return err
	}
	history[postID] = snap

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close history file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
