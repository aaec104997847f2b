// Package storage persists campaign store snapshots across restarts.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flutterbye/sms-engine/internal/config"
	"github.com/flutterbye/sms-engine/internal/sms"
)

// Backend writes and reads full store snapshots.
type Backend interface {
	SaveSnapshot(ctx context.Context, snap sms.Snapshot) error
	// LoadSnapshot returns nil, nil when no snapshot has been written yet.
	LoadSnapshot(ctx context.Context) (*sms.Snapshot, error)
}

// New builds the backend selected by the configuration. Type "none"
// returns nil, nil: the caller runs memory-only.
func New(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "local":
		return newLocalBackend(cfg.LocalPath)
	case "aws":
		return newAWSBackend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

const snapshotFile = "snapshot.json"

// localBackend keeps the snapshot as one JSON file on disk.
type localBackend struct {
	dir string
}

func newLocalBackend(dir string) (*localBackend, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &localBackend{dir: dir}, nil
}

func (b *localBackend) SaveSnapshot(_ context.Context, snap sms.Snapshot) error {
	path := filepath.Join(b.dir, snapshotFile)

	// Write to a temp file first so a crash mid-write cannot corrupt the
	// last good snapshot.
	tmp, err := os.CreateTemp(b.dir, snapshotFile+".tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (b *localBackend) LoadSnapshot(_ context.Context) (*sms.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, snapshotFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap sms.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}
