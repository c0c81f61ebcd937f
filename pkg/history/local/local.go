package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"blitz/internal/log"
	"blitz/internal/types"
	"blitz/internal/utils"
	"blitz/pkg/history"
)

func init() {
	history.Register(history.Local, NewLocalStore)
}

const ext = ".json"

// LocalStore keeps one JSON file per run in a directory.
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (history.Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	return &LocalStore{basePath: basePath}, nil
}

func (l *LocalStore) path(id string) string {
	return filepath.Join(l.basePath, id+ext)
}

func (l *LocalStore) Save(ctx context.Context, record *types.RunRecord) error {
	if !utils.IsValidRunID(record.ID) {
		return fmt.Errorf("invalid run id %q", record.ID)
	}

	data, err := record.MarshalJSON()
	if err != nil {
		return err
	}

	// readers never observe a partially written record
	tmp := l.path(record.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, l.path(record.ID))
}

func (l *LocalStore) Get(ctx context.Context, id string) (*types.RunRecord, error) {
	if !utils.IsValidRunID(id) {
		return nil, fmt.Errorf("%w: %s", history.ErrNotFound, id)
	}

	data, err := os.ReadFile(l.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", history.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	record := &types.RunRecord{}
	if err := record.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return record, nil
}

func (l *LocalStore) List(ctx context.Context, limit int) ([]*types.RunRecord, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, err
	}

	var records []*types.RunRecord
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		record, err := l.Get(ctx, strings.TrimSuffix(name, ext))
		if err != nil {
			log.Logger.Debugf("Skipping history entry %s: %v", name, err)
			continue
		}
		records = append(records, record)
	}

	return history.Newest(records, limit), nil
}

func (l *LocalStore) Close() error {
	return nil
}
