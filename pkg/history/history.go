// Package history persists RunRecords so past runs can be listed and re-rendered.
package history

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"blitz/internal/types"
)

var ErrNotFound = errors.New("run not found")

type Store interface {
	Save(ctx context.Context, record *types.RunRecord) error
	Get(ctx context.Context, id string) (*types.RunRecord, error)
	// List returns at most limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*types.RunRecord, error)
	Close() error
}

type StoreType string

const (
	Local StoreType = "local"
	MinDB StoreType = "mindb"
)

type storeFn func(path string) (Store, error)

var factory = make(map[StoreType]storeFn)

func Register(st StoreType, fn storeFn) {
	if _, ok := factory[st]; ok {
		return
	}
	factory[st] = fn
}

func Create(st StoreType, path string) (Store, error) {
	if fn, ok := factory[st]; ok {
		return fn(path)
	}
	return nil, fmt.Errorf("unsupported history store type: %s", st)
}

// Newest sorts records newest first and trims them to limit. Run IDs are ULIDs, so
// lexical order is creation order.
func Newest(records []*types.RunRecord, limit int) []*types.RunRecord {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}
