package embedded

import (
	"context"
	"fmt"
	"time"

	"blitz/internal/types"
	"blitz/pkg/history"

	"github.com/elastic-io/mindb"
)

func init() {
	history.Register(history.MinDB, NewMinDBStore)
}

var bucket = "runs"

const pageSize = 1000

type MinDBStore struct {
	db     *mindb.DB
	bucket string
}

// NewMinDBStore opens (or creates) a mindb database at dbPath.
func NewMinDBStore(dbPath string) (history.Store, error) {
	db, err := mindb.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open mindb: %w", err)
	}

	exists, err := db.BucketExists(bucket)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := db.CreateBucket(bucket); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinDBStore{db: db, bucket: bucket}, nil
}

func (m *MinDBStore) Save(ctx context.Context, record *types.RunRecord) error {
	data, err := record.MarshalJSON()
	if err != nil {
		return err
	}

	objectData := &mindb.ObjectData{
		Key:         record.ID,
		Data:        data,
		Size:        int64(len(data)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"url":        record.URL,
			"started-at": record.StartedAt.Format(time.RFC3339),
		},
		LastModified: time.Now(),
	}

	if err := m.db.PutObject(m.bucket, objectData); err != nil {
		return fmt.Errorf("put run %s: %w", record.ID, err)
	}
	return nil
}

func (m *MinDBStore) Get(ctx context.Context, id string) (*types.RunRecord, error) {
	objectData, err := m.db.GetObject(m.bucket, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", history.ErrNotFound, id, err)
	}

	record := &types.RunRecord{}
	if err := record.UnmarshalJSON(objectData.Data); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return record, nil
}

func (m *MinDBStore) List(ctx context.Context, limit int) ([]*types.RunRecord, error) {
	var records []*types.RunRecord
	var marker string

	for {
		objects, _, err := m.db.ListObjects(m.bucket, "", marker, "", pageSize)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}

		for _, obj := range objects {
			record, err := m.Get(ctx, obj.Key)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}

		if len(objects) < pageSize {
			break
		}
		marker = objects[len(objects)-1].Key
	}

	return history.Newest(records, limit), nil
}

func (m *MinDBStore) Close() error {
	return m.db.Close()
}
