package serving

import (
	"context"

	"github.com/rushteam/featurekit/core"
	"github.com/rushteam/featurekit/store"
)

// StoreRowReader 从 core.Store（memory/redis）读取在线特征行。
// 行按 store.RowKey 约定存储：每个特征组一行一个 Hash，field 为特征名。
type StoreRowReader struct {
	store core.Store
}

// NewStoreRowReader 创建基于 KV 存储的行读取器。
func NewStoreRowReader(s core.Store) *StoreRowReader {
	return &StoreRowReader{store: s}
}

func (r *StoreRowReader) Name() string { return "store:" + r.store.Name() }

func (r *StoreRowReader) ReadRow(ctx context.Context, fg *core.FeatureGroup, entityKey string) (map[string]any, error) {
	raw, err := r.store.HGetAll(ctx, store.RowKey(fg.Name, fg.Version, entityKey))
	if err != nil {
		return nil, err
	}
	row := make(map[string]any, len(raw))
	for field, value := range raw {
		row[field] = value
	}
	return row, nil
}

func (r *StoreRowReader) Close() error {
	return r.store.Close()
}
