package serving

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rushteam/featurekit/core"
	"github.com/rushteam/featurekit/schema"
)

// SchemaProvider 通过元数据服务获取训练数据集 Schema，并做 TTL 内存缓存。
// Schema 变更频率低，缓存可以避免每次装配向量都访问元数据服务。
type SchemaProvider struct {
	meta core.MetadataService
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]*schemaEntry
}

type schemaEntry struct {
	schema *schema.TrainingDatasetSchema
	expire time.Time
}

// NewSchemaProvider 创建 Schema 提供者。ttl <= 0 时默认缓存 5 分钟。
func NewSchemaProvider(meta core.MetadataService, ttl time.Duration) *SchemaProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SchemaProvider{
		meta:    meta,
		ttl:     ttl,
		entries: make(map[string]*schemaEntry),
	}
}

// Get 获取特征视图对应的 Schema；缓存命中且未过期时不访问元数据服务。
func (p *SchemaProvider) Get(ctx context.Context, featureView string, version int) (*schema.TrainingDatasetSchema, error) {
	key := cacheKey(featureView, version)

	p.mu.RLock()
	e, ok := p.entries[key]
	p.mu.RUnlock()
	if ok && time.Now().Before(e.expire) {
		return e.schema, nil
	}

	features, err := p.meta.GetTrainingDatasetSchema(ctx, featureView, version)
	if err != nil {
		return nil, err
	}
	s, err := schema.NewTrainingDatasetSchema(features)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.entries[key] = &schemaEntry{schema: s, expire: time.Now().Add(p.ttl)}
	p.mu.Unlock()
	return s, nil
}

// Invalidate 主动失效某个特征视图的缓存（如训练侧更新 Schema 后）。
func (p *SchemaProvider) Invalidate(featureView string, version int) {
	p.mu.Lock()
	delete(p.entries, cacheKey(featureView, version))
	p.mu.Unlock()
}

func cacheKey(featureView string, version int) string {
	return fmt.Sprintf("%s:%d", featureView, version)
}
