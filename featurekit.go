package featurekit

import (
	"context"

	"github.com/rushteam/featurekit/config"
	"github.com/rushteam/featurekit/core"
	"github.com/rushteam/featurekit/serving"
	"github.com/rushteam/featurekit/transformation"
)

// SDK 是按配置装配好的特征存储客户端：
// 元数据服务、在线行读取器和 Schema 缓存由 SDK 持有并统一关闭。
type SDK struct {
	cfg *config.Config

	metadata core.MetadataService
	reader   serving.RowReader
	schemas  *serving.SchemaProvider
}

// New 按配置创建 SDK 实例。
func New(cfg *config.Config) (*SDK, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	metadata, err := cfg.BuildMetadataService()
	if err != nil {
		return nil, err
	}
	reader, err := cfg.BuildRowReader()
	if err != nil {
		metadata.Close()
		return nil, err
	}

	return &SDK{
		cfg:      cfg,
		metadata: metadata,
		reader:   reader,
		schemas:  serving.NewSchemaProvider(metadata, cfg.Serving.SchemaCacheTTL),
	}, nil
}

// Metadata 返回元数据服务客户端。
func (s *SDK) Metadata() core.MetadataService { return s.metadata }

// VectorService 为某个特征视图创建在线向量服务。
// Schema 经 TTL 缓存获取；行读取器由 SDK 持有，
// 关闭应通过 SDK.Close，而不是单个服务的 Close。
func (s *SDK) VectorService(ctx context.Context, featureView string, version int, stats *transformation.Statistics) (*serving.VectorService, error) {
	schema, err := s.schemas.Get(ctx, featureView, version)
	if err != nil {
		return nil, err
	}
	opts := []serving.VectorServiceOption{
		serving.WithConcurrency(s.cfg.Serving.BatchConcurrency),
	}
	if stats != nil {
		opts = append(opts, serving.WithExecutor(transformation.NewDefaultExecutor(), stats))
	}
	return serving.NewVectorService(s.reader, schema, opts...), nil
}

// Close 释放 SDK 持有的连接。
func (s *SDK) Close() error {
	err := s.reader.Close()
	if cerr := s.metadata.Close(); err == nil {
		err = cerr
	}
	return err
}
