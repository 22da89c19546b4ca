// Package serving 实现在线特征向量的装配：
// 按训练数据集 Schema 从在线存储读取特征行、做类型感知的反序列化、
// 应用附加的转换函数，输出与训练时列序一致的特征向量。
package serving

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/featurekit/core"
	"github.com/rushteam/featurekit/schema"
	"github.com/rushteam/featurekit/transformation"
)

// RowReader 是在线特征行的读取接口。
//
// 实现：
//   - StoreRowReader：从 core.Store（memory/redis）读取
//   - feast.Client：从 Feast Feature Server 读取
type RowReader interface {
	// Name 返回读取器名称（用于日志/监控）
	Name() string

	// ReadRow 读取实体在某个特征组下的一行特征。
	// value 可能是 []byte（存储原始形式）或已解码的类型化值。
	// 行不存在时返回 core.ErrStoreNotFound。
	ReadRow(ctx context.Context, fg *core.FeatureGroup, entityKey string) (map[string]any, error)

	// Close 释放资源
	Close() error
}

// ErrVectorNotFound 表示实体在所有特征组的在线存储中都没有行。
var ErrVectorNotFound = core.NewDomainError(core.ModuleServing, core.ErrorCodeNotFound, "serving: entity has no online rows")

// VectorService 按 Schema 装配在线特征向量。
type VectorService struct {
	reader RowReader
	schema *schema.TrainingDatasetSchema

	// exec/stats 用于本地执行附加在特征上的转换函数
	exec  transformation.Executor
	stats *transformation.Statistics

	// concurrency 批量装配的并发上限
	concurrency int

	mu       sync.Mutex
	compiled map[string]transformation.Transformer
}

// VectorServiceOption 是 VectorService 的配置选项。
type VectorServiceOption func(*VectorService)

// WithExecutor 启用转换函数的本地执行。
func WithExecutor(exec transformation.Executor, stats *transformation.Statistics) VectorServiceOption {
	return func(s *VectorService) {
		s.exec = exec
		s.stats = stats
	}
}

// WithConcurrency 设置批量装配的并发上限（默认 8）。
func WithConcurrency(n int) VectorServiceOption {
	return func(s *VectorService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewVectorService 创建在线特征向量服务。
func NewVectorService(reader RowReader, s *schema.TrainingDatasetSchema, opts ...VectorServiceOption) *VectorService {
	service := &VectorService{
		reader:      reader,
		schema:      s,
		concurrency: 8,
		compiled:    make(map[string]transformation.Transformer),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// GetVector 装配单个实体的特征向量，列序与训练数据集 Schema 一致（label 除外）。
// 所有特征组都没有该实体的行时返回 ErrVectorNotFound；
// 部分特征组缺行时，缺失特征为 nil。
func (s *VectorService) GetVector(ctx context.Context, entityKey string) ([]any, error) {
	row, found, err := s.readMergedRow(ctx, entityKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrVectorNotFound
	}

	inputs := s.schema.Inputs()
	values := make([]any, len(inputs))
	for i, f := range inputs {
		raw, ok := row[f.Name()]
		if !ok || raw == nil {
			continue
		}
		value, err := decodeValue(f, raw)
		if err != nil {
			return nil, fmt.Errorf("serving: decode %s: %w", f.Name(), err)
		}
		if fn := f.TransformationFunction(); fn != nil && s.exec != nil {
			value, err = s.transform(f, fn, value)
			if err != nil {
				return nil, err
			}
		}
		values[i] = value
	}
	return values, nil
}

// BatchGetVectors 批量装配特征向量（errgroup 并发，减少整体延迟）。
// 没有在线行的实体不出现在结果中，不视为错误。
func (s *VectorService) BatchGetVectors(ctx context.Context, entityKeys []string) (map[string][]any, error) {
	result := make(map[string][]any, len(entityKeys))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, entityKey := range entityKeys {
		entityKey := entityKey
		g.Go(func() error {
			vector, err := s.GetVector(ctx, entityKey)
			if err != nil {
				if core.IsNotFound(err) {
					return nil
				}
				return err
			}
			mu.Lock()
			result[entityKey] = vector
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Close 关闭底层读取器。
func (s *VectorService) Close() error {
	return s.reader.Close()
}

// readMergedRow 读取 Schema 引用的所有特征组的行并按特征名合并。
func (s *VectorService) readMergedRow(ctx context.Context, entityKey string) (map[string]any, bool, error) {
	merged := make(map[string]any)
	found := false

	for _, fg := range s.featureGroups() {
		row, err := s.reader.ReadRow(ctx, fg, entityKey)
		if err != nil {
			if core.IsNotFound(err) {
				continue
			}
			return nil, false, err
		}
		found = true
		for name, value := range row {
			merged[name] = value
		}
	}
	return merged, found, nil
}

// featureGroups 返回 Schema 输入特征引用的去重特征组列表（保持出现顺序）。
func (s *VectorService) featureGroups() []*core.FeatureGroup {
	var groups []*core.FeatureGroup
	seen := make(map[*core.FeatureGroup]bool)
	for _, f := range s.schema.Inputs() {
		fg := f.FeatureGroup()
		if fg == nil || seen[fg] {
			continue
		}
		seen[fg] = true
		groups = append(groups, fg)
	}
	return groups
}

// transform 应用特征上的转换函数；编译结果按特征名缓存。
func (s *VectorService) transform(f *core.TrainingDatasetFeature, fn *core.TransformationFunction, value any) (any, error) {
	s.mu.Lock()
	tr, ok := s.compiled[f.Name()]
	if !ok {
		var err error
		tr, err = s.exec.Compile(fn, s.stats)
		if err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("serving: compile transformation for %s: %w", f.Name(), err)
		}
		s.compiled[f.Name()] = tr
	}
	s.mu.Unlock()

	out, err := tr.Transform(value)
	if err != nil {
		return nil, fmt.Errorf("serving: transform %s: %w", f.Name(), err)
	}
	return out, nil
}

// decodeValue 做类型感知的值反序列化。
// 存储原始形式（[]byte）的值按描述符解码：
//   - 复杂类型（IsComplex）存储为 JSON，整体反序列化
//   - 标量按类型标签解析（数值/布尔），字符串/日期原样返回
//
// 已经是类型化的值（如 Feast 返回）原样透传。
func decodeValue(f *core.TrainingDatasetFeature, raw any) (any, error) {
	data, ok := raw.([]byte)
	if !ok {
		return raw, nil
	}

	if f.IsComplex() {
		var value any
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, err
		}
		return value, nil
	}

	text := string(data)
	switch f.Type() {
	case core.TypeBoolean:
		return strconv.ParseBool(text)
	case core.TypeInt, core.TypeBigint:
		return strconv.ParseInt(text, 10, 64)
	case core.TypeFloat, core.TypeDouble:
		return strconv.ParseFloat(text, 64)
	default:
		// string/date/timestamp 等按文本返回
		return text, nil
	}
}
