package transformation

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/featurekit/core"
	"github.com/rushteam/featurekit/pkg/conv"
)

// Transformer 是可本地执行的转换函数的统一接口。
// 一个 Transformer 对应一个（特征, 转换函数）组合，由 Executor 编译得到。
type Transformer interface {
	// Name 返回转换函数名（用于日志/监控）
	Name() string

	// Transform 转换单个特征值。
	// 标量转换返回 float64/int64；one-hot 编码返回 map[string]float64。
	Transform(value any) (any, error)
}

// 内置转换函数名称。
const (
	BuiltinMinMaxScaler   = "min_max_scaler"
	BuiltinStandardScaler = "standard_scaler"
	BuiltinRobustScaler   = "robust_scaler"
	BuiltinLabelEncoder   = "label_encoder"
	BuiltinOneHotEncoder  = "one_hot_encoder"
)

// ErrBuiltinNotFound 表示名称没有对应的内置转换实现。
var ErrBuiltinNotFound = core.NewDomainError(core.ModuleTransformation, core.ErrorCodeNotFound, "transformation: builtin not found")

// ResolveBuiltin 按名称解析内置转换函数的本地实现。
// 内置转换都是单输入特征、统计量驱动的；stats 必须包含该特征的统计量。
func ResolveBuiltin(fn *core.TransformationFunction, stats *Statistics) (Transformer, error) {
	switch fn.Name {
	case BuiltinMinMaxScaler, BuiltinStandardScaler, BuiltinRobustScaler,
		BuiltinLabelEncoder, BuiltinOneHotEncoder:
	default:
		return nil, ErrBuiltinNotFound
	}

	if len(fn.TransformationFeatures) == 0 {
		return nil, core.NewDomainError(core.ModuleTransformation, core.ErrorCodeInvalidInput,
			fmt.Sprintf("transformation: %s has no input feature", fn.Name))
	}
	feature := fn.TransformationFeatures[0]
	if stats == nil {
		return nil, core.NewDomainError(core.ModuleTransformation, core.ErrorCodeInvalidInput,
			fmt.Sprintf("transformation: %s requires statistics", fn.Name))
	}
	featureStats, ok := stats.Feature(feature)
	if !ok {
		return nil, core.NewDomainError(core.ModuleTransformation, core.ErrorCodeInvalidInput,
			fmt.Sprintf("transformation: no statistics registered for feature %s", feature))
	}

	switch fn.Name {
	case BuiltinMinMaxScaler:
		return &MinMaxScaler{Stats: featureStats}, nil
	case BuiltinStandardScaler:
		return &StandardScaler{Stats: featureStats}, nil
	case BuiltinRobustScaler:
		return &RobustScaler{Stats: featureStats}, nil
	case BuiltinLabelEncoder:
		return &LabelEncoder{Stats: featureStats}, nil
	default:
		return &OneHotEncoder{Feature: feature, Stats: featureStats}, nil
	}
}

// MinMaxScaler 使用训练数据的 min/max 把特征缩放到 [0, 1]。
// 公式: x' = (x - min) / (max - min)
type MinMaxScaler struct {
	Stats *FeatureStatistics
}

func (s *MinMaxScaler) Name() string { return BuiltinMinMaxScaler }

func (s *MinMaxScaler) Transform(value any) (any, error) {
	v, ok := conv.ToFloat64(value)
	if !ok {
		return nil, fmt.Errorf("%s: non-numeric value %v", s.Name(), value)
	}
	if s.Stats == nil || s.Stats.Min == nil || s.Stats.Max == nil {
		return nil, fmt.Errorf("%s: statistics missing min/max for %s", s.Name(), s.statsFeature())
	}
	span := *s.Stats.Max - *s.Stats.Min
	if span == 0 {
		// 常量特征：保持原值，避免除零
		return v, nil
	}
	return (v - *s.Stats.Min) / span, nil
}

func (s *MinMaxScaler) statsFeature() string {
	if s.Stats == nil {
		return "?"
	}
	return s.Stats.FeatureName
}

// StandardScaler 把特征标准化为均值 0、标准差 1。
// 公式: z = (x - mean) / stddev
type StandardScaler struct {
	Stats *FeatureStatistics
}

func (s *StandardScaler) Name() string { return BuiltinStandardScaler }

func (s *StandardScaler) Transform(value any) (any, error) {
	v, ok := conv.ToFloat64(value)
	if !ok {
		return nil, fmt.Errorf("%s: non-numeric value %v", s.Name(), value)
	}
	if s.Stats == nil || s.Stats.Mean == nil || s.Stats.Stddev == nil {
		return nil, fmt.Errorf("%s: statistics missing mean/stddev", s.Name())
	}
	if *s.Stats.Stddev == 0 {
		return v, nil
	}
	return (v - *s.Stats.Mean) / *s.Stats.Stddev, nil
}

// RobustScaler 把特征缩放为中位数 0、四分位距 1，对离群值不敏感。
// 公式: x' = (x - p50) / (p75 - p25)
type RobustScaler struct {
	Stats *FeatureStatistics
}

func (s *RobustScaler) Name() string { return BuiltinRobustScaler }

func (s *RobustScaler) Transform(value any) (any, error) {
	v, ok := conv.ToFloat64(value)
	if !ok {
		return nil, fmt.Errorf("%s: non-numeric value %v", s.Name(), value)
	}
	if s.Stats == nil {
		return nil, fmt.Errorf("%s: statistics missing", s.Name())
	}
	p25, ok25 := s.Stats.Percentile(25)
	p50, ok50 := s.Stats.Percentile(50)
	p75, ok75 := s.Stats.Percentile(75)
	if !ok25 || !ok50 || !ok75 {
		return nil, fmt.Errorf("%s: statistics missing percentiles for %s", s.Name(), s.Stats.FeatureName)
	}
	iqr := p75 - p25
	if iqr == 0 {
		return v, nil
	}
	return (v - p50) / iqr, nil
}

// LabelEncoder 把类别特征编码为数值。
// 类别按训练数据的去重值排序后取下标；训练数据中未出现的类别编码为 -1。
type LabelEncoder struct {
	Stats *FeatureStatistics

	// index 懒构建的类别 → 下标表；
	// 同一个编译结果会被批量装配的多个 goroutine 共享，构建须用 once 保护
	once  sync.Once
	index map[string]int64
}

func (e *LabelEncoder) Name() string { return BuiltinLabelEncoder }

func (e *LabelEncoder) Transform(value any) (any, error) {
	s, ok := conv.ToString(value)
	if !ok {
		return nil, fmt.Errorf("%s: non-string value %v", e.Name(), value)
	}
	e.once.Do(e.buildIndex)
	if idx, ok := e.index[s]; ok {
		return idx, nil
	}
	return int64(-1), nil
}

func (e *LabelEncoder) buildIndex() {
	unique := append([]string(nil), e.Stats.UniqueValues()...)
	sort.Strings(unique)
	e.index = make(map[string]int64, len(unique))
	for i, v := range unique {
		e.index[v] = int64(i)
	}
}

// OneHotEncoder 把类别特征编码为 one-hot 向量。
// 输出列名为 <feature>_<category>，按类别名排序保证列序稳定；
// 训练数据中未出现的类别编码为全 0。
type OneHotEncoder struct {
	Feature string
	Stats   *FeatureStatistics

	// categories 懒构建的排序类别列表；构建须用 once 保护（同 LabelEncoder）
	once       sync.Once
	categories []string
}

func (e *OneHotEncoder) Name() string { return BuiltinOneHotEncoder }

func (e *OneHotEncoder) Transform(value any) (any, error) {
	s, ok := conv.ToString(value)
	if !ok {
		return nil, fmt.Errorf("%s: non-string value %v", e.Name(), value)
	}
	e.once.Do(func() {
		e.categories = append([]string(nil), e.Stats.UniqueValues()...)
		sort.Strings(e.categories)
	})
	encoded := make(map[string]float64, len(e.categories))
	for _, cat := range e.categories {
		name := e.Feature + "_" + cat
		if cat == s {
			encoded[name] = 1.0
		} else {
			encoded[name] = 0.0
		}
	}
	return encoded, nil
}
