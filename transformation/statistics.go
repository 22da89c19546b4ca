// Package transformation 实现特征转换函数：训练数据集统计量模型、
// 内置转换（scaler/encoder）以及表达式形式 UDF 的本地执行。
package transformation

import (
	"encoding/json"
	"fmt"
)

// FeatureStatistics 是单个特征在训练数据上的统计量。
// 由服务端在创建训练数据集时计算，SDK 从响应 JSON 水合后只读使用。
type FeatureStatistics struct {
	// FeatureName 统计量对应的特征名
	FeatureName string `json:"featureName"`

	// Count 特征在训练数据中的取值个数
	Count int64 `json:"count,omitempty"`

	// Completeness 非空值占比
	Completeness *float64 `json:"completeness,omitempty"`

	// NumNonNullValues 非空值个数
	NumNonNullValues *int64 `json:"numNonNullValues,omitempty"`

	// NumNullValues 空值个数
	NumNullValues *int64 `json:"numNullValues,omitempty"`

	// ApproxNumDistinctValues 近似去重值个数
	ApproxNumDistinctValues *int64 `json:"approxNumDistinctValues,omitempty"`

	// Min 最小值
	Min *float64 `json:"min,omitempty"`

	// Max 最大值
	Max *float64 `json:"max,omitempty"`

	// Sum 求和
	Sum *float64 `json:"sum,omitempty"`

	// Mean 均值
	Mean *float64 `json:"mean,omitempty"`

	// Stddev 标准差
	Stddev *float64 `json:"stddev,omitempty"`

	// Percentiles 百分位数列表（100 个值；第 50 百分位在下标 49）
	Percentiles []float64 `json:"percentiles,omitempty"`

	// Distinctness 去重值占比（至少出现一次）
	Distinctness *float64 `json:"distinctness,omitempty"`

	// Entropy 熵
	Entropy *float64 `json:"entropy,omitempty"`

	// Uniqueness 唯一值占比（恰好出现一次）
	Uniqueness *float64 `json:"uniqueness,omitempty"`

	// ExactNumDistinctValues 精确去重值个数
	ExactNumDistinctValues *int64 `json:"exactNumDistinctValues,omitempty"`

	// ExtendedStatistics 扩展统计量（直方图、去重值列表等）
	ExtendedStatistics *ExtendedStatistics `json:"extendedStatistics,omitempty"`
}

// UniqueValues 返回训练数据中出现过的去重值列表（来自扩展统计量）。
// 没有扩展统计量时返回 nil。
func (s *FeatureStatistics) UniqueValues() []string {
	if s.ExtendedStatistics == nil {
		return nil
	}
	return s.ExtendedStatistics.UniqueValues
}

// Percentile 返回第 p 百分位数（1 <= p <= 100），对应下标 p-1。
func (s *FeatureStatistics) Percentile(p int) (float64, bool) {
	if p < 1 || p > len(s.Percentiles) {
		return 0, false
	}
	return s.Percentiles[p-1], true
}

// ExtendedStatistics 是扩展统计量。
// 服务端可能将其作为 JSON 对象返回，也可能作为 JSON 字符串内嵌返回，
// 反序列化时两种形式都要接受。
type ExtendedStatistics struct {
	// Correlations 与其他特征的相关性
	Correlations map[string]float64 `json:"correlations,omitempty"`

	// Histogram 值分布直方图
	Histogram []HistogramBucket `json:"histogram,omitempty"`

	// KLL KLL sketch（分位数摘要）
	KLL map[string]any `json:"kll,omitempty"`

	// UniqueValues 去重值列表（label/one-hot 编码依赖此项）
	UniqueValues []string `json:"unique_values,omitempty"`
}

// HistogramBucket 是直方图中的一个桶。
type HistogramBucket struct {
	Value string  `json:"value"`
	Count int64   `json:"count"`
	Ratio float64 `json:"ratio,omitempty"`
}

// UnmarshalJSON 实现 json.Unmarshaler，兼容字符串内嵌的 JSON 形式。
func (e *ExtendedStatistics) UnmarshalJSON(data []byte) error {
	// 字符串形式：先解开外层字符串再按对象解析
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return fmt.Errorf("unwrap extended statistics: %w", err)
		}
		data = []byte(inner)
	}

	type alias ExtendedStatistics
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("parse extended statistics: %w", err)
	}
	*e = ExtendedStatistics(decoded)
	return nil
}

// Statistics 保存一个转换函数所需的全部特征统计量，按特征名索引。
// 所有统计量先以空值初始化，创建训练数据集后再用服务端计算结果填充。
type Statistics struct {
	features map[string]*FeatureStatistics
}

// NewStatistics 为给定的特征名初始化统计量注册表。
func NewStatistics(features ...string) *Statistics {
	s := &Statistics{features: make(map[string]*FeatureStatistics, len(features))}
	for _, name := range features {
		s.features[name] = &FeatureStatistics{FeatureName: name}
	}
	return s
}

// Feature 返回指定特征的统计量；未注册的特征返回 (nil, false)。
func (s *Statistics) Feature(name string) (*FeatureStatistics, bool) {
	stats, ok := s.features[name]
	return stats, ok
}

// Set 用服务端响应 JSON 覆盖指定特征的统计量。
func (s *Statistics) Set(name string, response []byte) error {
	var stats FeatureStatistics
	if err := json.Unmarshal(response, &stats); err != nil {
		return fmt.Errorf("parse statistics for %s: %w", name, err)
	}
	if stats.FeatureName == "" {
		stats.FeatureName = name
	}
	s.features[name] = &stats
	return nil
}

// Features 返回已注册的特征名列表。
func (s *Statistics) Features() []string {
	names := make([]string, 0, len(s.features))
	for name := range s.features {
		names = append(names, name)
	}
	return names
}
