// Package schema 实现训练数据集 Schema 的装配与查询：
// 从特征组枚举特征、标记 label、分配序号，并提供按序取值能力。
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rushteam/featurekit/core"
)

// TrainingDatasetSchema 是训练数据集的有序特征列表。
// 由 Builder 装配，或从元数据服务返回的特征列表水合；构造后只读。
type TrainingDatasetSchema struct {
	features []*core.TrainingDatasetFeature
	byName   map[string]*core.TrainingDatasetFeature
}

// NewTrainingDatasetSchema 从特征列表构造 Schema。
// 特征名重复返回 INVALID_INPUT；未分配序号的特征按列表顺序补齐。
// 元数据服务返回的列表不保证有序，构造时按声明的序号稳定排序，
// 保证向量列序与训练时一致。
func NewTrainingDatasetSchema(features []*core.TrainingDatasetFeature) (*TrainingDatasetSchema, error) {
	ordered := append([]*core.TrainingDatasetFeature(nil), features...)
	s := &TrainingDatasetSchema{
		features: ordered,
		byName:   make(map[string]*core.TrainingDatasetFeature, len(ordered)),
	}
	for i, f := range ordered {
		if _, ok := s.byName[f.Name()]; ok {
			return nil, core.NewDomainError(core.ModuleSchema, core.ErrorCodeInvalidInput,
				fmt.Sprintf("schema: duplicate feature name %s", f.Name()))
		}
		s.byName[f.Name()] = f
		if f.Index() == nil {
			f.SetIndex(i)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return *ordered[i].Index() < *ordered[j].Index()
	})
	return s, nil
}

// Features 返回全部特征（按序号顺序）。
func (s *TrainingDatasetSchema) Features() []*core.TrainingDatasetFeature {
	return s.features
}

// Get 按名称查找特征（大小写不敏感，名称统一为小写存储）。
func (s *TrainingDatasetSchema) Get(name string) (*core.TrainingDatasetFeature, bool) {
	f, ok := s.byName[strings.ToLower(name)]
	return f, ok
}

// FeatureNames 返回全部特征名（按序号顺序）。
func (s *TrainingDatasetSchema) FeatureNames() []string {
	names := make([]string, 0, len(s.features))
	for _, f := range s.features {
		names = append(names, f.Name())
	}
	return names
}

// Inputs 返回输入特征（非 label）。
func (s *TrainingDatasetSchema) Inputs() []*core.TrainingDatasetFeature {
	var inputs []*core.TrainingDatasetFeature
	for _, f := range s.features {
		if !f.IsLabel() {
			inputs = append(inputs, f)
		}
	}
	return inputs
}

// Labels 返回 label 特征。
func (s *TrainingDatasetSchema) Labels() []*core.TrainingDatasetFeature {
	var labels []*core.TrainingDatasetFeature
	for _, f := range s.features {
		if f.IsLabel() {
			labels = append(labels, f)
		}
	}
	return labels
}

// ComplexFeatures 返回需要特殊反序列化处理的复杂类型特征。
func (s *TrainingDatasetSchema) ComplexFeatures() []*core.TrainingDatasetFeature {
	var complexFeatures []*core.TrainingDatasetFeature
	for _, f := range s.features {
		if f.IsComplex() {
			complexFeatures = append(complexFeatures, f)
		}
	}
	return complexFeatures
}

// VectorRow 按输入特征的序号顺序从原始行中取值，缺失值为 nil。
// label 特征不参与在线特征向量。
// 值原样定位，不做反序列化，也不应用转换函数（转换由 serving 层执行）。
func (s *TrainingDatasetSchema) VectorRow(row map[string]any) []any {
	inputs := s.Inputs()
	values := make([]any, len(inputs))
	for i, f := range inputs {
		if v, ok := row[f.Name()]; ok {
			values[i] = v
		}
	}
	return values
}
