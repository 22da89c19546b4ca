package core

import (
	"encoding/json"
	"strings"
)

// TrainingDatasetFeature 是训练数据集 Schema 中的一列（可能是 label）。
//
// 设计原则：
//   - 按约定不可变：由 schema 装配方（schema.Builder）一次性构造并填充，
//     Set 系列方法用于分阶段装配，不用于运行期修改
//   - name 永远以小写形式存储：无论输入大小写如何，所有读取方观察到的都是小写
//   - IsComplex 是派生谓词（方法），不参与 JSON 序列化
//
// 生命周期：
//   - 由训练数据集装配逻辑在枚举训练视图 Schema 时创建
//   - 由序列化/查询逻辑读取并发送给远端特征存储服务
type TrainingDatasetFeature struct {
	name                   string
	ftype                  string
	featureGroup           *FeatureGroup
	index                  *int
	label                  bool
	transformationFunction *TransformationFunction
}

// ErrInvalidFeatureName 表示特征名缺失，无法做小写归一化。
// 这是纯本地同步操作，不可恢复也不重试，由调用方保证传入非空名称。
var ErrInvalidFeatureName = NewDomainError(ModuleFeature, ErrorCodeInvalidInput, "feature: name is required")

// NewTrainingDatasetFeature 创建只有名称和类型的特征描述符。
// index 与 transformationFunction 未设置，label 默认为 false。
func NewTrainingDatasetFeature(name, ftype string) (*TrainingDatasetFeature, error) {
	f := &TrainingDatasetFeature{ftype: ftype}
	if err := f.SetName(name); err != nil {
		return nil, err
	}
	return f, nil
}

// NewTrainingDatasetFeatureWithIndex 创建带序号的特征描述符。
func NewTrainingDatasetFeatureWithIndex(name, ftype string, index int) (*TrainingDatasetFeature, error) {
	f, err := NewTrainingDatasetFeature(name, ftype)
	if err != nil {
		return nil, err
	}
	f.index = &index
	return f, nil
}

// NewTrainingDatasetFeatureFull 创建带序号与 label 标记的特征描述符。
// index 传 nil 表示序号尚未分配。
func NewTrainingDatasetFeatureFull(name, ftype string, index *int, label bool) (*TrainingDatasetFeature, error) {
	f, err := NewTrainingDatasetFeature(name, ftype)
	if err != nil {
		return nil, err
	}
	f.index = index
	f.label = label
	return f, nil
}

// NewFeatureGroupFeature 创建带特征组回引的特征描述符。
// featureGroup 仅用于回查（弱引用），不表示所有权。
func NewFeatureGroupFeature(featureGroup *FeatureGroup, name string, label bool) (*TrainingDatasetFeature, error) {
	f := &TrainingDatasetFeature{featureGroup: featureGroup, label: label}
	if err := f.SetName(name); err != nil {
		return nil, err
	}
	return f, nil
}

// SetName 设置特征名，存储前统一转为小写。
// 名称为空时返回 ErrInvalidFeatureName。
func (f *TrainingDatasetFeature) SetName(name string) error {
	if name == "" {
		return ErrInvalidFeatureName
	}
	f.name = strings.ToLower(name)
	return nil
}

// Name 返回小写形式的特征名。
func (f *TrainingDatasetFeature) Name() string { return f.name }

// Type 返回类型标签（如 "double"、"array<int>"）。
func (f *TrainingDatasetFeature) Type() string { return f.ftype }

// SetType 设置类型标签。
func (f *TrainingDatasetFeature) SetType(ftype string) { f.ftype = ftype }

// FeatureGroup 返回特征组回引，可能为 nil。
func (f *TrainingDatasetFeature) FeatureGroup() *FeatureGroup { return f.featureGroup }

// SetFeatureGroup 设置特征组回引。
func (f *TrainingDatasetFeature) SetFeatureGroup(fg *FeatureGroup) { f.featureGroup = fg }

// Index 返回特征在训练数据集 Schema 中的序号，未分配时为 nil。
func (f *TrainingDatasetFeature) Index() *int { return f.index }

// SetIndex 设置序号（由 Schema 装配方分配）。
func (f *TrainingDatasetFeature) SetIndex(index int) { f.index = &index }

// IsLabel 返回该特征是否为预测目标（label）。
func (f *TrainingDatasetFeature) IsLabel() bool { return f.label }

// SetLabel 设置 label 标记。
func (f *TrainingDatasetFeature) SetLabel(label bool) { f.label = label }

// TransformationFunction 返回附加在该特征上的转换函数，可能为 nil。
func (f *TrainingDatasetFeature) TransformationFunction() *TransformationFunction {
	return f.transformationFunction
}

// SetTransformationFunction 设置转换函数。
func (f *TrainingDatasetFeature) SetTransformationFunction(fn *TransformationFunction) {
	f.transformationFunction = fn
}

// IsComplex 判断该特征是否为复杂类型（需要下游特殊的反序列化处理）。
// label 特征永远不视为复杂类型，无论声明类型是什么。
// 派生谓词，不参与 JSON 序列化。
// 前置条件：非 label 特征的 Type 已设置；Type 为空时不做猜测，返回 false。
func (f *TrainingDatasetFeature) IsComplex() bool {
	return !f.label && IsComplexType(f.ftype)
}

// trainingDatasetFeatureJSON 是 TrainingDatasetFeature 的线上表示。
// 与远端服务的 JSON 契约保持一致；IsComplex 为计算值，不出现在其中。
type trainingDatasetFeatureJSON struct {
	Name                   string                  `json:"name"`
	Type                   string                  `json:"type,omitempty"`
	FeatureGroup           *FeatureGroup           `json:"featuregroup,omitempty"`
	Index                  *int                    `json:"index,omitempty"`
	Label                  bool                    `json:"label"`
	TransformationFunction *TransformationFunction `json:"transformationFunction,omitempty"`
}

// MarshalJSON 实现 json.Marshaler。
func (f *TrainingDatasetFeature) MarshalJSON() ([]byte, error) {
	return json.Marshal(trainingDatasetFeatureJSON{
		Name:                   f.name,
		Type:                   f.ftype,
		FeatureGroup:           f.featureGroup,
		Index:                  f.index,
		Label:                  f.label,
		TransformationFunction: f.transformationFunction,
	})
}

// UnmarshalJSON 实现 json.Unmarshaler。
// 名称赋值同样经过 SetName 的小写归一化，保证从服务端响应水合的实例
// 与本地构造的实例遵守同一不变式。
func (f *TrainingDatasetFeature) UnmarshalJSON(data []byte) error {
	var wire trainingDatasetFeatureJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if err := f.SetName(wire.Name); err != nil {
		return err
	}
	f.ftype = wire.Type
	f.featureGroup = wire.FeatureGroup
	f.index = wire.Index
	f.label = wire.Label
	f.transformationFunction = wire.TransformationFunction
	return nil
}
