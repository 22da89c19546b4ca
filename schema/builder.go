package schema

import (
	"fmt"
	"strings"

	"github.com/rushteam/featurekit/core"
)

// Builder 是训练数据集 Schema 的装配器。
// 遍历特征组/显式特征收集列定义，标记 label，附加转换函数，
// 最后一次性 Build：所有特征在 Build 返回时完整构造，不暴露半初始化状态。
//
// 用法：
//
//	schema, err := schema.NewBuilder().
//	    AddFeatureGroup(txnFG).
//	    AddFeature("manual_score", core.TypeDouble).
//	    WithLabels("is_fraud").
//	    WithTransformation("amount", minMaxFn).
//	    Build()
type Builder struct {
	features        []*core.TrainingDatasetFeature
	labels          []string
	transformations map[string]*core.TransformationFunction
	err             error // 首个装配错误，延迟到 Build 返回
}

// NewBuilder 创建 Schema 装配器。
func NewBuilder() *Builder {
	return &Builder{transformations: make(map[string]*core.TransformationFunction)}
}

// AddFeatureGroup 把特征组的全部字段（跳过分区字段）加入 Schema，
// 每个特征携带到所属特征组的弱引用。
func (b *Builder) AddFeatureGroup(fg *core.FeatureGroup) *Builder {
	if b.err != nil {
		return b
	}
	if fg == nil {
		b.err = core.NewDomainError(core.ModuleSchema, core.ErrorCodeInvalidInput, "schema: feature group is nil")
		return b
	}
	for _, field := range fg.Features {
		if field.Partition {
			continue
		}
		f, err := core.NewFeatureGroupFeature(fg, field.Name, false)
		if err != nil {
			b.err = err
			return b
		}
		f.SetType(field.Type)
		b.features = append(b.features, f)
	}
	return b
}

// AddFeature 加入一个不属于任何特征组的特征（如请求期拼接的列）。
func (b *Builder) AddFeature(name, ftype string) *Builder {
	if b.err != nil {
		return b
	}
	f, err := core.NewTrainingDatasetFeature(name, ftype)
	if err != nil {
		b.err = err
		return b
	}
	b.features = append(b.features, f)
	return b
}

// WithLabels 声明 label 列（预测目标）。名称大小写不敏感。
func (b *Builder) WithLabels(names ...string) *Builder {
	b.labels = append(b.labels, names...)
	return b
}

// WithTransformation 给指定特征附加转换函数。名称大小写不敏感。
func (b *Builder) WithTransformation(feature string, fn *core.TransformationFunction) *Builder {
	b.transformations[strings.ToLower(feature)] = fn
	return b
}

// Build 完成装配：标记 label、附加转换函数、按枚举顺序分配序号。
// label 名或转换目标不在 Schema 中、特征名重复时返回 INVALID_INPUT。
func (b *Builder) Build() (*TrainingDatasetSchema, error) {
	if b.err != nil {
		return nil, b.err
	}

	byName := make(map[string]*core.TrainingDatasetFeature, len(b.features))
	for _, f := range b.features {
		if _, ok := byName[f.Name()]; ok {
			return nil, core.NewDomainError(core.ModuleSchema, core.ErrorCodeInvalidInput,
				fmt.Sprintf("schema: duplicate feature name %s", f.Name()))
		}
		byName[f.Name()] = f
	}

	for _, label := range b.labels {
		f, ok := byName[strings.ToLower(label)]
		if !ok {
			return nil, core.NewDomainError(core.ModuleSchema, core.ErrorCodeInvalidInput,
				fmt.Sprintf("schema: label %s not found in schema", label))
		}
		f.SetLabel(true)
	}

	for feature, fn := range b.transformations {
		f, ok := byName[feature]
		if !ok {
			return nil, core.NewDomainError(core.ModuleSchema, core.ErrorCodeInvalidInput,
				fmt.Sprintf("schema: transformation target %s not found in schema", feature))
		}
		f.SetTransformationFunction(fn)
	}

	// 序号按枚举顺序分配
	for i, f := range b.features {
		f.SetIndex(i)
	}

	return NewTrainingDatasetSchema(b.features)
}
