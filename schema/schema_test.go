package schema

import (
	"testing"

	"github.com/rushteam/featurekit/core"
)

func indexedFeature(t *testing.T, name, ftype string, index int) *core.TrainingDatasetFeature {
	t.Helper()
	f, err := core.NewTrainingDatasetFeatureWithIndex(name, ftype, index)
	if err != nil {
		t.Fatalf("NewTrainingDatasetFeatureWithIndex(%s) error = %v", name, err)
	}
	return f
}

// 元数据服务返回的特征列表不保证有序，Schema 构造时必须按声明的序号排序。
func TestNewTrainingDatasetSchema_SortsByIndex(t *testing.T) {
	features := []*core.TrainingDatasetFeature{
		indexedFeature(t, "city", core.TypeString, 2),
		indexedFeature(t, "amount", core.TypeDouble, 0),
		indexedFeature(t, "merchant", core.TypeString, 1),
	}

	s, err := NewTrainingDatasetSchema(features)
	if err != nil {
		t.Fatalf("NewTrainingDatasetSchema() error = %v", err)
	}

	want := []string{"amount", "merchant", "city"}
	got := s.FeatureNames()
	for i, name := range want {
		if got[i] != name {
			t.Fatalf("FeatureNames() = %v, want %v", got, want)
		}
	}

	// 向量取值遵循同一列序
	values := s.VectorRow(map[string]any{"amount": 1.0, "merchant": "m", "city": "bj"})
	if values[0] != 1.0 || values[1] != "m" || values[2] != "bj" {
		t.Errorf("VectorRow() = %v", values)
	}

	// 传入的切片不被重排
	if features[0].Name() != "city" {
		t.Errorf("输入切片被重排：features[0] = %s", features[0].Name())
	}
}

// VectorRow 只做按序定位：值原样返回，附加的转换函数不在这里执行。
func TestVectorRow_RawValues(t *testing.T) {
	amount := indexedFeature(t, "amount", core.TypeDouble, 0)
	amount.SetTransformationFunction(&core.TransformationFunction{
		Name:                   "min_max_scaler",
		TransformationFeatures: []string{"amount"},
	})

	s, err := NewTrainingDatasetSchema([]*core.TrainingDatasetFeature{amount})
	if err != nil {
		t.Fatalf("NewTrainingDatasetSchema() error = %v", err)
	}

	values := s.VectorRow(map[string]any{"amount": 12.5})
	if values[0] != 12.5 {
		t.Errorf("VectorRow() = %v, want 原始值 12.5（转换由 serving 层执行）", values[0])
	}

	// 缺失值为 nil
	values = s.VectorRow(map[string]any{})
	if values[0] != nil {
		t.Errorf("VectorRow(missing) = %v, want nil", values[0])
	}
}
