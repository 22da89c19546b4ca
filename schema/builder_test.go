package schema

import (
	"testing"

	"github.com/rushteam/featurekit/core"
)

func txnFeatureGroup() *core.FeatureGroup {
	return &core.FeatureGroup{
		ID:            7,
		Name:          "txn_fg",
		Version:       1,
		OnlineEnabled: true,
		PrimaryKey:    []string{"cc_num"},
		Features: []*core.FeatureGroupField{
			{Name: "CC_NUM", Type: core.TypeBigint, Primary: true},
			{Name: "Amount", Type: core.TypeDouble},
			{Name: "Merchant_Codes", Type: "array<int>"},
			{Name: "IS_FRAUD", Type: core.TypeInt},
			{Name: "dt", Type: core.TypeDate, Partition: true},
		},
	}
}

func TestBuilder_Build(t *testing.T) {
	fg := txnFeatureGroup()
	fn := &core.TransformationFunction{Name: "min_max_scaler", TransformationFeatures: []string{"amount"}}

	s, err := NewBuilder().
		AddFeatureGroup(fg).
		AddFeature("Manual_Score", core.TypeDouble).
		WithLabels("Is_Fraud").
		WithTransformation("AMOUNT", fn).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// 分区字段被跳过；名称统一小写
	wantNames := []string{"cc_num", "amount", "merchant_codes", "is_fraud", "manual_score"}
	gotNames := s.FeatureNames()
	if len(gotNames) != len(wantNames) {
		t.Fatalf("FeatureNames() = %v, want %v", gotNames, wantNames)
	}
	for i := range wantNames {
		if gotNames[i] != wantNames[i] {
			t.Errorf("FeatureNames()[%d] = %q, want %q", i, gotNames[i], wantNames[i])
		}
	}

	// 序号按枚举顺序分配
	for i, f := range s.Features() {
		if f.Index() == nil || *f.Index() != i {
			t.Errorf("feature %s index = %v, want %d", f.Name(), f.Index(), i)
		}
	}

	// label 标记（大小写不敏感）
	label, ok := s.Get("is_fraud")
	if !ok || !label.IsLabel() {
		t.Fatalf("Get(is_fraud) = %v, %v", label, ok)
	}
	if len(s.Labels()) != 1 {
		t.Errorf("Labels() = %d 个, want 1", len(s.Labels()))
	}

	// 特征组回引
	if label.FeatureGroup() != fg {
		t.Errorf("label 的特征组回引不一致")
	}
	manual, _ := s.Get("manual_score")
	if manual.FeatureGroup() != nil {
		t.Errorf("显式加入的特征不应有特征组回引")
	}

	// 转换函数附加（大小写不敏感）
	amount, _ := s.Get("amount")
	if amount.TransformationFunction() != fn {
		t.Errorf("amount 未附加转换函数")
	}

	// 复杂类型：merchant_codes 是 array；is_fraud 虽是 label 但本就是标量
	complexFeatures := s.ComplexFeatures()
	if len(complexFeatures) != 1 || complexFeatures[0].Name() != "merchant_codes" {
		t.Errorf("ComplexFeatures() = %v", complexFeatures)
	}
}

func TestBuilder_LabelNeverComplex(t *testing.T) {
	// label 短路：即使 label 列声明为复杂类型，也不进入 ComplexFeatures
	s, err := NewBuilder().
		AddFeature("embedding", "array<double>").
		AddFeature("target_vector", "array<double>").
		WithLabels("target_vector").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	complexFeatures := s.ComplexFeatures()
	if len(complexFeatures) != 1 || complexFeatures[0].Name() != "embedding" {
		t.Errorf("ComplexFeatures() = %v, want 只有 embedding", complexFeatures)
	}
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("unknown label", func(t *testing.T) {
		_, err := NewBuilder().AddFeature("a", core.TypeDouble).WithLabels("missing").Build()
		if !core.IsInvalidInput(err) {
			t.Errorf("Build() error = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("unknown transformation target", func(t *testing.T) {
		fn := &core.TransformationFunction{Name: "min_max_scaler"}
		_, err := NewBuilder().AddFeature("a", core.TypeDouble).WithTransformation("missing", fn).Build()
		if !core.IsInvalidInput(err) {
			t.Errorf("Build() error = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("duplicate feature", func(t *testing.T) {
		// 大小写不同但归一化后同名
		_, err := NewBuilder().
			AddFeature("Amount", core.TypeDouble).
			AddFeature("AMOUNT", core.TypeDouble).
			Build()
		if !core.IsInvalidInput(err) {
			t.Errorf("Build() error = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("empty feature name", func(t *testing.T) {
		_, err := NewBuilder().AddFeature("", core.TypeDouble).Build()
		if !core.IsInvalidInput(err) {
			t.Errorf("Build() error = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("nil feature group", func(t *testing.T) {
		_, err := NewBuilder().AddFeatureGroup(nil).Build()
		if !core.IsInvalidInput(err) {
			t.Errorf("Build() error = %v, want INVALID_INPUT", err)
		}
	})
}

func TestTrainingDatasetSchema_VectorRow(t *testing.T) {
	s, err := NewBuilder().
		AddFeature("amount", core.TypeDouble).
		AddFeature("city", core.TypeString).
		AddFeature("is_fraud", core.TypeInt).
		WithLabels("is_fraud").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	row := map[string]any{
		"amount":   12.5,
		"is_fraud": 1, // label 不参与在线向量
	}
	values := s.VectorRow(row)
	if len(values) != 2 {
		t.Fatalf("VectorRow() = %d 个值, want 2（label 除外）", len(values))
	}
	if values[0] != 12.5 {
		t.Errorf("values[0] = %v, want 12.5", values[0])
	}
	if values[1] != nil {
		t.Errorf("values[1] = %v, want nil（缺失值）", values[1])
	}
}
