package transformation

import (
	"math"
	"testing"

	"github.com/rushteam/featurekit/core"
)

func TestCELExecutor_Expression(t *testing.T) {
	stats := statsFor("amount", &FeatureStatistics{Mean: f64(10), Stddev: f64(2)})

	fn := &core.TransformationFunction{
		Name:                   "amount_zscore",
		SourceCode:             "(feature - statistics.amount.mean) / statistics.amount.stddev",
		TransformationFeatures: []string{"amount"},
		ExecutionMode:          core.ExecutionModeDefault,
	}

	exec := NewCELExecutor()
	tr, err := exec.Compile(fn, stats)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	got, err := tr.Transform(14.0)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	v, ok := got.(float64)
	if !ok || math.Abs(v-2.0) > 1e-9 {
		t.Errorf("Transform(14) = %v, want 2", got)
	}

	// 编译结果可多次执行
	got, err = tr.Transform(8.0)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if v := got.(float64); math.Abs(v+1.0) > 1e-9 {
		t.Errorf("Transform(8) = %v, want -1", got)
	}
}

func TestCELExecutor_NotSupported(t *testing.T) {
	exec := NewCELExecutor()

	// python/pandas 模式只能在服务端执行
	for _, mode := range []string{core.ExecutionModePython, core.ExecutionModePandas} {
		fn := &core.TransformationFunction{Name: "udf", SourceCode: "def udf(x): return x", ExecutionMode: mode}
		if _, err := exec.Compile(fn, nil); !core.IsNotSupported(err) {
			t.Errorf("Compile(mode=%s) error = %v, want NOT_SUPPORTED", mode, err)
		}
	}

	// 非表达式源码编译失败同样归为 NOT_SUPPORTED
	fn := &core.TransformationFunction{Name: "udf", SourceCode: "def udf(x):\n  return x"}
	if _, err := exec.Compile(fn, nil); !core.IsNotSupported(err) {
		t.Errorf("Compile(python body) error = %v, want NOT_SUPPORTED", err)
	}

	// 源码缺失
	empty := &core.TransformationFunction{Name: "udf"}
	if _, err := exec.Compile(empty, nil); !core.IsInvalidInput(err) {
		t.Errorf("Compile(empty) error = %v, want INVALID_INPUT", err)
	}
}

func TestDefaultExecutor(t *testing.T) {
	stats := statsFor("amount", &FeatureStatistics{Min: f64(0), Max: f64(10)})
	exec := NewDefaultExecutor()

	// 内置名称优先解析为本地实现
	builtin := &core.TransformationFunction{
		Name:                   BuiltinMinMaxScaler,
		TransformationFeatures: []string{"amount"},
	}
	tr, err := exec.Compile(builtin, stats)
	if err != nil {
		t.Fatalf("Compile(builtin) error = %v", err)
	}
	got, err := tr.Transform(5.0)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got.(float64) != 0.5 {
		t.Errorf("Transform(5) = %v, want 0.5", got)
	}

	// 非内置名称回落到 CEL
	expr := &core.TransformationFunction{
		Name:                   "clip_non_negative",
		SourceCode:             "feature > 0.0 ? feature : 0.0",
		TransformationFeatures: []string{"amount"},
	}
	tr, err = exec.Compile(expr, stats)
	if err != nil {
		t.Fatalf("Compile(cel) error = %v", err)
	}
	got, err = tr.Transform(-3.0)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got.(float64) != 0.0 {
		t.Errorf("Transform(-3) = %v, want 0", got)
	}

	// nil 函数
	if _, err := exec.Compile(nil, stats); !core.IsInvalidInput(err) {
		t.Errorf("Compile(nil) error = %v, want INVALID_INPUT", err)
	}
}
