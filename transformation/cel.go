package transformation

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/featurekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		// 定义变量类型
		cel.Variable("feature", cel.DynType),
		cel.Variable("statistics", cel.DynType),
	)
	return env, err
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	if celEnv == nil && err == nil {
		err = fmt.Errorf("cel environment not initialized")
	}
	return celEnv, err
}

// CELExecutor 把表达式形式的 UDF 编译为 CEL 程序本地执行。
// CEL (Common Expression Language) 类型安全、高性能、线程安全。
//
// 表达式中可用的变量：
//   - feature: 当前特征值
//   - statistics: 训练数据集统计量，按特征名索引
//
// 示例：
//   - `(feature - statistics.amount.mean) / statistics.amount.stddev`
//   - `feature > 0.0 ? feature : 0.0`
//
// python/pandas 模式的函数体不是表达式，无法本地执行，返回 NOT_SUPPORTED。
type CELExecutor struct{}

// NewCELExecutor 创建 CEL 执行器。
func NewCELExecutor() *CELExecutor {
	return &CELExecutor{}
}

func (e *CELExecutor) Compile(fn *core.TransformationFunction, stats *Statistics) (Transformer, error) {
	switch fn.ExecutionMode {
	case core.ExecutionModePython, core.ExecutionModePandas:
		return nil, ErrExecutionNotSupported
	}
	if fn.SourceCode == "" {
		return nil, core.NewDomainError(core.ModuleTransformation, core.ErrorCodeInvalidInput,
			fmt.Sprintf("transformation: %s has no source code", fn.Name))
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	// 编译表达式；非表达式形式的源码（如 Python 函数体）会在这里失败
	ast, issues := env.Compile(fn.SourceCode)
	if issues != nil && issues.Err() != nil {
		return nil, core.NewDomainError(core.ModuleTransformation, core.ErrorCodeNotSupported,
			fmt.Sprintf("transformation: %s is not locally executable: %v", fn.Name, issues.Err()))
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel program: %w", err)
	}

	return &celTransformer{
		name:       fn.Name,
		prg:        prg,
		statistics: buildStatisticsInput(stats),
	}, nil
}

// celTransformer 是编译好的 CEL 程序，可多次执行。
type celTransformer struct {
	name       string
	prg        cel.Program
	statistics map[string]any
}

func (t *celTransformer) Name() string { return t.name }

func (t *celTransformer) Transform(value any) (any, error) {
	out, _, err := t.prg.Eval(map[string]any{
		"feature":    value,
		"statistics": t.statistics,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: eval: %w", t.name, err)
	}
	return out.Value(), nil
}

// buildStatisticsInput 把统计量注册表展开为 CEL 输入数据。
// 未填充的统计字段不出现在 map 中，表达式可用 has() 检查存在性。
func buildStatisticsInput(stats *Statistics) map[string]any {
	input := make(map[string]any)
	if stats == nil {
		return input
	}
	for _, name := range stats.Features() {
		featureStats, ok := stats.Feature(name)
		if !ok {
			continue
		}
		entry := map[string]any{
			"count": featureStats.Count,
		}
		if featureStats.Min != nil {
			entry["min"] = *featureStats.Min
		}
		if featureStats.Max != nil {
			entry["max"] = *featureStats.Max
		}
		if featureStats.Sum != nil {
			entry["sum"] = *featureStats.Sum
		}
		if featureStats.Mean != nil {
			entry["mean"] = *featureStats.Mean
		}
		if featureStats.Stddev != nil {
			entry["stddev"] = *featureStats.Stddev
		}
		if len(featureStats.Percentiles) > 0 {
			entry["percentiles"] = featureStats.Percentiles
		}
		if unique := featureStats.UniqueValues(); unique != nil {
			entry["unique_values"] = unique
		}
		input[name] = entry
	}
	return input
}
