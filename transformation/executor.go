package transformation

import (
	"errors"

	"github.com/rushteam/featurekit/core"
)

// Executor 把转换函数定义编译为可本地执行的 Transformer。
//
// 设计原则：
//   - 内置转换按名称解析本地实现
//   - 表达式形式的 UDF 通过 CEL 本地执行
//   - python/pandas 模式的函数体只能在服务端执行，本地返回 NOT_SUPPORTED
type Executor interface {
	// Compile 编译转换函数；编译结果可多次调用 Transform。
	Compile(fn *core.TransformationFunction, stats *Statistics) (Transformer, error)
}

// ErrExecutionNotSupported 表示该转换函数无法在 SDK 本地执行。
var ErrExecutionNotSupported = core.NewDomainError(core.ModuleTransformation, core.ErrorCodeNotSupported,
	"transformation: execution mode not supported locally")

// DefaultExecutor 是默认执行器：先按名称解析内置转换，
// 解析不到再尝试把 SourceCode 作为 CEL 表达式编译。
type DefaultExecutor struct {
	cel *CELExecutor
}

// NewDefaultExecutor 创建默认执行器。
func NewDefaultExecutor() *DefaultExecutor {
	return &DefaultExecutor{cel: NewCELExecutor()}
}

func (e *DefaultExecutor) Compile(fn *core.TransformationFunction, stats *Statistics) (Transformer, error) {
	if fn == nil {
		return nil, core.NewDomainError(core.ModuleTransformation, core.ErrorCodeInvalidInput,
			"transformation: function is nil")
	}

	builtin, err := ResolveBuiltin(fn, stats)
	if err == nil {
		return builtin, nil
	}
	if !errors.Is(err, ErrBuiltinNotFound) {
		return nil, err
	}

	return e.cel.Compile(fn, stats)
}
