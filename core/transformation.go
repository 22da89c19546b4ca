package core

// 转换函数的执行模式。
// python/pandas 模式的函数体只能在服务端执行；SDK 本地只能执行表达式形式的函数。
const (
	ExecutionModeDefault = "default"
	ExecutionModePython  = "python"
	ExecutionModePandas  = "pandas"
)

// TransformationFunction 是附加在特征上的用户自定义转换函数（UDF）的引用。
// 字段与服务端响应的 JSON 契约一一对应，从响应水合后只读使用。
type TransformationFunction struct {
	// ID 服务端分配的资源 ID
	ID int `json:"id,omitempty"`

	// Name 函数名（内置转换函数通过名称解析本地实现）
	Name string `json:"name"`

	// Version 函数版本
	Version int `json:"version,omitempty"`

	// SourceCode 函数源码（表达式形式的函数可由 SDK 本地执行）
	SourceCode string `json:"sourceCode,omitempty"`

	// OutputTypes 输出列的类型标签列表
	OutputTypes []string `json:"outputTypes,omitempty"`

	// TransformationFeatures 输入特征名列表
	TransformationFeatures []string `json:"transformationFeatures,omitempty"`

	// StatisticsArgumentNames 需要训练数据集统计量的参数名列表
	StatisticsArgumentNames []string `json:"statisticsArgumentNames,omitempty"`

	// DroppedArgumentNames 转换后从输出中丢弃的输入特征名列表
	DroppedArgumentNames []string `json:"dropped_argument_names,omitempty"`

	// ExecutionMode 执行模式（default / python / pandas）
	ExecutionMode string `json:"executionMode,omitempty"`
}

// RequiresStatistics 返回该函数是否依赖训练数据集统计量。
func (t *TransformationFunction) RequiresStatistics() bool {
	return len(t.StatisticsArgumentNames) > 0
}

// Drops 返回输入特征名是否在转换后被丢弃。
func (t *TransformationFunction) Drops(feature string) bool {
	for _, name := range t.DroppedArgumentNames {
		if name == feature {
			return true
		}
	}
	return false
}
