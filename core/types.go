package core

import "strings"

// 特征存储的类型词汇表（Offline 类型标签，全小写存储，比较时大小写不敏感）。
// 这里只列出 SDK 内部需要感知的标量类型；复杂类型通过前缀匹配识别。
const (
	TypeBoolean   = "boolean"
	TypeInt       = "int"
	TypeBigint    = "bigint"
	TypeFloat     = "float"
	TypeDouble    = "double"
	TypeString    = "string"
	TypeDate      = "date"
	TypeTimestamp = "timestamp"
)

// ComplexFeatureTypes 是被视为复杂类型（非标量）的类型前缀集合。
// 复杂类型的特征值在下游需要特殊的（反）序列化处理。
// 判断时先将类型标签转为大写，再做前缀匹配（如 "array<int>" 命中 "ARRAY"）。
var ComplexFeatureTypes = []string{
	"ARRAY",
	"MAP",
	"STRUCT",
	"UNIONTYPE",
	"BINARY",
}

// IsComplexType 判断类型标签是否为复杂类型。
// 空类型标签视为调用方未满足前置条件，不做猜测，直接返回 false。
func IsComplexType(ftype string) bool {
	if ftype == "" {
		return false
	}
	upper := strings.ToUpper(ftype)
	for _, prefix := range ComplexFeatureTypes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}
