// Package featurekit 是特征存储（Feature Store）的 Go SDK。
//
// 设计要点：
// - Descriptor-first: 训练数据集特征描述符（名称小写、label 标记、复杂类型判定）贯穿全链路
// - Schema 驱动: 在线向量按训练时的列序装配，反序列化与转换都由描述符决定
// - 存储可插拔: 在线行可来自内存/Redis KV，也可来自 Feast Feature Server
package featurekit

import (
	"github.com/rushteam/featurekit/core"
	"github.com/rushteam/featurekit/schema"
	"github.com/rushteam/featurekit/transformation"
)

// 轻量 facade：便于用户直接 import "featurekit" 使用核心抽象。
type TrainingDatasetFeature = core.TrainingDatasetFeature
type FeatureGroup = core.FeatureGroup
type TransformationFunction = core.TransformationFunction
type TrainingDatasetSchema = schema.TrainingDatasetSchema
type Statistics = transformation.Statistics

const (
	TypeBoolean   = core.TypeBoolean
	TypeInt       = core.TypeInt
	TypeBigint    = core.TypeBigint
	TypeFloat     = core.TypeFloat
	TypeDouble    = core.TypeDouble
	TypeString    = core.TypeString
	TypeDate      = core.TypeDate
	TypeTimestamp = core.TypeTimestamp
)

// NewFeature 创建训练数据集特征描述符（名称会被小写化）。
func NewFeature(name, ftype string) (*TrainingDatasetFeature, error) {
	return core.NewTrainingDatasetFeature(name, ftype)
}

// NewSchemaBuilder 创建训练数据集 Schema 构建器。
func NewSchemaBuilder() *schema.Builder {
	return schema.NewBuilder()
}
