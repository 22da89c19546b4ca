package core

import "context"

// MetadataService 是特征存储元数据的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（client）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 避免循环依赖：领域层不依赖基础设施层
//
// 使用场景：
//   - 训练数据集装配：按特征视图枚举 Schema
//   - 转换函数水合：从服务端响应读取 UDF 定义
//
// 实现：
//   - client.HTTPClient 实现此接口
//   - 测试中可用内存实现替换
type MetadataService interface {
	// Name 返回元数据服务名称（用于日志/监控）
	Name() string

	// GetFeatureGroup 按名称和版本获取特征组定义
	GetFeatureGroup(ctx context.Context, name string, version int) (*FeatureGroup, error)

	// GetTrainingDatasetSchema 获取特征视图对应的训练数据集 Schema（有序特征列表）
	GetTrainingDatasetSchema(ctx context.Context, featureView string, version int) ([]*TrainingDatasetFeature, error)

	// GetTransformationFunction 按名称和版本获取转换函数定义
	GetTransformationFunction(ctx context.Context, name string, version int) (*TransformationFunction, error)

	// Close 关闭客户端，释放资源
	Close() error
}

// MetadataService 错误定义（使用统一的 DomainError）
var (
	// ErrMetadataNotFound 表示请求的元数据资源不存在
	ErrMetadataNotFound = NewDomainError(ModuleClient, ErrorCodeNotFound, "client: metadata not found")

	// ErrMetadataUnavailable 表示元数据服务不可用
	ErrMetadataUnavailable = NewDomainError(ModuleClient, ErrorCodeUnavailable, "client: metadata service unavailable")
)
