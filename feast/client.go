// Package feast 是 Feast Feature Server 的在线行读取适配。
// 当在线特征由 Feast 管理时，SDK 可以直接从 Feast 读取特征行，
// 而不经过自己的 KV 在线存储。
//
// 参考：https://github.com/feast-dev/feast
package feast

import (
	"context"
	"fmt"
	"time"

	feastsdk "github.com/feast-dev/feast/sdk/go"
	feasttypes "github.com/feast-dev/feast/sdk/go/protos/feast/types"

	"github.com/rushteam/featurekit/core"
	"github.com/rushteam/featurekit/serving"
)

// Client 是基于官方 Feast Go SDK 的 gRPC 行读取器，实现 serving.RowReader。
//
// 工程特征：
//   - 实时性：优秀（gRPC 低延迟）
//   - 功能：只做在线读取；物化/历史特征由 Feast 侧负责
type Client struct {
	// client 官方 SDK 的 gRPC 客户端
	client *feastsdk.GrpcClient

	// Project Feast 项目名称
	Project string

	// Endpoint 服务端点（用于信息展示）
	Endpoint string
}

// Config 是 Feast 读取器配置。
type Config struct {
	// Host Feast Feature Server 主机地址
	Host string `yaml:"host" json:"host"`

	// Port gRPC 端口，默认 6565
	Port int `yaml:"port" json:"port"`

	// Project 项目名称
	Project string `yaml:"project" json:"project"`

	// Timeout 超时时间（预留；官方 SDK 通过 ctx 控制）
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// StaticToken 静态 Token 认证（可选）
	StaticToken string `yaml:"static_token" json:"static_token"`
}

// NewClient 创建 Feast 行读取器。
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || cfg.Host == "" {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "feast: host is required")
	}
	port := cfg.Port
	if port == 0 {
		port = 6565 // 默认 gRPC 端口
	}

	var client *feastsdk.GrpcClient
	var err error
	if cfg.StaticToken != "" {
		credential := feastsdk.NewStaticCredential(cfg.StaticToken)
		security := feastsdk.SecurityConfig{
			EnableTLS:  false,
			Credential: credential,
		}
		client, err = feastsdk.NewSecureGrpcClient(cfg.Host, port, security)
	} else {
		client, err = feastsdk.NewGrpcClient(cfg.Host, port)
	}
	if err != nil {
		return nil, fmt.Errorf("feast: create grpc client: %w", err)
	}

	return &Client{
		client:   client,
		Project:  cfg.Project,
		Endpoint: fmt.Sprintf("%s:%d", cfg.Host, port),
	}, nil
}

func (c *Client) Name() string { return "feast" }

// ReadRow 读取实体在某个特征组下的一行特征。
// 特征引用使用 "{featureGroup}:{feature}" 形式；实体键取特征组的首个主键列。
func (c *Client) ReadRow(ctx context.Context, fg *core.FeatureGroup, entityKey string) (map[string]any, error) {
	if len(fg.PrimaryKey) == 0 {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput,
			fmt.Sprintf("feast: feature group %s has no primary key", fg.Name))
	}

	names := fg.FeatureNames()
	refs := make([]string, len(names))
	for i, name := range names {
		refs[i] = fg.Name + ":" + name
	}

	entityRow := feastsdk.Row{fg.PrimaryKey[0]: feastsdk.StrVal(entityKey)}
	resp, err := c.client.GetOnlineFeatures(ctx, &feastsdk.OnlineFeaturesRequest{
		Features: refs,
		Entities: []feastsdk.Row{entityRow},
		Project:  c.Project,
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeUnavailable,
			fmt.Sprintf("feast: get online features: %v", err))
	}

	rows := resp.Rows()
	if len(rows) == 0 {
		return nil, core.ErrStoreNotFound
	}

	row := make(map[string]any, len(names))
	for i, name := range names {
		// 响应里的 key 可能是全限定引用，也可能是裸特征名
		val, ok := rows[0][refs[i]]
		if !ok {
			val, ok = rows[0][name]
		}
		if !ok {
			continue
		}
		if converted := convertValue(val); converted != nil {
			row[name] = converted
		}
	}
	if len(row) == 0 {
		return nil, core.ErrStoreNotFound
	}
	return row, nil
}

// Close 关闭客户端连接。
// 官方 SDK 没有显式的 Close 方法，连接由 gRPC 库管理；
// 客户端引用保持不变，Close 后的 ReadRow 返回 UNAVAILABLE 而不是崩溃。
func (c *Client) Close() error {
	return nil
}

// convertValue 把 Feast 的 protobuf Value 转为 Go 原生值。
func convertValue(v *feasttypes.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.GetVal().(type) {
	case *feasttypes.Value_StringVal:
		return val.StringVal
	case *feasttypes.Value_Int32Val:
		return int64(val.Int32Val)
	case *feasttypes.Value_Int64Val:
		return val.Int64Val
	case *feasttypes.Value_FloatVal:
		return float64(val.FloatVal)
	case *feasttypes.Value_DoubleVal:
		return val.DoubleVal
	case *feasttypes.Value_BoolVal:
		return val.BoolVal
	case *feasttypes.Value_BytesVal:
		return val.BytesVal
	default:
		return nil
	}
}

// 确保 Client 实现了 serving.RowReader 接口
var _ serving.RowReader = (*Client)(nil)
