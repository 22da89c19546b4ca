package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rushteam/featurekit/core"
)

// HTTPClient 是 core.MetadataService 的 REST 实现。
//
// 路径约定（挂在项目下）：
//   - GET /project/{project}/featuregroups/{name}?version=N
//   - GET /project/{project}/featureviews/{name}/version/{v}/schema
//   - GET /project/{project}/transformationfunctions/{name}?version=N
//
// 响应为 JSON；描述符的名称小写不变式在反序列化时由 core 保证。
type HTTPClient struct {
	// Endpoint 服务端点，例如 "https://fs.example.com:443"
	Endpoint string

	// Project 项目名称
	Project string

	// apiKey API Key 认证
	apiKey string

	// httpClient HTTP 客户端
	httpClient *http.Client
}

// NewHTTPClient 创建元数据 REST 客户端。
func NewHTTPClient(endpoint, project string, opts ...Option) (*HTTPClient, error) {
	if endpoint == "" {
		return nil, core.NewDomainError(core.ModuleClient, core.ErrorCodeInvalidInput, "client: endpoint is required")
	}
	if project == "" {
		return nil, core.NewDomainError(core.ModuleClient, core.ErrorCodeInvalidInput, "client: project is required")
	}

	config := &Config{
		Endpoint: endpoint,
		Project:  project,
		Timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &HTTPClient{
		Endpoint:   normalizeEndpoint(config.Endpoint),
		Project:    config.Project,
		apiKey:     config.APIKey,
		httpClient: httpClient,
	}, nil
}

// NewHTTPClientFromEnv 从环境变量创建元数据 REST 客户端。
func NewHTTPClientFromEnv(opts ...Option) (*HTTPClient, error) {
	config, err := FromEnv()
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithAPIKey(config.APIKey)}, opts...)
	return NewHTTPClient(config.Endpoint, config.Project, opts...)
}

func (c *HTTPClient) Name() string { return "http" }

// GetFeatureGroup 按名称和版本获取特征组定义。
func (c *HTTPClient) GetFeatureGroup(ctx context.Context, name string, version int) (*core.FeatureGroup, error) {
	path := fmt.Sprintf("/project/%s/featuregroups/%s?version=%d",
		url.PathEscape(c.Project), url.PathEscape(name), version)

	var fg core.FeatureGroup
	if err := c.get(ctx, path, &fg); err != nil {
		return nil, err
	}
	return &fg, nil
}

// GetTrainingDatasetSchema 获取特征视图对应的训练数据集 Schema。
// 返回的特征已经过名称小写归一化（core.TrainingDatasetFeature.UnmarshalJSON）。
func (c *HTTPClient) GetTrainingDatasetSchema(ctx context.Context, featureView string, version int) ([]*core.TrainingDatasetFeature, error) {
	path := fmt.Sprintf("/project/%s/featureviews/%s/version/%d/schema",
		url.PathEscape(c.Project), url.PathEscape(featureView), version)

	var wire struct {
		Features []*core.TrainingDatasetFeature `json:"features"`
	}
	if err := c.get(ctx, path, &wire); err != nil {
		return nil, err
	}
	return wire.Features, nil
}

// GetTransformationFunction 按名称和版本获取转换函数定义。
func (c *HTTPClient) GetTransformationFunction(ctx context.Context, name string, version int) (*core.TransformationFunction, error) {
	path := fmt.Sprintf("/project/%s/transformationfunctions/%s?version=%d",
		url.PathEscape(c.Project), url.PathEscape(name), version)

	var fn core.TransformationFunction
	if err := c.get(ctx, path, &fn); err != nil {
		return nil, err
	}
	return &fn, nil
}

// Close 关闭客户端，释放空闲连接。
func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// get 执行 GET 请求并解析 JSON 响应。
func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.NewDomainError(core.ModuleClient, core.ErrorCodeUnavailable,
			fmt.Sprintf("client: request %s failed: %v", path, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusNotFound:
		return core.NewDomainError(core.ModuleClient, core.ErrorCodeNotFound,
			fmt.Sprintf("client: %s not found", path))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return core.NewDomainError(core.ModuleClient, core.ErrorCodeInvalidInput,
			fmt.Sprintf("client: authentication failed for %s (status=%d)", path, resp.StatusCode))
	case resp.StatusCode >= 500:
		return core.NewDomainError(core.ModuleClient, core.ErrorCodeUnavailable,
			fmt.Sprintf("client: server error for %s (status=%d)", path, resp.StatusCode))
	default:
		body, _ := io.ReadAll(resp.Body)
		return core.NewDomainError(core.ModuleClient, core.ErrorCodeInternalError,
			fmt.Sprintf("client: unexpected status=%d for %s, body=%s", resp.StatusCode, path, string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response for %s: %w", path, err)
	}
	return nil
}
