// Package client 实现特征存储元数据服务的 REST 客户端。
// 接口定义在 core 包（core.MetadataService），此包只包含实现。
package client

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// 环境变量名（与部署侧约定保持一致）。
const (
	EnvHost    = "FEATURESTORE_HOST"
	EnvPort    = "FEATURESTORE_PORT"
	EnvProject = "FEATURESTORE_PROJECT"
	EnvAPIKey  = "FEATURESTORE_API_KEY"

	// DefaultPort 默认服务端口
	DefaultPort = 443
)

// Config 是元数据客户端配置。
type Config struct {
	// Endpoint 服务端点，例如 "https://fs.example.com:443"
	Endpoint string

	// Project 项目名称（所有元数据都挂在项目下）
	Project string

	// APIKey API Key 认证
	APIKey string

	// Timeout 超时时间
	Timeout time.Duration

	// HTTPClient 自定义 HTTP 客户端（可选，用于测试/代理）
	HTTPClient *http.Client
}

// Option 是客户端配置选项，采用函数式选项模式。
type Option func(*Config)

// WithTimeout 配置选项：设置超时时间
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithAPIKey 配置选项：设置 API Key 认证
func WithAPIKey(apiKey string) Option {
	return func(c *Config) {
		c.APIKey = apiKey
	}
}

// WithHTTPClient 配置选项：使用自定义 HTTP 客户端
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = httpClient
	}
}

// FromEnv 从环境变量构建配置：
// FEATURESTORE_HOST / FEATURESTORE_PORT（默认 443）/ FEATURESTORE_PROJECT / FEATURESTORE_API_KEY。
func FromEnv() (*Config, error) {
	host := os.Getenv(EnvHost)
	if host == "" {
		return nil, fmt.Errorf("client: %s is required", EnvHost)
	}
	project := os.Getenv(EnvProject)
	if project == "" {
		return nil, fmt.Errorf("client: %s is required", EnvProject)
	}

	port := DefaultPort
	if raw := os.Getenv(EnvPort); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("client: invalid %s: %w", EnvPort, err)
		}
		port = parsed
	}

	return &Config{
		Endpoint: fmt.Sprintf("https://%s:%d", host, port),
		Project:  project,
		APIKey:   os.Getenv(EnvAPIKey),
	}, nil
}

// normalizeEndpoint 补全协议前缀并去掉末尾斜杠。
func normalizeEndpoint(endpoint string) string {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	return strings.TrimRight(endpoint, "/")
}
