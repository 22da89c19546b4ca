// Package config 实现 SDK 的配置加载与组件装配（支持 YAML/JSON）。
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/featurekit/client"
	"github.com/rushteam/featurekit/core"
	"github.com/rushteam/featurekit/feast"
	"github.com/rushteam/featurekit/serving"
	"github.com/rushteam/featurekit/store"
)

// 在线存储后端类型。
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendFeast  = "feast"
)

// Config 是 SDK 的顶层配置结构。
type Config struct {
	// FeatureStore 元数据服务连接配置
	FeatureStore FeatureStoreConfig `yaml:"featurestore" json:"featurestore"`

	// OnlineStore 在线存储配置
	OnlineStore OnlineStoreConfig `yaml:"online_store" json:"online_store"`

	// Serving 在线服务配置
	Serving ServingConfig `yaml:"serving" json:"serving"`
}

// FeatureStoreConfig 是元数据服务连接配置。
type FeatureStoreConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint"`
	Project  string        `yaml:"project" json:"project"`
	APIKey   string        `yaml:"api_key" json:"api_key"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`
}

// OnlineStoreConfig 是在线存储配置。
// Backend 为 memory / redis / feast，对应的子配置只在该后端下生效。
type OnlineStoreConfig struct {
	Backend string       `yaml:"backend" json:"backend"`
	Redis   RedisConfig  `yaml:"redis" json:"redis"`
	Feast   feast.Config `yaml:"feast" json:"feast"`
}

// RedisConfig 是 Redis 后端配置。
type RedisConfig struct {
	Addr string `yaml:"addr" json:"addr"`
	DB   int    `yaml:"db" json:"db"`
}

// ServingConfig 是在线服务配置。
type ServingConfig struct {
	// SchemaCacheTTL Schema 缓存有效期，默认 5 分钟
	SchemaCacheTTL time.Duration `yaml:"schema_cache_ttl" json:"schema_cache_ttl"`

	// BatchConcurrency 批量装配的并发上限，默认 8
	BatchConcurrency int `yaml:"batch_concurrency" json:"batch_concurrency"`
}

// LoadFromYAML 从 YAML 文件加载配置。
func LoadFromYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML 解析 YAML 配置内容。
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromJSON 从 JSON 文件加载配置。
func LoadFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OnlineStore.Backend == "" {
		c.OnlineStore.Backend = BackendMemory
	}
	if c.Serving.SchemaCacheTTL <= 0 {
		c.Serving.SchemaCacheTTL = 5 * time.Minute
	}
	if c.Serving.BatchConcurrency <= 0 {
		c.Serving.BatchConcurrency = 8
	}
}

// Validate 检查配置的完整性。
func (c *Config) Validate() error {
	if c.FeatureStore.Endpoint == "" {
		return fmt.Errorf("config: featurestore.endpoint is required")
	}
	if c.FeatureStore.Project == "" {
		return fmt.Errorf("config: featurestore.project is required")
	}
	switch c.OnlineStore.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.OnlineStore.Redis.Addr == "" {
			return fmt.Errorf("config: online_store.redis.addr is required")
		}
	case BackendFeast:
		if c.OnlineStore.Feast.Host == "" {
			return fmt.Errorf("config: online_store.feast.host is required")
		}
	default:
		return fmt.Errorf("config: unknown online store backend: %s", c.OnlineStore.Backend)
	}
	return nil
}

// BuildMetadataService 按配置构建元数据服务客户端。
func (c *Config) BuildMetadataService() (core.MetadataService, error) {
	var opts []client.Option
	if c.FeatureStore.APIKey != "" {
		opts = append(opts, client.WithAPIKey(c.FeatureStore.APIKey))
	}
	if c.FeatureStore.Timeout > 0 {
		opts = append(opts, client.WithTimeout(c.FeatureStore.Timeout))
	}
	return client.NewHTTPClient(c.FeatureStore.Endpoint, c.FeatureStore.Project, opts...)
}

// BuildRowReader 按配置构建在线行读取器。
func (c *Config) BuildRowReader() (serving.RowReader, error) {
	switch c.OnlineStore.Backend {
	case BackendMemory:
		return serving.NewStoreRowReader(store.NewMemoryStore()), nil
	case BackendRedis:
		rs, err := store.NewRedisStore(c.OnlineStore.Redis.Addr, c.OnlineStore.Redis.DB)
		if err != nil {
			return nil, err
		}
		return serving.NewStoreRowReader(rs), nil
	case BackendFeast:
		return feast.NewClient(&c.OnlineStore.Feast)
	default:
		return nil, fmt.Errorf("config: unknown online store backend: %s", c.OnlineStore.Backend)
	}
}
