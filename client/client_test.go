package client

import (
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvHost, "fs.example.com")
	t.Setenv(EnvProject, "fraud")
	t.Setenv(EnvAPIKey, "secret")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Endpoint != "https://fs.example.com:443" {
		t.Errorf("Endpoint = %s", cfg.Endpoint)
	}
	if cfg.Project != "fraud" {
		t.Errorf("Project = %s", cfg.Project)
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey = %s", cfg.APIKey)
	}
}

func TestFromEnv_CustomPort(t *testing.T) {
	t.Setenv(EnvHost, "fs.example.com")
	t.Setenv(EnvPort, "8443")
	t.Setenv(EnvProject, "fraud")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.Endpoint != "https://fs.example.com:8443" {
		t.Errorf("Endpoint = %s", cfg.Endpoint)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		t.Setenv(EnvHost, "")
		t.Setenv(EnvProject, "fraud")
		if _, err := FromEnv(); err == nil {
			t.Error("FromEnv() = nil, want error")
		}
	})
	t.Run("missing project", func(t *testing.T) {
		t.Setenv(EnvHost, "fs.example.com")
		t.Setenv(EnvProject, "")
		if _, err := FromEnv(); err == nil {
			t.Error("FromEnv() = nil, want error")
		}
	})
	t.Run("bad port", func(t *testing.T) {
		t.Setenv(EnvHost, "fs.example.com")
		t.Setenv(EnvProject, "fraud")
		t.Setenv(EnvPort, "not-a-port")
		if _, err := FromEnv(); err == nil {
			t.Error("FromEnv() = nil, want error")
		}
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fs.example.com", "https://fs.example.com"},
		{"http://fs.example.com/", "http://fs.example.com"},
		{"https://fs.example.com:443/", "https://fs.example.com:443"},
	}
	for _, tt := range tests {
		if got := normalizeEndpoint(tt.in); got != tt.want {
			t.Errorf("normalizeEndpoint(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestOptions(t *testing.T) {
	cfg := &Config{}
	WithTimeout(3 * time.Second)(cfg)
	WithAPIKey("k")(cfg)
	if cfg.Timeout != 3*time.Second || cfg.APIKey != "k" {
		t.Errorf("cfg = %+v", cfg)
	}
}
