package featurekit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rushteam/featurekit/config"
	"github.com/rushteam/featurekit/core"
)

func newTestSDK(t *testing.T) *SDK {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/project/fraud/featureviews/txn_view/version/1/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[
			{"name":"AMOUNT","type":"double","index":0,"label":false},
			{"name":"is_fraud","type":"int","index":1,"label":true}
		]}`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	cfg, err := config.ParseYAML([]byte(`
featurestore:
  endpoint: ` + ts.URL + `
  project: fraud
online_store:
  backend: memory
`))
	if err != nil {
		t.Fatal(err)
	}
	sdk, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { sdk.Close() })
	return sdk
}

func TestSDK_VectorService(t *testing.T) {
	sdk := newTestSDK(t)
	ctx := context.Background()

	service, err := sdk.VectorService(ctx, "txn_view", 1, nil)
	if err != nil {
		t.Fatalf("VectorService() error = %v", err)
	}

	// 内存后端是空的：实体没有在线行
	if _, err := service.GetVector(ctx, "4444"); !core.IsNotFound(err) {
		t.Errorf("GetVector() error = %v, want NOT_FOUND", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg, err := config.ParseYAML([]byte(`
featurestore:
  project: fraud
`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(cfg); err == nil {
		t.Error("New() = nil, want error（缺少 endpoint）")
	}
}

func TestFacadeHelpers(t *testing.T) {
	f, err := NewFeature("Amount", TypeDouble)
	if err != nil {
		t.Fatalf("NewFeature() error = %v", err)
	}
	if f.Name() != "amount" {
		t.Errorf("Name() = %s, want amount", f.Name())
	}
}
