package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/revanth0212/commerce-extensibility-mcp/internal/common"
	"github.com/revanth0212/commerce-extensibility-mcp/internal/schema"
)

const whoamiDescriptor = `{
  "name": "aio-whoami",
  "description": "Show the current Adobe I/O context.",
  "inputSchema": {"type": "object"}
}`

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "aio-whoami.json"), []byte(whoamiDescriptor), 0o644); err != nil {
		t.Fatal(err)
	}
	store := schema.NewStore(dir, common.NewSilentLogger())
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	mcpStub := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("mcp"))
	})
	return New(store, mcpStub, common.NewSilentLogger(), nil), dir
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Status string `json:"status"`
		Tools  int    `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" {
		t.Errorf("status field = %q, want ok", body.Status)
	}
	if body.Tools != 1 {
		t.Errorf("tools = %d, want 1", body.Tools)
	}
}

func TestCatalog(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/catalog")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Tools) != 1 || body.Tools[0].Name != "aio-whoami" {
		t.Errorf("unexpected catalog: %+v", body.Tools)
	}
}

func TestReload_PicksUpNewDescriptorAndNotifies(t *testing.T) {
	srv, dir := newTestServer(t)
	notified := false
	srv.onReload = func() { notified = true }
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	extra := `{
	  "name": "aio-login",
	  "description": "Log in to Adobe I/O.",
	  "inputSchema": {"type": "object"}
	}`
	if err := os.WriteFile(filepath.Join(dir, "aio-login.json"), []byte(extra), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Post(ts.URL+"/reload", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body struct {
		Tools int `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Tools != 2 {
		t.Errorf("tools = %d, want 2 after reload", body.Tools)
	}
	if !notified {
		t.Error("onReload callback did not run")
	}
}

func TestMCPEndpointMounted(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/mcp")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 from stub handler", resp.StatusCode)
	}
}

func TestCorrelationHeaderEchoed(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Correlation-ID"); got != "req-123" {
		t.Errorf("X-Correlation-ID = %q, want req-123", got)
	}
}
