package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/themegradient/internal/api/gradient"
	"github.com/codr1/themegradient/internal/config"
	"github.com/codr1/themegradient/internal/generator"
	"github.com/codr1/themegradient/internal/llm"
	"github.com/codr1/themegradient/internal/testutil"
)

func newTestServer(t *testing.T) (*httptest.Server, *testutil.CompletionServer) {
	t.Helper()

	completions := testutil.NewCompletionServer(t, `{"color_1":"16CE00","color_2":"0B6623","emoji":"🌿"}`)
	client := llm.NewClient(llm.Config{
		BaseURL: completions.URL,
		APIKey:  "gsk-test",
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
	gradient.InitHandlers(generator.New(client), "Theme Gradient", 300*time.Millisecond)

	cfg := config.Default()
	srv := newServer(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts, completions
}

func TestNewServerTimeouts(t *testing.T) {
	cfg := config.Default()
	srv := newServer(cfg)

	if srv.Addr != ":8080" {
		t.Fatalf("addr: %s", srv.Addr)
	}
	if srv.WriteTimeout <= cfg.LLM.Timeout {
		t.Fatalf("write timeout %s does not cover llm timeout %s", srv.WriteTimeout, cfg.LLM.Timeout)
	}
	if got := writeTimeout(time.Second); got != defaultWriteTimeout {
		t.Fatalf("short llm timeout: %s", got)
	}
}

func TestRoutes(t *testing.T) {
	ts, completions := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Fatalf("health: %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("page request: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `hx-post="/api/v1/gradient"`) {
		t.Fatalf("page: %d %s", resp.StatusCode, body)
	}

	form := url.Values{"theme": {"forest"}}
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/gradient", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("gradient request: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("gradient: %d %s", resp.StatusCode, body)
	}
	// 16CE00 sits exactly on the luminance threshold and counts as light.
	if !strings.Contains(string(body), "color: #000000;") {
		t.Fatalf("expected black text, got %s", body)
	}
	if completions.RequestCount() != 1 {
		t.Fatalf("api calls: %d", completions.RequestCount())
	}

	resp, err = http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatalf("missing request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing: %d", resp.StatusCode)
	}
}
