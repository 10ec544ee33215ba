package htmx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/gradient", nil)
	if IsRequest(req) {
		t.Fatalf("plain request reported as htmx")
	}

	req.Header.Set("HX-Request", "TRUE")
	req.Header.Set("HX-Target", "gradient-output")
	if !IsRequest(req) {
		t.Fatalf("htmx request not detected")
	}
	if got := Target(req); got != "gradient-output" {
		t.Fatalf("target: %q", got)
	}
}
