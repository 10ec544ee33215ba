package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// CompletionServer is a fake OpenAI-compatible chat-completion endpoint.
type CompletionServer struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests [][]byte
}

// NewCompletionServer starts a fake endpoint that answers every chat request with
// a single choice whose content is content.
func NewCompletionServer(t *testing.T, content string) *CompletionServer {
	t.Helper()

	cs := &CompletionServer{status: http.StatusOK}
	cs.SetContent(content)
	cs.Server = httptest.NewServer(http.HandlerFunc(cs.handle))
	t.Cleanup(cs.Close)
	return cs
}

// SetContent replaces the assistant content returned by subsequent requests.
func (cs *CompletionServer) SetContent(content string) {
	payload, _ := json.Marshal(map[string]any{
		"id":    "chatcmpl-test",
		"model": "test-model",
		"choices": []map[string]any{{
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
	})
	cs.SetResponse(http.StatusOK, string(payload))
}

// SetResponse replaces the raw status and body returned by subsequent requests.
func (cs *CompletionServer) SetResponse(status int, body string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.status = status
	cs.body = body
}

// Requests returns the raw bodies received so far.
func (cs *CompletionServer) Requests() [][]byte {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([][]byte, len(cs.requests))
	copy(out, cs.requests)
	return out
}

func (cs *CompletionServer) RequestCount() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return len(cs.requests)
}

func (cs *CompletionServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	cs.mu.Lock()
	cs.requests = append(cs.requests, body)
	status := cs.status
	respBody := cs.body
	cs.mu.Unlock()

	if r.URL.Path != "/chat/completions" {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("Authorization") == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"code":"invalid_api_key","message":"missing key"}}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, respBody)
}
