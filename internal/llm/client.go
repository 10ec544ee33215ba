// Package llm is a client for OpenAI-compatible chat-completion endpoints.
//
// A Client is built once at startup from validated configuration and handed to
// whatever needs completions. Each call is a single synchronous, non-streaming
// request: there is no retry and no caching.
package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	DefaultModel   = "mixtral-8x7b-32768"
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize bounds how much of a response body is read.
	MaxResponseSize = 1 << 20

	ResponseFormatJSONObject = "json_object"
)

var (
	ErrNotConfigured = errors.New("llm api key not configured")
	ErrAuthFailed    = errors.New("authentication failed")
	ErrRateLimited   = errors.New("rate limited")
	ErrModelNotFound = errors.New("model not found")
	ErrNoChoices     = errors.New("response contained no choices")
)

// APIError is a non-2xx response that did not map to a sentinel error.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("llm api error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("llm api error (HTTP %d): %s", e.Status, e.Message)
}

// ChatMessage is one role-tagged turn of a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

type ResponseFormat struct {
	Type string `json:"type"`
}

type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Stream         bool            `json:"stream"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Content returns the first choice's message content.
func (r *ChatResponse) Content() (string, error) {
	if r == nil || len(r.Choices) == 0 {
		return "", ErrNoChoices
	}
	return r.Choices[0].Message.Content, nil
}

type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option adjusts a single chat request.
type Option func(*ChatRequest)

// WithJSONObject constrains the reply to a JSON object.
func WithJSONObject() Option {
	return func(req *ChatRequest) {
		req.ResponseFormat = &ResponseFormat{Type: ResponseFormatJSONObject}
	}
}

// Config holds the endpoint, credentials and model for a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient builds a client. Empty fields fall back to the package defaults; an
// empty API key still yields a client whose Chat calls fail with ErrNotConfigured.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Model is the model name sent with every request.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured reports whether an API key was supplied.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// KeyFingerprint identifies the API key in logs without exposing it.
func (c *Client) KeyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	sum := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(sum[:4])
}

// Chat sends one chat-completion request and returns the decoded response.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage, opts ...Option) (*ChatResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	reqBody := ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
	}
	for _, opt := range opts {
		opt(&reqBody)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	requestURL := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger := log.Ctx(ctx)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("model", c.model).
			Dur("duration", time.Since(start)).
			Msg("Chat completion request failed")
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("model", c.model).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("key_fingerprint", c.KeyFingerprint()).
		Msg("Chat completion response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, body)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	return &chatResp, nil
}

func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("chat response exceeded %d bytes", MaxResponseSize)
	}
	return body, nil
}

func errorFromResponse(status int, body []byte) error {
	message := strings.TrimSpace(string(body))
	code := ""

	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
		code = apiErr.Error.Code
	}
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrAuthFailed, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrModelNotFound, message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, message)
	default:
		return &APIError{Status: status, Code: code, Message: message}
	}
}
