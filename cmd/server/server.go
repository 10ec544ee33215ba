// cmd/server/server.go
package main

import (
	"net/http"
	"time"

	"github.com/codr1/themegradient/internal/api"
	"github.com/codr1/themegradient/internal/api/gradient"
	"github.com/codr1/themegradient/internal/config"
)

const defaultWriteTimeout = 15 * time.Second

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(cfg.LLM.Timeout),
		IdleTimeout:  60 * time.Second,
	}
}

// writeTimeout leaves room for a full model call before the response is cut off.
func writeTimeout(llmTimeout time.Duration) time.Duration {
	if candidate := llmTimeout + 5*time.Second; candidate > defaultWriteTimeout {
		return candidate
	}
	return defaultWriteTimeout
}

func registerRoutes(mux *http.ServeMux) {
	// Main page handler
	mux.HandleFunc("/", gradient.HandlePage)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Gradient routes
	mux.HandleFunc("/api/v1/gradient", gradient.HandleGradient)
}
