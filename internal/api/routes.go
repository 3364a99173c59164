// Package api wires the HTTP surface: health, metrics and the MCP endpoint.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMCPPath is where the MCP endpoint is mounted when RouterConfig.MCPPath is empty.
const DefaultMCPPath = "/mcp"

// RouterConfig holds what the router serves.
type RouterConfig struct {
	// MCP is the streamable MCP handler; nil leaves the MCP path unrouted.
	MCP     http.Handler
	MCPPath string
	// Gatherer backs /metrics; nil uses the default Prometheus registry.
	Gatherer prometheus.Gatherer
	// Log receives access lines and recovered panics.
	Log logr.Logger
}

// NewRouter creates and configures a new chi router with all routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(accessLogFormatter{log: cfg.Log.WithName("access")}))
	r.Use(middleware.Recoverer)

	// Health check, used by load balancers and probes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if cfg.MCP != nil {
		path := cfg.MCPPath
		if path == "" {
			path = DefaultMCPPath
		}
		// The streamable transport uses GET, POST and DELETE on the same path.
		r.Handle(path, cfg.MCP)
	}

	return r
}
