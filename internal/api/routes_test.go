package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRouter_HealthEndpoint(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 from /health, got %d", w.Code)
	}
	if w.Body.String() != `{"status":"ok"}` {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "memcommerce_router_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	router := NewRouter(RouterConfig{Gatherer: reg})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "memcommerce_router_test_total 1") {
		t.Errorf("expected counter in metrics output, got %q", w.Body.String())
	}
}

func TestNewRouter_MountsMCPHandler(t *testing.T) {
	t.Parallel()

	var hits []string
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.Method)
		w.WriteHeader(http.StatusAccepted)
	})

	router := NewRouter(RouterConfig{MCP: mcp, MCPPath: "/tools"})

	for _, method := range []string{http.MethodPost, http.MethodGet, http.MethodDelete} {
		req := httptest.NewRequest(method, "/tools", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusAccepted {
			t.Errorf("%s /tools: expected 202, got %d", method, w.Code)
		}
	}
	if len(hits) != 3 {
		t.Errorf("expected 3 MCP hits, got %v", hits)
	}

	req := httptest.NewRequest(http.MethodPost, DefaultMCPPath, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on default path when a custom path is set, got %d", w.Code)
	}
}

func TestNewRouter_DefaultMCPPath(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterConfig{MCP: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})})

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 from /mcp, got %d", w.Code)
	}
}

func TestNewRouter_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	router := NewRouter(RouterConfig{MCP: http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})})

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 after panic, got %d", w.Code)
	}
}

type capturedLine struct {
	prefix string
	args   string
}

func captureLogger(lines *[]capturedLine, mu *sync.Mutex) logr.Logger {
	return funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		*lines = append(*lines, capturedLine{prefix: prefix, args: args})
	}, funcr.Options{})
}

func TestNewRouter_AccessLogGoesThroughLogr(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		lines []capturedLine
	)
	router := NewRouter(RouterConfig{Log: captureLogger(&lines, &mu)})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	mu.Lock()
	defer mu.Unlock()
	if len(lines) != 1 {
		t.Fatalf("expected 1 access line, got %d: %+v", len(lines), lines)
	}
	line := lines[0]
	if line.prefix != "access" {
		t.Errorf("expected logger name 'access', got %q", line.prefix)
	}
	for _, want := range []string{`"msg"="request served"`, `"path"="/health"`, `"status"=200`, `"method"="GET"`} {
		if !strings.Contains(line.args, want) {
			t.Errorf("access line %q missing %s", line.args, want)
		}
	}
}

func TestNewRouter_PanicIsLoggedThroughLogr(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		lines []capturedLine
	)
	router := NewRouter(RouterConfig{
		Log: captureLogger(&lines, &mu),
		MCP: http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") }),
	})

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	mu.Lock()
	defer mu.Unlock()
	found := false
	for _, line := range lines {
		if strings.Contains(line.args, `"msg"="request panicked"`) && strings.Contains(line.args, "kaboom") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a logged panic, got %+v", lines)
	}
}
