// Package backend is the MemCommerce HTTP transport: one request per call, every
// failure normalized into *APIError.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/matiasleandrokruk/memcommerce-mcp/internal/infra/metrics"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
)

// ErrInvalidJSON is the cause attached when a 2xx body is not valid JSON.
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// Method is an HTTP method supported by the executor.
type Method string

const (
	MethodGet  Method = http.MethodGet
	MethodPost Method = http.MethodPost
)

// Request describes a single backend call.
type Request struct {
	Method  Method
	URL     string
	Headers map[string]string
	// Body is JSON-encoded when non-nil.
	Body any
}

// Client executes backend requests. Safe for concurrent use; connections are pooled
// by the underlying transport.
type Client struct {
	httpClient *http.Client
	log        logr.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a Client. A zero timeout means requests wait as long as ctx allows.
// m may be nil.
func NewClient(timeout time.Duration, log logr.Logger, m *metrics.Metrics) *Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(base),
		},
		log:     log.WithName("backend"),
		metrics: m,
	}
}

// Execute performs exactly one request and returns the JSON response body.
// Any failure is returned as *APIError. An unsupported method panics before any
// network activity since it can only come from a programming error.
func (c *Client) Execute(ctx context.Context, req Request) (json.RawMessage, error) {
	if req.Method != MethodGet && req.Method != MethodPost {
		panic(fmt.Sprintf("backend: unsupported method: %q", req.Method))
	}

	start := time.Now()
	body, err := c.do(ctx, req)
	elapsed := time.Since(start)

	c.metrics.RecordBackendRequest(string(req.Method), err != nil, elapsed.Seconds())
	if err != nil {
		c.log.V(1).Info("backend request failed", "method", req.Method, "url", req.URL, "error", err.Error(), "duration", elapsed)
		return nil, err
	}
	c.log.V(1).Info("backend request", "method", req.Method, "url", req.URL, "duration", elapsed)
	return body, nil
}

func (c *Client) do(ctx context.Context, req Request) (json.RawMessage, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, unexpectedError(req.URL, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, networkError(req.URL, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(req.URL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(req.URL, resp.StatusCode, string(raw))
	}
	if !json.Valid(raw) {
		return nil, unexpectedError(req.URL, ErrInvalidJSON)
	}
	return json.RawMessage(raw), nil
}

func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.URL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set(headerAccept, mimeJSON)
	if reader != nil {
		httpReq.Header.Set(headerContentType, mimeJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	return httpReq, nil
}
