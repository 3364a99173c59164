// Package mcpserver exposes the tool registry over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/memcommerce-mcp/internal/domain/tool"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/infra/metrics"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/version"
	"github.com/matiasleandrokruk/memcommerce-mcp/pkg/auth"
)

// Name is the implementation name announced during MCP initialization.
const Name = "MemCommerce Customer MCP server"

// Server binds a ToolRegistry to an mcp.Server.
type Server struct {
	mcp      *mcp.Server
	registry *tool.ToolRegistry
	log      logr.Logger
	metrics  *metrics.Metrics
}

// New registers every tool in registry on a fresh mcp.Server. m may be nil.
func New(registry *tool.ToolRegistry, log logr.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		mcp:      mcp.NewServer(&mcp.Implementation{Name: Name, Version: version.Version}, nil),
		registry: registry,
		log:      log.WithName("mcp"),
		metrics:  m,
	}

	for _, def := range registry.Definitions() {
		t := &mcp.Tool{
			Name:        def.Name,
			Title:       def.Title,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
		if def.ReadOnly {
			t.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: true}
		}
		s.mcp.AddTool(t, s.handle(def.Name))
	}
	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// RunStdio serves a single session over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns the streamable HTTP handler for this server.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

func (s *Server) handle(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		args := req.Params.Arguments

		log := s.log.WithValues("tool", name, "call_id", newCallID())
		if sub := auth.Subject(userToken(args)); sub != "" {
			log = log.WithValues("subject", sub)
		}
		log.V(1).Info("tool call started")

		res := s.registry.Call(logr.NewContext(ctx, log), name, args)
		elapsed := time.Since(start)
		s.metrics.RecordToolCall(name, res.IsError(), elapsed.Seconds())

		if res.IsError() {
			log.Info("tool call failed", "error", res.Message(), "duration", elapsed)
		} else {
			log.V(1).Info("tool call completed", "duration", elapsed)
		}
		return render(res), nil
	}
}

// render converts a tool result into the protocol shape. Structured content must be a
// JSON object, so array payloads are wrapped under "result".
func render(res tool.Result) *mcp.CallToolResult {
	if res.IsError() {
		return errorResult(res.Message())
	}

	data, err := json.Marshal(res.Payload())
	if err != nil {
		return errorResult(tool.APIErrorPrefix + err.Error())
	}

	var structured any = json.RawMessage(data)
	if len(data) == 0 || data[0] != '{' {
		structured = map[string]json.RawMessage{"result": data}
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: structured,
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

func newCallID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// userToken pulls user_jwt out of raw arguments for log context only.
func userToken(args json.RawMessage) string {
	if len(args) == 0 {
		return ""
	}
	var in struct {
		UserJWT string `json:"user_jwt"`
	}
	if err := json.Unmarshal(args, &in); err != nil {
		return ""
	}
	return in.UserJWT
}
