// memcommerce-mcp serves the MemCommerce customer tools over MCP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/matiasleandrokruk/memcommerce-mcp/internal/api"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/domain/commerce"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/domain/tool"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/infra/backend"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/infra/config"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/infra/logging"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/infra/metrics"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/mcpserver"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/server"
	"github.com/matiasleandrokruk/memcommerce-mcp/internal/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("memcommerce-mcp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	transport := fs.String("transport", "", "MCP transport: http or stdio")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	if *transport != "" {
		cfg.Transport = *transport
	}
	if cfg.Transport != config.TransportHTTP && cfg.Transport != config.TransportStdio {
		fmt.Fprintf(out, "unknown transport %q (want %q or %q)\n", cfg.Transport, config.TransportHTTP, config.TransportStdio) //nolint:errcheck
		return 2
	}

	log, sync, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(out, "init logger: %v\n", err) //nolint:errcheck
		return 1
	}
	defer sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, log); err != nil {
		log.Error(err, "server stopped")
		return 1
	}
	return 0
}

// newMCPServer wires backend client, service, registry and MCP binding.
func newMCPServer(cfg config.Config, log logr.Logger, reg prometheus.Registerer) (*mcpserver.Server, error) {
	m := metrics.New(reg)
	client := backend.NewClient(cfg.APITimeout, log, m)
	svc := commerce.NewService(client, cfg.APIURL)

	registry := tool.NewToolRegistry()
	if err := tool.RegisterBuiltInExecutors(registry, tool.BuiltinServices{Commerce: svc}); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}
	return mcpserver.New(registry, log, m), nil
}

func serve(ctx context.Context, cfg config.Config, log logr.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := newMCPServer(cfg, log, reg)
	if err != nil {
		return err
	}
	log.Info("MemCommerce MCP server configured", "api_url", cfg.APIURL, "transport", cfg.Transport)

	if cfg.Transport == config.TransportStdio {
		if err := srv.RunStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	httpCfg := server.DefaultConfig()
	httpCfg.Host = cfg.Host
	httpCfg.Port = cfg.Port
	httpSrv := server.NewServer(api.NewRouter(api.RouterConfig{
		MCP:      srv.HTTPHandler(),
		MCPPath:  cfg.MCPPath,
		Gatherer: reg,
		Log:      log,
	}), httpCfg, log)

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func printHelp(out io.Writer) {
	helpText := `MemCommerce Customer MCP server

Usage:
  memcommerce-mcp [options]

Options:
  --version              Show version information
  --help                 Show this help message
  --transport http|stdio Override MCP_TRANSPORT (default: http)

Environment:
  API_URL        MemCommerce API base URL (default: http://localhost:8001)
  API_TIMEOUT    Per-request timeout, e.g. 30s; 0 disables (default: 30s)
  MCP_TRANSPORT  http or stdio (default: http)
  MCP_HOST       HTTP listen host (default: 0.0.0.0)
  MCP_PORT       HTTP listen port (default: 8000)
  MCP_PATH       MCP endpoint path (default: /mcp)
  LOG_LEVEL      debug or trace for verbose logs

Examples:
  memcommerce-mcp
  memcommerce-mcp --transport stdio
  API_URL=https://api.example.com memcommerce-mcp`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
