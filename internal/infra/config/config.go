// Package config provides application-wide configuration loaded from env vars.
// All fields have safe defaults so the binary runs locally without any env setup.
// A .env file, when present, is loaded by the entry point before Load is called.
package config

import (
	"os"
	"strconv"
	"time"
)

// Transport names accepted by MCP_TRANSPORT.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config holds runtime configuration for the MemCommerce MCP server.
type Config struct {
	// Backend
	APIURL     string        // API_URL, default: "http://localhost:8001"
	APITimeout time.Duration // API_TIMEOUT, default: 30s, "0" disables the timeout

	// MCP surface
	Transport string // MCP_TRANSPORT: "http" (streamable HTTP) or "stdio"
	Host      string // MCP_HOST, default: "0.0.0.0"
	Port      int    // MCP_PORT, default: 8000
	MCPPath   string // MCP_PATH, default: "/mcp"

	LogLevel string // LOG_LEVEL: "debug"/"trace" enable verbose output
}

const (
	envKeyAPIURL     = "API_URL"
	envKeyAPITimeout = "API_TIMEOUT"
	envKeyTransport  = "MCP_TRANSPORT"
	envKeyHost       = "MCP_HOST"
	envKeyPort       = "MCP_PORT"
	envKeyMCPPath    = "MCP_PATH"
	envKeyLogLevel   = "LOG_LEVEL"

	defaultAPIURL     = "http://localhost:8001"
	defaultAPITimeout = 30 * time.Second
	defaultPort       = 8000
)

// Load reads configuration from environment variables, applying defaults for missing values.
// Unparseable numeric or duration values fall back to their defaults.
func Load() Config {
	return Config{
		APIURL:     envOr(envKeyAPIURL, defaultAPIURL),
		APITimeout: parseDuration(os.Getenv(envKeyAPITimeout), defaultAPITimeout),
		Transport:  envOr(envKeyTransport, TransportHTTP),
		Host:       envOr(envKeyHost, "0.0.0.0"),
		Port:       parsePort(os.Getenv(envKeyPort), defaultPort),
		MCPPath:    envOr(envKeyMCPPath, "/mcp"),
		LogLevel:   os.Getenv(envKeyLogLevel),
	}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseDuration accepts Go duration syntax ("45s") or a bare number of seconds ("45").
func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func parsePort(raw string, fallback int) int {
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return fallback
	}
	return port
}
