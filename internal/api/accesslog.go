package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
)

// accessLogFormatter sends chi request logs through logr instead of the standard log package.
type accessLogFormatter struct {
	log logr.Logger
}

func (f accessLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return accessLogEntry{log: f.log.WithValues(
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
	)}
}

type accessLogEntry struct {
	log logr.Logger
}

func (e accessLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.log.Info("request served", "status", status, "bytes", bytes, "duration", elapsed)
}

func (e accessLogEntry) Panic(v interface{}, stack []byte) {
	e.log.Error(fmt.Errorf("panic: %v", v), "request panicked", "stack", string(stack))
}
