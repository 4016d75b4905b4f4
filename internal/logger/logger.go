// Package logger configures the structured logger shared by the binaries.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

const (
	// RequestIDKey is the context key for the request id.
	RequestIDKey contextKey = "request_id"
	// FormIDKey is the context key for the booking form id.
	FormIDKey contextKey = "form_id"
)

// Logger wraps slog.Logger with the event helpers used by the binaries.
type Logger struct {
	*slog.Logger
}

// New creates a logger for env writing to w (stdout when nil). Development
// logs human readable text at debug level; every other env logs JSON at info.
func New(env string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithContext attaches the request and form ids found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	out := l
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		out = out.WithRequestID(id)
	}
	if id, ok := ctx.Value(FormIDKey).(string); ok && id != "" {
		out = out.WithFormID(id)
	}
	return out
}

// WithRequestID returns a logger tagged with a request id.
func (l *Logger) WithRequestID(id string) *Logger {
	return &Logger{Logger: l.With(slog.String("request_id", id))}
}

// WithFormID returns a logger tagged with a form id.
func (l *Logger) WithFormID(id string) *Logger {
	return &Logger{Logger: l.With(slog.String("form_id", id))}
}

// HTTPRequest logs a served request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// HTTPError logs a request that failed.
func (l *Logger) HTTPError(method, path string, status int, err error) {
	l.Warn("http_error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs a rejected lookup.
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
