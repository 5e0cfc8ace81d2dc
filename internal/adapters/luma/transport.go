package luma

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs each outgoing request with method, path, status, and duration.
// It does not log headers, query strings, or bodies, so the API key and event ids stay out of the log line.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// WithRequestLogging wraps client's transport so every call is logged at debug level.
func WithRequestLogging(client *http.Client, logger *slog.Logger) *http.Client {
	next := client.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	c := *client
	c.Transport = &loggingTransport{next: next, logger: logger}
	return &c
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(r)
	duration := time.Since(start)
	if err != nil {
		t.logger.Debug("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}
	t.logger.Debug("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)
	return resp, nil
}
