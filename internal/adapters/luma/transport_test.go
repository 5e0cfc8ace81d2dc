package luma

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// capturingHandler records the last log record for assertions.
type capturingHandler struct {
	record slog.Record
}

func (h *capturingHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.record = r.Clone()
	return nil
}

func (h *capturingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *capturingHandler) WithGroup(_ string) slog.Handler { return h }

func TestWithRequestLogging(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"ok status", http.StatusOK},
		{"unauthorized", http.StatusUnauthorized},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			var cap capturingHandler
			client := WithRequestLogging(srv.Client(), slog.New(&cap))

			resp, err := client.Get(srv.URL + "/public/v1/event/get-guests?event_api_id=evt_1")
			require.NoError(t, err)
			resp.Body.Close()

			require.Equal(t, "request", cap.record.Message)
			require.Equal(t, slog.LevelDebug, cap.record.Level)
			attrs := make(map[string]slog.Value)
			cap.record.Attrs(func(a slog.Attr) bool {
				attrs[a.Key] = a.Value
				return true
			})
			require.Equal(t, http.MethodGet, attrs["method"].String())
			require.Equal(t, "/public/v1/event/get-guests", attrs["path"].String())
			require.Equal(t, int64(tt.status), attrs["status"].Int64())
			_, hasDuration := attrs["duration_ms"]
			require.True(t, hasDuration)
		})
	}
}

func TestWithRequestLogging_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	var cap capturingHandler
	client := WithRequestLogging(&http.Client{}, slog.New(&cap))

	_, err := client.Get(url)
	require.Error(t, err)
	require.Equal(t, "request failed", cap.record.Message)
}
