package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendeelist/config"
	"attendeelist/internal/domain"
)

func setupEnv(t *testing.T, apiURL string) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "API_IDS_FILE", "OUTPUT_FILE", "METRICS_TEXTFILE_DIR", "EMAIL_HASH_KEY",
		"REPORT_EMAIL_TO", "EMAIL_PROVIDER", "LUMA_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("GO_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LUMA_API_KEY", "test-key")
	t.Setenv("LUMA_GUEST_LIST_URL", apiURL)
}

func guestServer(t *testing.T) *httptest.Server {
	t.Helper()
	responses := map[string]string{
		"evt_1": `{"entries": [{"guest": {"email": "a@x.com", "name": "Ama"}}]}`,
		"evt_2": `{"entries": [{"guest": {"email": "a@x.com", "name": "Other"}}, {"guest": {"user_email": "b@y.com"}}]}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-luma-api-key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, ok := responses[r.URL.Query().Get("event_api_id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func readAttendees(t *testing.T, path string) []domain.Attendee {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []domain.Attendee
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestRun_EndToEnd(t *testing.T) {
	srv := guestServer(t)
	setupEnv(t, srv.URL)
	dir := t.TempDir()
	ids := filepath.Join(dir, "ids.txt")
	require.NoError(t, os.WriteFile(ids, []byte("evt_1\n\nevt_404\nevt_2\n"), 0o644))
	output := filepath.Join(dir, "attendees.json")
	t.Setenv("REPORT_EMAIL_TO", "ops@example.com")
	t.Setenv("EMAIL_PROVIDER", "noop")

	require.NoError(t, run(context.Background(), []string{"-ids", ids, "-output", output}))

	got := readAttendees(t, output)
	require.Len(t, got, 2)
	assert.Equal(t, "a....@x.com", got[0].Email)
	require.NotNil(t, got[0].Name)
	assert.Equal(t, "Ama", *got[0].Name)
	assert.Equal(t, "b....@y.com", got[1].Email)
	assert.Nil(t, got[1].Name)
	assert.Empty(t, got[0].EmailHash)
}

func TestRun_EmailHash(t *testing.T) {
	srv := guestServer(t)
	setupEnv(t, srv.URL)
	dir := t.TempDir()
	ids := filepath.Join(dir, "ids.txt")
	require.NoError(t, os.WriteFile(ids, []byte("evt_1\n"), 0o644))
	output := filepath.Join(dir, "attendees.json")
	t.Setenv("EMAIL_HASH_KEY", "k1")

	require.NoError(t, run(context.Background(), []string{"-ids", ids, "-output", output}))

	got := readAttendees(t, output)
	require.Len(t, got, 1)
	assert.Len(t, got[0].EmailHash, 64)
}

func TestRun_FatalErrors(t *testing.T) {
	srv := guestServer(t)

	t.Run("missing api key", func(t *testing.T) {
		setupEnv(t, srv.URL)
		t.Setenv("LUMA_API_KEY", "")
		err := run(context.Background(), nil)
		require.ErrorIs(t, err, config.ErrMissingAPIKey)
	})

	t.Run("missing ids file", func(t *testing.T) {
		setupEnv(t, srv.URL)
		err := run(context.Background(), []string{"-ids", filepath.Join(t.TempDir(), "nope.txt")})
		require.ErrorIs(t, err, domain.ErrInputNotFound)
	})
}
