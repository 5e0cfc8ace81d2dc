package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GO_ENV", "CONFIG_FILE", "LUMA_API_KEY", "LUMA_GUEST_LIST_URL", "LUMA_TIMEOUT",
		"EVENTS_FILE", "API_IDS_FILE", "OUTPUT_FILE", "TARGET_TAG", "METRICS_TEXTFILE_DIR",
		"EMAIL_HASH_KEY", "REPORT_EMAIL_TO", "EMAIL_PROVIDER", "EMAIL_FROM_ADDRESS",
		"EMAIL_FROM_NAME", "AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY",
		"SES_INSECURE_SKIP_VERIFY",
	} {
		t.Setenv(k, "")
	}
	// Skip .env lookup in the package directory.
	t.Setenv("GO_ENV", "production")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, DefaultGuestListURL, cfg.Luma.GuestListURL)
	assert.Equal(t, 10*time.Second, cfg.Luma.Timeout)
	assert.Equal(t, DefaultEventsFile, cfg.Files.Events)
	assert.Equal(t, DefaultAPIIDsFile, cfg.Files.APIIDs)
	assert.Equal(t, DefaultOutputFile, cfg.Files.Output)
	assert.Equal(t, DefaultTargetTag, cfg.Filter.TargetTag)
	assert.Equal(t, "noop", cfg.Report.Provider)
	assert.ErrorIs(t, cfg.RequireAPIKey(), ErrMissingAPIKey)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "attendeelist.yaml")
	yml := `
luma:
  api_key: from-file
  timeout: 3s
files:
  events: export.json
  output: out/attendees.json
filter:
  target_tag: ALJ-lagos
report:
  to: ops@example.com
  provider: ses
  ses:
    region: eu-west-1
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	t.Setenv("LUMA_API_KEY", "from-env")
	t.Setenv("TARGET_TAG", "ALJ-accra")
	t.Setenv("SES_INSECURE_SKIP_VERIFY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Luma.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Luma.Timeout)
	assert.Equal(t, "export.json", cfg.Files.Events)
	assert.Equal(t, "out/attendees.json", cfg.Files.Output)
	assert.Equal(t, DefaultAPIIDsFile, cfg.Files.APIIDs)
	assert.Equal(t, "ALJ-accra", cfg.Filter.TargetTag)
	assert.Equal(t, "ses", cfg.Report.Provider)
	assert.Equal(t, "eu-west-1", cfg.Report.SES.Region)
	assert.True(t, cfg.Report.SES.InsecureSkipVerify)
	assert.NoError(t, cfg.RequireAPIKey())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing config file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.yaml")
			},
		},
		{
			name: "malformed yaml",
			setup: func(t *testing.T) string {
				p := filepath.Join(t.TempDir(), "bad.yaml")
				require.NoError(t, os.WriteFile(p, []byte("luma: [unclosed"), 0o644))
				return p
			},
		},
		{
			name: "bad timeout",
			setup: func(t *testing.T) string {
				t.Setenv("LUMA_TIMEOUT", "ten seconds")
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := tt.setup(t)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "development", "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.True(t, logger.Enabled(t.Context(), slog.LevelError))
}

func TestNewLogger_ProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "")

	logger.Info("hello", "k", "v")

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}
