package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGuestListURL = "https://public-api.lu.ma/public/v1/event/get-guests"
	DefaultTimeout      = 10 * time.Second
	DefaultEventsFile   = "all-events.json"
	DefaultTargetTag    = "ALJ-accra"
	DefaultAPIIDsFile   = "all-events-api-ids.txt"
	DefaultOutputFile   = "accra-alj-unique-attendees.json"
)

// ErrMissingAPIKey is returned by RequireAPIKey when no Luma key is configured.
var ErrMissingAPIKey = errors.New("LUMA_API_KEY is not set")

// Config holds all configuration for the two pipelines.
type Config struct {
	Environment string `yaml:"environment"`

	Luma    LumaConfig    `yaml:"luma"`
	Files   FilesConfig   `yaml:"files"`
	Filter  FilterConfig  `yaml:"filter"`
	Metrics MetricsConfig `yaml:"metrics"`
	Report  ReportConfig  `yaml:"report"`

	// EmailHashKey enables the keyed email fingerprint on written attendees.
	EmailHashKey string `yaml:"email_hash_key"`
}

// LumaConfig controls the guest-list API client.
type LumaConfig struct {
	APIKey       string        `yaml:"api_key"`
	GuestListURL string        `yaml:"guest_list_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

// FilesConfig holds the flat-file locations used by both pipelines.
type FilesConfig struct {
	Events string `yaml:"events"`
	APIIDs string `yaml:"api_ids"`
	Output string `yaml:"output"`
}

// FilterConfig controls the tag filter.
type FilterConfig struct {
	TargetTag string `yaml:"target_tag"`
}

// MetricsConfig controls the node_exporter textfile output. Each pipeline writes
// attendeelist_<pipeline>.prom inside TextfileDir; empty disables it.
type MetricsConfig struct {
	TextfileDir string `yaml:"textfile_dir"`
}

// ReportConfig controls the optional attendee report email.
type ReportConfig struct {
	To          string    `yaml:"to"`
	Provider    string    `yaml:"provider"`
	FromAddress string    `yaml:"from_address"`
	FromName    string    `yaml:"from_name"`
	SES         SESConfig `yaml:"ses"`
}

// SESConfig holds AWS SES credentials for the report mailer.
type SESConfig struct {
	Region             string `yaml:"region"`
	AccessKeyID        string `yaml:"access_key_id"`
	SecretAccessKey    string `yaml:"secret_access_key"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
}

// Load loads configuration from an optional YAML file and environment variables.
// It attempts to load a .env file if not in production. Environment variables
// override values from the YAML file; path may be empty, in which case
// CONFIG_FILE is consulted.
func Load(path string) (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment variables.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{}
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Environment = env
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Luma.APIKey, "LUMA_API_KEY")
	setString(&cfg.Luma.GuestListURL, "LUMA_GUEST_LIST_URL")
	if s := os.Getenv("LUMA_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse LUMA_TIMEOUT: %w", err)
		}
		cfg.Luma.Timeout = d
	}

	setString(&cfg.Files.Events, "EVENTS_FILE")
	setString(&cfg.Files.APIIDs, "API_IDS_FILE")
	setString(&cfg.Files.Output, "OUTPUT_FILE")
	setString(&cfg.Filter.TargetTag, "TARGET_TAG")
	setString(&cfg.Metrics.TextfileDir, "METRICS_TEXTFILE_DIR")
	setString(&cfg.EmailHashKey, "EMAIL_HASH_KEY")

	setString(&cfg.Report.To, "REPORT_EMAIL_TO")
	setString(&cfg.Report.Provider, "EMAIL_PROVIDER")
	setString(&cfg.Report.FromAddress, "EMAIL_FROM_ADDRESS")
	setString(&cfg.Report.FromName, "EMAIL_FROM_NAME")
	setString(&cfg.Report.SES.Region, "AWS_REGION")
	setString(&cfg.Report.SES.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&cfg.Report.SES.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	if s := os.Getenv("SES_INSECURE_SKIP_VERIFY"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("parse SES_INSECURE_SKIP_VERIFY: %w", err)
		}
		cfg.Report.SES.InsecureSkipVerify = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Luma.GuestListURL == "" {
		cfg.Luma.GuestListURL = DefaultGuestListURL
	}
	if cfg.Luma.Timeout <= 0 {
		cfg.Luma.Timeout = DefaultTimeout
	}
	if cfg.Files.Events == "" {
		cfg.Files.Events = DefaultEventsFile
	}
	if cfg.Files.APIIDs == "" {
		cfg.Files.APIIDs = DefaultAPIIDsFile
	}
	if cfg.Files.Output == "" {
		cfg.Files.Output = DefaultOutputFile
	}
	if cfg.Filter.TargetTag == "" {
		cfg.Filter.TargetTag = DefaultTargetTag
	}
	if cfg.Report.Provider == "" {
		cfg.Report.Provider = "noop"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// RequireAPIKey is a presence check; the key itself is never validated locally.
func (c *Config) RequireAPIKey() error {
	if c.Luma.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
