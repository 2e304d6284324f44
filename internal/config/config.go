package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the validator.
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Report     ReportConfig     `yaml:"report"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ValidationConfig holds pipeline settings and lookup-table extensions.
type ValidationConfig struct {
	CheckMX           bool              `yaml:"check_mx"`
	MXTimeoutSeconds  int               `yaml:"mx_timeout_seconds"`
	NoInvalidExport   bool              `yaml:"no_invalid_export"`
	DisposableDomains []string          `yaml:"disposable_domains"` // added to the built-in set
	DomainTypos       map[string]string `yaml:"domain_typos"`       // merged over the built-in table
}

// MXTimeout returns the configured DNS lookup timeout as a duration.
func (c ValidationConfig) MXTimeout() time.Duration {
	return time.Duration(c.MXTimeoutSeconds) * time.Second
}

// ReportConfig holds report generation settings.
type ReportConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level            string `yaml:"level"`
	DisableRedaction bool   `yaml:"disable_redaction"`
}

// Load reads and parses the configuration file. An empty path yields a
// config with defaults only, so running without a config file works.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	// Set defaults
	if cfg.Validation.MXTimeoutSeconds == 0 {
		cfg.Validation.MXTimeoutSeconds = 5
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "."
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so local runs can keep settings in .env and CI can use real env vars.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if v := os.Getenv("VALIDATOR_CHECK_MX"); v != "" {
		cfg.Validation.CheckMX = parseBoolEnv(v)
	}
	if v := os.Getenv("VALIDATOR_MX_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Validation.MXTimeoutSeconds = n
		}
	}
	if v := os.Getenv("VALIDATOR_NO_INVALID_EXPORT"); v != "" {
		cfg.Validation.NoInvalidExport = parseBoolEnv(v)
	}
	if v := os.Getenv("VALIDATOR_REPORT_DIR"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return cfg, nil
}

func parseBoolEnv(v string) bool {
	switch v {
	case "1", "true", "yes", "y", "t", "on":
		return true
	default:
		return false
	}
}
