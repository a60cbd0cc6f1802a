// Package config provides configuration types, defaults, and validation for qkart.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"qkart/internal/log"
)

// DefaultEndpoint is the storefront API base the registration screen talks to.
const DefaultEndpoint = "https://qkart-first.herokuapp.com/api/v1"

// Config holds all configuration options for qkart.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Stub    StubConfig    `mapstructure:"stub"`
	Debug   bool          `mapstructure:"debug"`
}

// APIConfig points at the authentication service.
type APIConfig struct {
	Endpoint string        `mapstructure:"endpoint"` // base URL, "/auth/register" is appended
	Timeout  time.Duration `mapstructure:"timeout"`  // per-request transport timeout
}

// UIConfig holds user interface options.
type UIConfig struct {
	MarkdownStyle string        `mapstructure:"markdown_style"` // "dark" (default) or "light"
	ToastDuration time.Duration `mapstructure:"toast_duration"`
	ShowHelp      bool          `mapstructure:"show_help"` // key help footer
}

// ThemeConfig selects a color preset.
type ThemeConfig struct {
	// Preset is one of "default", "dracula", "high-contrast".
	Preset string `mapstructure:"preset"`
}

// TracingConfig holds OpenTelemetry settings for registration requests.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Exporter is one of "none", "file", "stdout", "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output for the "file" exporter.
	// Default: ~/.config/qkart/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// StubConfig configures the local development auth service.
type StubConfig struct {
	Addr    string        `mapstructure:"addr"`
	UserTTL time.Duration `mapstructure:"user_ttl"` // how long a stub registration is remembered
	// DBPath is the SQLite file for registered users. Empty keeps them in memory.
	DBPath string `mapstructure:"db_path"`
}

// DefaultTracesFilePath returns ~/.config/qkart/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".qkart", "traces", "traces.jsonl")
	}
	return filepath.Join(home, ".config", "qkart", "traces", "traces.jsonl")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  30 * time.Second,
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
			ToastDuration: 3 * time.Second,
			ShowHelp:      true,
		},
		Theme: ThemeConfig{Preset: "default"},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Stub: StubConfig{
			Addr:    "127.0.0.1:8082",
			UserTTL: time.Hour,
		},
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateAPI(c.API); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	return ValidateStub(c.Stub)
}

// ValidateAPI requires an absolute http(s) endpoint.
func ValidateAPI(api APIConfig) error {
	if api.Endpoint == "" {
		return fmt.Errorf("api.endpoint is required")
	}
	u, err := url.Parse(api.Endpoint)
	if err != nil {
		return fmt.Errorf("api.endpoint is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.endpoint must use http or https, got %q", api.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("api.endpoint must include a host, got %q", api.Endpoint)
	}
	if api.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", api.Timeout)
	}
	return nil
}

// ValidateUI checks UI options.
func ValidateUI(ui UIConfig) error {
	switch ui.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", ui.MarkdownStyle)
	}
	if ui.ToastDuration < 0 {
		return fmt.Errorf("ui.toast_duration must not be negative, got %s", ui.ToastDuration)
	}
	return nil
}

// ValidateTracing checks tracing options.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// ValidateStub checks the auth stub options.
func ValidateStub(stub StubConfig) error {
	if stub.Addr == "" {
		return fmt.Errorf("stub.addr is required")
	}
	if stub.UserTTL < 0 {
		return fmt.Errorf("stub.user_ttl must not be negative, got %s", stub.UserTTL)
	}
	return nil
}

// DefaultConfigTemplate is written on first run.
func DefaultConfigTemplate() string {
	return `# QKart Configuration

# Authentication service
api:
  endpoint: ` + DefaultEndpoint + `
  timeout: 30s            # transport timeout for a registration request

# UI settings
ui:
  markdown_style: dark    # help panel style: "dark" (default) or "light"
  toast_duration: 3s      # how long notifications stay on screen
  show_help: true         # key help footer

# Theme: default, dracula, high-contrast
theme:
  preset: default

# Distributed tracing of registration requests
tracing:
  enabled: false
  exporter: file          # none, file, stdout, otlp
  # file_path: ~/.config/qkart/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Local auth stub ("qkart stub")
stub:
  addr: 127.0.0.1:8082
  user_ttl: 1h
  # db_path: .qkart/stub.db   # keep registered users in SQLite across restarts
`
}

// WriteDefaultConfig creates configPath with the default template.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
