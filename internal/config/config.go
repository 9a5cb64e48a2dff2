// Package config provides configuration types and defaults for pmx-builder.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/pmxbuilder/internal/log"
	"github.com/zjrosen/pmxbuilder/internal/pmx/rpc"
)

// Config holds all configuration options for pmx-builder.
type Config struct {
	Services ServicesConfig  `mapstructure:"services" yaml:"services"`
	Build    BuildConfig     `mapstructure:"build" yaml:"build"`
	Log      LogConfig       `mapstructure:"log" yaml:"log"`
	Tracing  TracingConfig   `mapstructure:"tracing" yaml:"tracing"`
	Metrics  MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	Journal  JournalConfig   `mapstructure:"journal" yaml:"journal"`
	Flags    map[string]bool `mapstructure:"flags" yaml:"flags"`
}

// ServicesConfig locates the three pmx services.
type ServicesConfig struct {
	RegistryURL string        `mapstructure:"registry_url" yaml:"registry_url"`
	FactoryURL  string        `mapstructure:"factory_url" yaml:"factory_url"`
	PipewireURL string        `mapstructure:"pipewire_url" yaml:"pipewire_url"`
	CallTimeout time.Duration `mapstructure:"call_timeout" yaml:"call_timeout"` // per unary call
}

// BuildConfig tunes the build pipeline.
type BuildConfig struct {
	// SnapshotCache serves repeated plugin/port/node listings from memory
	// until a provisioning stage invalidates them.
	SnapshotCache bool `mapstructure:"snapshot_cache" yaml:"snapshot_cache"`

	// MaxParallel bounds concurrent link calls when the concurrent-wiring
	// flag is on.
	MaxParallel int `mapstructure:"max_parallel" yaml:"max_parallel"`

	// Strict fails the run when any link call failed.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// LogConfig holds logging options.
type LogConfig struct {
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	File  string `mapstructure:"file" yaml:"file"` // empty logs to stderr
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.pmx-builder/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// MetricsConfig holds Prometheus export options.
type MetricsConfig struct {
	// TextfilePath is where run metrics are written after every build, for
	// node_exporter's textfile collector. Empty disables the export.
	TextfilePath string `mapstructure:"textfile_path" yaml:"textfile_path"`
}

// JournalConfig holds the run journal options.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Default service addresses of a local pmx installation.
const (
	DefaultRegistryURL = "http://127.0.0.1:50001"
	DefaultFactoryURL  = "http://127.0.0.1:50002"
	DefaultPipewireURL = "http://127.0.0.1:50003"
)

// DefaultBaseDir returns ~/.pmx-builder or "" when the home directory is
// unavailable.
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pmx-builder")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	base := DefaultBaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "traces", "traces.jsonl")
}

// DefaultJournalPath returns the default journal database path.
func DefaultJournalPath() string {
	base := DefaultBaseDir()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "journal.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Services: ServicesConfig{
			RegistryURL: DefaultRegistryURL,
			FactoryURL:  DefaultFactoryURL,
			PipewireURL: DefaultPipewireURL,
			CallTimeout: 10 * time.Second,
		},
		Build: BuildConfig{
			SnapshotCache: true,
			MaxParallel:   4,
			Strict:        false,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    DefaultJournalPath(),
		},
		Flags: map[string]bool{},
	}
}

// Validate checks every section and returns the first error found.
func (c Config) Validate() error {
	if err := ValidateServices(c.Services); err != nil {
		return err
	}
	if err := ValidateBuild(c.Build); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	return ValidateJournal(c.Journal)
}

// ValidateServices checks that every service URL forms a dial target.
func ValidateServices(s ServicesConfig) error {
	for _, svc := range []struct{ key, url string }{
		{"services.registry_url", s.RegistryURL},
		{"services.factory_url", s.FactoryURL},
		{"services.pipewire_url", s.PipewireURL},
	} {
		if _, err := rpc.Target(svc.url); err != nil {
			return fmt.Errorf("%s: %w", svc.key, err)
		}
	}
	if s.CallTimeout < 0 {
		return fmt.Errorf("services.call_timeout must not be negative, got %s", s.CallTimeout)
	}
	return nil
}

// ValidateBuild checks build options.
func ValidateBuild(b BuildConfig) error {
	if b.MaxParallel < 0 {
		return fmt.Errorf("build.max_parallel must not be negative, got %d", b.MaxParallel)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Path requirements only apply when tracing is on.
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

// ValidateJournal checks journal options.
func ValidateJournal(j JournalConfig) error {
	if j.Enabled && j.Path == "" {
		return fmt.Errorf("journal.path is required when the journal is enabled")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# pmx-builder configuration
#
# Every key can be overridden from the environment with the PMX_ prefix,
# e.g. PMX_SERVICES_REGISTRY_URL=http://10.0.0.5:50001

# Service endpoints. http:// and https:// URLs are reduced to host:port.
services:
  registry_url: ` + DefaultRegistryURL + `
  factory_url: ` + DefaultFactoryURL + `
  pipewire_url: ` + DefaultPipewireURL + `
  call_timeout: 10s          # Timeout for each RPC

build:
  snapshot_cache: true       # Reuse plugin/port/node listings between stages
  max_parallel: 4            # Parallel link calls (with the concurrent-wiring flag)
  strict: false              # Exit non-zero when any link call fails

log:
  debug: false
  # file: /var/log/pmx-builder.log

# Distributed tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.pmx-builder/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)

# Prometheus textfile export for node_exporter
# metrics:
#   textfile_path: /var/lib/node_exporter/textfile/pmx_builder.prom

# Run journal (SQLite)
# journal:
#   enabled: true
#   path: ~/.pmx-builder/journal.db

# Feature flags
# flags:
#   concurrent-wiring: true  # Create links for independent inputs in parallel
#   journal-links: true      # Store every link record in the journal
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
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
