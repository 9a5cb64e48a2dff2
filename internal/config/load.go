package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/zjrosen/pmxbuilder/internal/log"
)

// EnvPrefix prefixes every environment override, e.g. PMX_BUILD_STRICT.
const EnvPrefix = "PMX"

// LocalConfigPath is checked before the user config directory.
const LocalConfigPath = ".pmx/config.yaml"

// NewViper returns a viper instance with every default registered and
// environment overrides enabled.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()

	v.SetDefault("services.registry_url", d.Services.RegistryURL)
	v.SetDefault("services.factory_url", d.Services.FactoryURL)
	v.SetDefault("services.pipewire_url", d.Services.PipewireURL)
	v.SetDefault("services.call_timeout", d.Services.CallTimeout)
	v.SetDefault("build.snapshot_cache", d.Build.SnapshotCache)
	v.SetDefault("build.max_parallel", d.Build.MaxParallel)
	v.SetDefault("build.strict", d.Build.Strict)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("metrics.textfile_path", d.Metrics.TextfilePath)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Locate points v at the config file to read. An explicit path wins; then
// .pmx/config.yaml in the working directory; then
// ~/.config/pmx-builder/config.yaml.
func Locate(v *viper.Viper, explicit string) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		return
	}
	if _, err := os.Stat(LocalConfigPath); err == nil {
		v.SetConfigFile(LocalConfigPath)
		return
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pmx-builder"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// Load reads the located config file, if any, and decodes the result.
// A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "No config file, using defaults")
	} else {
		log.Debug(log.CatConfig, "Config loaded", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Flags == nil {
		cfg.Flags = map[string]bool{}
	}
	for _, p := range []*string{&cfg.Log.File, &cfg.Tracing.FilePath, &cfg.Metrics.TextfilePath, &cfg.Journal.Path} {
		*p = ExpandHome(*p)
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~/ in path with the user's home directory.
// Other paths, and every path when the home directory is unknown, are
// returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
