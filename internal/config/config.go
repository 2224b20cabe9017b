// Package config provides configuration types, defaults and loading for libSBOL.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/nroehner/libSBOL/internal/domain/identity"
	"github.com/nroehner/libSBOL/internal/log"
	"github.com/nroehner/libSBOL/internal/templates"
	"github.com/nroehner/libSBOL/internal/tracing"
)

// File formats understood by the read/write boundary.
const (
	FormatRDFXML = "rdfxml"
	FormatJSON   = "json"
	FormatNQuads = "nquads"
	FormatSQLite = "sqlite"
)

// EnvPrefix namespaces environment overrides, e.g. SBOL_HOMESPACE.
const EnvPrefix = "SBOL"

// Config holds all configuration options for libSBOL.
type Config struct {
	Homespace     string         `mapstructure:"homespace"`
	CompliantURIs bool           `mapstructure:"sbol_compliant_uris"`
	TypedURIs     bool           `mapstructure:"sbol_typed_uris"`
	Exceptions    bool           `mapstructure:"exceptions"` // false downgrades mutator failures to logged warnings
	FileFormat    string         `mapstructure:"file_format"`
	Store         StoreConfig    `mapstructure:"store"`
	Log           LogConfig      `mapstructure:"log"`
	Tracing       tracing.Config `mapstructure:"tracing"`
}

// StoreConfig locates the sqlite triple store.
type StoreConfig struct {
	// Path is the database file. Default: ~/.config/libsbol/store.db
	Path string `mapstructure:"path"`
}

// LogConfig configures the process log.
type LogConfig struct {
	Path  string `mapstructure:"path"` // empty disables file logging
	Debug bool   `mapstructure:"debug"`
}

// Settings returns the URI-minting switches for the identity service.
func (c Config) Settings() identity.Settings {
	return identity.Settings{
		Homespace:     c.Homespace,
		CompliantURIs: c.CompliantURIs,
		TypedURIs:     c.TypedURIs,
	}
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Homespace:     "",
		CompliantURIs: false,
		TypedURIs:     false,
		Exceptions:    true,
		FileFormat:    FormatRDFXML,
		Store:         StoreConfig{Path: DefaultStorePath()},
		Tracing:       tracing.DefaultConfig(),
	}
}

// DefaultConfigDir returns ~/.config/libsbol, or .libsbol when the home directory is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".libsbol"
	}
	return filepath.Join(home, ".config", "libsbol")
}

// DefaultConfigPath returns the user-level config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultStorePath returns the default sqlite store file.
func DefaultStorePath() string {
	return filepath.Join(DefaultConfigDir(), "store.db")
}

// DefaultTracesFilePath returns the default JSONL trace output.
func DefaultTracesFilePath() string {
	return filepath.Join(DefaultConfigDir(), "traces", "traces.jsonl")
}

// NormalizeFileFormat maps a user-supplied format name to a known one. Unknown names fall back
// to rdfxml, the historical default.
func NormalizeFileFormat(format string) string {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case FormatJSON, FormatNQuads, FormatSQLite:
		return f
	default:
		return FormatRDFXML
	}
}

// NewViper returns a viper instance with defaults and environment bindings registered.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("homespace", d.Homespace)
	v.SetDefault("sbol_compliant_uris", d.CompliantURIs)
	v.SetDefault("sbol_typed_uris", d.TypedURIs)
	v.SetDefault("exceptions", d.Exceptions)
	v.SetDefault("file_format", d.FileFormat)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (or the default config location when path is empty) over the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	return LoadWith(NewViper(), path)
}

// LoadWith is Load over a caller-supplied viper instance, so command flags bound to v take part.
func LoadWith(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".libsbol")
		v.AddConfigPath(DefaultConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			log.Debug(log.CatConfig, "no config file found, using defaults")
		case path != "" && errors.Is(err, os.ErrNotExist):
			log.Debug(log.CatConfig, "config file missing, using defaults", "path", path)
		default:
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	} else {
		log.Debug(log.CatConfig, "loaded config", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.FileFormat = NormalizeFileFormat(cfg.FileFormat)
	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == tracing.ExporterFile && cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func Validate(cfg Config) error {
	if cfg.CompliantURIs && cfg.Homespace == "" {
		return fmt.Errorf("sbol_compliant_uris requires a homespace")
	}
	if cfg.TypedURIs && !cfg.CompliantURIs {
		return fmt.Errorf("sbol_typed_uris requires sbol_compliant_uris")
	}
	if cfg.Homespace != "" && !strings.Contains(cfg.Homespace, "://") {
		return fmt.Errorf("homespace %q must be an absolute URI", cfg.Homespace)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
		return nil
	default:
		return fmt.Errorf("tracing.exporter must be one of none, file, stdout, otlp; got %q", t.Exporter)
	}
}

// DefaultConfigTemplate returns the commented YAML written by WriteDefaultConfig.
func DefaultConfigTemplate() string {
	return templates.ConfigTemplate()
}

// WriteDefaultConfig creates a config file with default settings.
func WriteDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	log.Info(log.CatConfig, "wrote default config", "path", configPath)
	return nil
}
