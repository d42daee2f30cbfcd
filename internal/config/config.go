// Package config loads contactus configuration from defaults, an optional
// YAML file, CONTACTUS_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/contactus/internal/ui/styles"
)

// EnvPrefix is the prefix for environment overrides, e.g. CONTACTUS_API_ENDPOINT.
const EnvPrefix = "CONTACTUS"

// Default values.
const (
	DefaultEndpoint       = "http://localhost:8911/graphql"
	DefaultToastDuration  = 6 * time.Second
	DefaultLogPath        = "contactus-debug.log"
	DefaultLogBufferSize  = 500
	DefaultTracingFile    = "contactus-traces.json"
	DefaultOTLPEndpoint   = "localhost:4317"
	ExporterNone          = "none"
	ExporterStdout        = "stdout"
	ExporterOTLP          = "otlp"
	defaultConfigName     = "config"
	defaultConfigDirName  = "contactus"
	defaultConfigFileType = "yaml"
)

// Sentinel errors returned by Validate.
var (
	ErrMissingEndpoint  = errors.New("api.endpoint is required")
	ErrInvalidEndpoint  = errors.New("api.endpoint must be an absolute http(s) URL")
	ErrUnknownExporter  = errors.New("tracing.exporter must be one of none, stdout, otlp")
	ErrInvalidToastTime = errors.New("ui.toast_duration must be positive")
	ErrUnknownPreset    = errors.New("ui.theme.preset is not a known theme")
)

// Config is the complete application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
}

// APIConfig describes the GraphQL backend that receives contact submissions.
type APIConfig struct {
	Endpoint string            `mapstructure:"endpoint" yaml:"endpoint"`
	Timeout  time.Duration     `mapstructure:"timeout" yaml:"timeout"` // 0 = no client-side timeout
	Headers  map[string]string `mapstructure:"headers" yaml:"headers,omitempty"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ToastDuration time.Duration      `mapstructure:"toast_duration" yaml:"toast_duration"`
	Mouse         bool               `mapstructure:"mouse" yaml:"mouse"`
	Theme         styles.ThemeConfig `mapstructure:"theme" yaml:"theme"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Debug      bool   `mapstructure:"debug" yaml:"debug"`
	Path       string `mapstructure:"path" yaml:"path"`
	Level      string `mapstructure:"level" yaml:"level"`
	BufferSize int    `mapstructure:"buffer_size" yaml:"buffer_size"`
}

// TracingConfig selects the OpenTelemetry exporter for submission spans.
type TracingConfig struct {
	Exporter string `mapstructure:"exporter" yaml:"exporter"`
	File     string `mapstructure:"file" yaml:"file"`         // stdout exporter target; the TUI owns stdout
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"` // otlp gRPC endpoint
	Insecure bool   `mapstructure:"insecure" yaml:"insecure"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			Endpoint: DefaultEndpoint,
		},
		UI: UIConfig{
			ToastDuration: DefaultToastDuration,
			Mouse:         true,
			Theme:         styles.ThemeConfig{Preset: "default"},
		},
		Log: LogConfig{
			Path:       DefaultLogPath,
			Level:      "debug",
			BufferSize: DefaultLogBufferSize,
		},
		Tracing: TracingConfig{
			Exporter: ExporterNone,
			File:     DefaultTracingFile,
			Endpoint: DefaultOTLPEndpoint,
			Insecure: true,
		},
	}
}

// SetDefaults registers Defaults() on v so env-only keys resolve during Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("api.endpoint", d.API.Endpoint)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("ui.toast_duration", d.UI.ToastDuration)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("ui.theme.preset", d.UI.Theme.Preset)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.buffer_size", d.Log.BufferSize)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file", d.Tracing.File)
	v.SetDefault("tracing.endpoint", d.Tracing.Endpoint)
	v.SetDefault("tracing.insecure", d.Tracing.Insecure)
}

// NewViper returns a viper instance with defaults and env binding applied.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", defaultConfigName+"."+defaultConfigFileType)
	}
	return filepath.Join(dir, defaultConfigDirName, defaultConfigName+"."+defaultConfigFileType)
}

// Load reads the config file (explicit path, or the default search path)
// into v and decodes the merged result. A missing default file is not an
// error; a missing explicit file is.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType(defaultConfigFileType)
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the application cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.Endpoint) == "" {
		return ErrMissingEndpoint
	}
	u, err := url.Parse(c.API.Endpoint)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.API.Endpoint)
	}
	if c.UI.ToastDuration <= 0 {
		return ErrInvalidToastTime
	}
	if _, ok := styles.Presets[c.UI.Theme.Preset]; c.UI.Theme.Preset != "" && !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, c.UI.Theme.Preset)
	}
	switch c.Tracing.Exporter {
	case ExporterNone, ExporterStdout, ExporterOTLP:
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownExporter, c.Tracing.Exporter)
	}
	return nil
}

// MarshalYAML writes durations in their human form ("6s") so the file
// round-trips through viper's duration decoding.
func (c APIConfig) MarshalYAML() (any, error) {
	return struct {
		Endpoint string            `yaml:"endpoint"`
		Timeout  string            `yaml:"timeout"`
		Headers  map[string]string `yaml:"headers,omitempty"`
	}{c.Endpoint, c.Timeout.String(), c.Headers}, nil
}

// MarshalYAML writes durations in their human form.
func (c UIConfig) MarshalYAML() (any, error) {
	return struct {
		ToastDuration string             `yaml:"toast_duration"`
		Mouse         bool               `yaml:"mouse"`
		Theme         styles.ThemeConfig `yaml:"theme"`
	}{c.ToastDuration.String(), c.Mouse, c.Theme}, nil
}

// Encode renders cfg as YAML.
func Encode(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// WriteDefault writes Defaults() to path, creating parent directories.
// An existing file is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
	}
	data, err := Encode(Defaults())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
