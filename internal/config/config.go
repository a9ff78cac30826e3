package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/minivue/internal/errors"
)

const (
	// DefaultLogLevel is the default slog level name.
	DefaultLogLevel = "info"

	// DefaultDevtoolsAddr is the default devtools listen address.
	DefaultDevtoolsAddr = "localhost:7070"

	// DefaultDevtoolsPath is the URL prefix the devtools routes mount under.
	DefaultDevtoolsPath = "/_minivue"

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "minivue"

	// DefaultServiceName is reported on trace spans.
	DefaultServiceName = "minivue"

	// DefaultBenchIterations is the number of samples per benchmark case.
	DefaultBenchIterations = 500
)

// FileNames lists the configuration files Load looks for, in order.
var FileNames = []string{"minivue.json", "minivue.yaml", "minivue.yml"}

// DefaultBenchSizes are the list sizes exercised by the bench command.
var DefaultBenchSizes = []int{10, 100, 1000}

// Config is the complete tool configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// Debug enables extra renderer diagnostics.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty"`

	// Devtools configures the inspection server.
	Devtools DevtoolsConfig `json:"devtools,omitempty" yaml:"devtools,omitempty"`

	// Metrics configures Prometheus collection.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// Bench configures the bench command.
	Bench BenchConfig `json:"bench,omitempty" yaml:"bench,omitempty"`

	configPath string
}

// DevtoolsConfig contains devtools server settings.
type DevtoolsConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// Path is the URL prefix for every devtools route.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// AllowedOrigins restricts websocket origins. Empty allows same-host only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ServiceName string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
}

// BenchConfig contains bench command settings.
type BenchConfig struct {
	// Iterations is the number of timed samples per case.
	Iterations int `json:"iterations,omitempty" yaml:"iterations,omitempty"`

	// Sizes are the list lengths used by the keyed diff cases.
	Sizes []int `json:"sizes,omitempty" yaml:"sizes,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Devtools: DevtoolsConfig{
			Addr: DefaultDevtoolsAddr,
			Path: DefaultDevtoolsPath,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultMetricsNamespace,
		},
		Tracing: TracingConfig{
			ServiceName: DefaultServiceName,
		},
		Bench: BenchConfig{
			Iterations: DefaultBenchIterations,
			Sizes:      append([]int(nil), DefaultBenchSizes...),
		},
	}
}

// Load reads configuration from dir. A directory without any configuration
// file yields the defaults.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from the given JSON or YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("G001").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("G001").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("G001").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check the YAML indentation and key names")
		}
	default:
		return nil, errors.New("G003").WithDetailf("%s has an unknown extension", path)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, choosing the format by extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return errors.New("G003").WithDetailf("%s has an unknown extension", path)
	}
	if err != nil {
		return errors.New("G001").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("G001").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Devtools.Addr == "" {
		c.Devtools.Addr = DefaultDevtoolsAddr
	}
	if c.Devtools.Path == "" {
		c.Devtools.Path = DefaultDevtoolsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = DefaultServiceName
	}
	if c.Bench.Iterations == 0 {
		c.Bench.Iterations = DefaultBenchIterations
	}
	if len(c.Bench.Sizes) == 0 {
		c.Bench.Sizes = append([]int(nil), DefaultBenchSizes...)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Devtools.Path, "/") {
		return errors.New("G002").WithDetailf("devtools.path %q must start with /", c.Devtools.Path)
	}
	if c.Bench.Iterations < 0 {
		return errors.New("G002").WithDetail("bench.iterations must not be negative")
	}
	for _, n := range c.Bench.Sizes {
		if n <= 0 {
			return errors.New("G002").WithDetailf("bench.sizes contains %d, sizes must be positive", n)
		}
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, errors.New("G002").
			WithDetail(fmt.Sprintf("unknown log level %q", name)).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}
