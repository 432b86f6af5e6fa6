package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"ngcc-go/packages/compiler-cli/logging"
	"ngcc-go/packages/compiler-cli/ngtsc/annotations"
)

// Environment variables that override file settings
const (
	EnvWorkers  = "NGCC_GO_WORKERS"
	EnvLogLevel = "NGCC_GO_LOG_LEVEL"
)

// Config holds the settings of an analysis run
type Config struct {
	// Workers is the number of files analyzed concurrently
	Workers int `toml:"workers" validate:"min=1,max=64"`

	// ResourceRoot is the directory templateUrl and styleUrls are resolved against.
	// Empty means the directory of the first manifest.
	ResourceRoot string `toml:"resource_root"`

	// Handlers selects the built-in handlers and their order
	Handlers []string `toml:"handlers" validate:"omitempty,unique,dive,oneof=base-ref component directive injectable ng-module pipe"`

	StrictDecoratorImport bool `toml:"strict_decorator_import"`

	Logging logging.Config `toml:"logging"`
}

// Option changes a Config
type Option func(*Config)

// WithWorkers sets the number of concurrent workers
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithResourceRoot sets the resource root
func WithResourceRoot(root string) Option {
	return func(c *Config) {
		c.ResourceRoot = root
	}
}

// WithHandlers selects handlers by name
func WithHandlers(names ...string) Option {
	return func(c *Config) {
		c.Handlers = names
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.Logging.Level = level
	}
}

// NewDefaultConfig returns the configuration used when no file is given
func NewDefaultConfig() *Config {
	return &Config{
		Workers:  1,
		Handlers: append([]string{}, annotations.DefaultHandlerNames...),
		Logging: logging.Config{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// Load builds a configuration from the defaults, the TOML file at path when it is
// not empty, the environment and finally opts. The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if workers := os.Getenv(EnvWorkers); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, workers, err)
		}
		cfg.Workers = n
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	return nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
