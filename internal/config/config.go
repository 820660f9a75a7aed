// Package config loads the conveyor command configuration from a YAML file, a .env file and CONVEYOR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fogfactory/conveyor/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g. CONVEYOR_PIPELINE_CAPACITY.
const EnvPrefix = "CONVEYOR"

// Config is the whole command configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Sales    SalesConfig    `yaml:"sales" mapstructure:"sales"`
	Logging  logger.Config  `yaml:"logging" mapstructure:"logging"`
}

// PipelineConfig configures the demo run.
type PipelineConfig struct {
	Capacity int    `yaml:"capacity" mapstructure:"capacity" validate:"gt=0"`
	Items    int    `yaml:"items" mapstructure:"items" validate:"gte=0"`
	Sentinel string `yaml:"sentinel" mapstructure:"sentinel"` // empty: end of stream is a tagged message
}

// SalesConfig configures the sales report.
type SalesConfig struct {
	File string `yaml:"file" mapstructure:"file"`
	Top  int    `yaml:"top" mapstructure:"top" validate:"gte=0"`
}

var defaults = map[string]any{
	"pipeline.capacity": 3,
	"pipeline.items":    10,
	"pipeline.sentinel": "",
	"sales.file":        "",
	"sales.top":         5,
	"logging.level":     "info",
	"logging.format":    logger.FormatConsole,
	"logging.output":    "stderr",
	"logging.no_color":  false,
	"logging.timestamp": true,
}

// LoaderConfig holds optional file overrides.
type LoaderConfig struct {
	ConfigFile string // YAML config file path (optional)
	EnvFile    string // .env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load builds the configuration. Sources, lowest priority first: defaults, config file, environment (including the .env file).
// Variables already set in the environment win over the .env file.
func Load(opts ...LoaderOption) (*Config, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.EnvFile != "" {
		if err := godotenv.Load(lc.EnvFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", lc.EnvFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if lc.ConfigFile != "" {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", lc.ConfigFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Logging.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the logging configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s must be %s %s (got: %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
