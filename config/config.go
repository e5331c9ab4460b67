// Package config loads the YAML configuration shared by training,
// evaluation, prediction and the HTTP server.
package config

import (
	"os"
	"strings"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
	"gopkg.in/yaml.v2"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "configs/config.yaml"

// Default values for every recognized key.
const (
	DefaultDataPath    = "datasets/student_scores_dataset.csv"
	DefaultTestSize    = 0.2
	DefaultRandomState = 42
	DefaultTarget      = "score"
	DefaultModelPath   = "models/model.joblib"
	DefaultAddr        = ":5000"
	DefaultLogLevel    = "info"
	DefaultMaxSizeMB   = 10
	DefaultMaxBackups  = 3
)

// FeatureList is a list of feature columns that may be written in YAML as
// either a single name or a sequence of names.
type FeatureList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FeatureList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*f = FeatureList{single}
		return nil
	}
	var list []string
	if err := unmarshal(&list); err != nil {
		return errors.NewValidationError("feature", "must be a column name or a list of column names", nil)
	}
	*f = FeatureList(list)
	return nil
}

// Config is the parsed configuration file.
type Config struct {
	DataPath    string      `yaml:"data_path"`
	TestSize    float64     `yaml:"test_size"`
	RandomState int64       `yaml:"random_state"`
	Target      string      `yaml:"target"`
	Feature     FeatureList `yaml:"feature,omitempty"`
	ModelPath   string      `yaml:"model_path"`

	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures process logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Options converts the section to log.Options.
func (c LogConfig) Options() log.Options {
	return log.Options{
		Level:      c.Level,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// Default returns a Config with every key at its default.
func Default() *Config {
	return &Config{
		DataPath:    DefaultDataPath,
		TestSize:    DefaultTestSize,
		RandomState: DefaultRandomState,
		Target:      DefaultTarget,
		ModelPath:   DefaultModelPath,
		Server:      ServerConfig{Addr: DefaultAddr},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
		},
	}
}

// FeatureColumns returns the configured feature columns, or nil when the
// key is unset so that the pipeline default applies.
func (c *Config) FeatureColumns() []string {
	if len(c.Feature) == 0 {
		return nil
	}
	return append([]string(nil), c.Feature...)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataPath) == "" {
		return errors.NewValidationError("data_path", "must not be empty", c.DataPath)
	}
	if strings.TrimSpace(c.ModelPath) == "" {
		return errors.NewValidationError("model_path", "must not be empty", c.ModelPath)
	}
	if strings.TrimSpace(c.Target) == "" {
		return errors.NewValidationError("target", "must not be empty", c.Target)
	}
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return errors.NewValidationError("test_size", "must be in the open interval (0, 1)", c.TestSize)
	}
	for _, f := range c.Feature {
		if strings.TrimSpace(f) == "" {
			return errors.NewValidationError("feature", "column names must not be empty", f)
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.NewValidationError("log.level", "must be one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// Parse decodes YAML on top of the defaults. Keys that are absent keep
// their default value; empty input yields Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if errors.KindOf(err) == errors.KindValidation {
			return nil, err
		}
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path. A missing file yields a
// *errors.NotFoundError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("config", path)
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}
