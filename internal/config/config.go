// Package config provides configuration loading for openai-pass.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Output formats for printed credentials.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputEnv  = "env"
)

const envPrefix = "OPENAI_PASS"

// Dir is the per-project state directory.
const Dir = ".openai-pass"

// DefaultPath is the config file used when none is given.
var DefaultPath = filepath.Join(Dir, "config.json")

// Config is the root configuration.
type Config struct {
	Timeout   time.Duration `json:"timeout"    mapstructure:"timeout"`
	UserAgent string        `json:"user_agent" mapstructure:"user_agent"`
	Output    string        `json:"output"     mapstructure:"output"`
	History   HistoryConfig `json:"history"    mapstructure:"history"`
}

// HistoryConfig controls the request outcome log.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path"    mapstructure:"path"`
}

// LoadOptions selects the config file.
type LoadOptions struct {
	Path string
	// Required makes a missing file an error.
	Required bool
}

// Load reads the config file, applies OPENAI_PASS_* environment overrides and defaults.
func Load(opts LoadOptions) (Config, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if _, err := os.Stat(path); err == nil || opts.Required {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := ValidateSettings(v.AllSettings()); err != nil {
			return Config{}, err
		}
	}

	v.SetDefault("timeout", "5m")
	v.SetDefault("user_agent", "openai-pass")
	v.SetDefault("output", OutputJSON)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(Dir, "history.db"))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.StringToTimeDurationHookFunc())); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that may come from the environment and bypass the schema.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0")
	}
	switch c.Output {
	case OutputJSON, OutputYAML, OutputEnv:
	default:
		return fmt.Errorf("output must be one of %s, %s, %s; got %q", OutputJSON, OutputYAML, OutputEnv, c.Output)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	return nil
}

// LoadDotEnv loads variables from a .env file without overriding the environment. A missing file
// is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
