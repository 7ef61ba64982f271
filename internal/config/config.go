// Package config loads expscore settings from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

// Output formats.
const (
	FormatText     = "text"
	FormatMarkdown = "md"
	FormatJSON     = "json"
)

// Defaults.
const (
	DefaultProfile = "default"
	DefaultLocale  = "pt-BR"
	DefaultFormat  = FormatText
)

// Config holds all configuration for expscore.
type Config struct {
	Profile string        `mapstructure:"profile"`
	Locale  string        `mapstructure:"locale"`
	Format  string        `mapstructure:"format"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the default search paths and environment variables.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads configuration from path, or from the default search paths
// when path is empty. Environment variables prefixed EXPSCORE_ override both.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("profile", DefaultProfile)
	v.SetDefault("locale", DefaultLocale)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("expscore")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".expscore"))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("EXPSCORE")
	v.AutomaticEnv()
	_ = v.BindEnv("logging.level", "EXPSCORE_LOG_LEVEL")
	_ = v.BindEnv("logging.format", "EXPSCORE_LOG_FORMAT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.Profile == "" {
		return fmt.Errorf("profile must not be empty")
	}
	if c.Locale == "" {
		return fmt.Errorf("locale must not be empty")
	}
	if !slices.Contains([]string{FormatText, FormatMarkdown, FormatJSON}, c.Format) {
		return fmt.Errorf("format must be one of text, md, json; got %q", c.Format)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json; got %q", c.Logging.Format)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
