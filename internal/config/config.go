// Package config loads and validates the assessor configuration from a
// YAML file, with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/danielpatrickdp/quality-assessor/internal/expr"
)

// #region types

// Config is the complete assessor configuration.
type Config struct {
	// Logger configures structured log output.
	Logger LoggerConfig `mapstructure:"logger"`
	// Store configures the assessment database.
	Store StoreConfig `mapstructure:"store"`
	// Application describes the system under assessment.
	Application ApplicationConfig `mapstructure:"application"`
	// Assessment configures the assessment pass itself.
	Assessment AssessmentConfig `mapstructure:"assessment"`
	// Metrics holds user-defined expression metrics.
	Metrics []expr.Def `mapstructure:"metrics"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level is one of debug, info, warn, warning, error (case-insensitive).
	Level string `mapstructure:"level"`
	// File is the log file path. Empty means stderr.
	File string `mapstructure:"file"`
	// SizeMB is the maximum size of one log file before rotation.
	SizeMB int `mapstructure:"size_mb"`
	// Backups is the number of rotated files to keep.
	Backups int `mapstructure:"backups"`
}

// StoreConfig defines the assessment database.
type StoreConfig struct {
	// Path is the SQLite database file. Empty disables persistence.
	Path string `mapstructure:"path"`
}

// ApplicationConfig describes the system under assessment.
type ApplicationConfig struct {
	Name string `mapstructure:"name"`
	// Type conditions goal applicability, e.g. "web backend" or "frontend".
	Type string `mapstructure:"type"`
}

// AssessmentConfig tunes the assessment pass.
type AssessmentConfig struct {
	// Model is an optional YAML goal model file. Empty uses the built-in
	// ISO 25010 subset.
	Model string `mapstructure:"model"`
	// Goals is the default selection when none is given on the command line.
	Goals []string `mapstructure:"goals"`
	// Benchmarks overrides default normalization maxima per acronym.
	Benchmarks map[string]float64 `mapstructure:"benchmarks"`
	// Dynamic lets historical maxima raise benchmarks.
	Dynamic bool `mapstructure:"dynamic"`
}

// #endregion types

// #region validate

// Validate checks every section and returns the first detected error.
func (c *Config) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Application.Validate(); err != nil {
		return err
	}
	if err := c.Assessment.Validate(); err != nil {
		return err
	}
	for i := range c.Metrics {
		if err := c.Metrics[i].Validate(); err != nil {
			return fmt.Errorf("metrics[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate checks the logger section and fills rotation defaults.
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		l.Level = "info"
	}
	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}
	if l.SizeMB == 0 {
		l.SizeMB = 100
	}
	if l.Backups == 0 {
		l.Backups = 5
	}
	return nil
}

// Validate checks the application section.
func (a *ApplicationConfig) Validate() error {
	if a.Name == "" {
		return errors.New("application.name: must be specified")
	}
	if a.Type == "" {
		return errors.New("application.type: must be specified")
	}
	return nil
}

// Validate checks the assessment section.
func (a *AssessmentConfig) Validate() error {
	for acronym, max := range a.Benchmarks {
		if max < 0 {
			return fmt.Errorf("assessment.benchmarks: %s must not be negative", acronym)
		}
	}
	return nil
}

// #endregion validate

// #region load

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logger:      LoggerConfig{Level: "info", SizeMB: 100, Backups: 5},
		Application: ApplicationConfig{Name: "application", Type: "web backend"},
	}
}

// Load reads a YAML configuration file via Viper. Environment variables
// override file values.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// #endregion load
