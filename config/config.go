// Package config loads the YAML configuration file driving the example
// server binary.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

// Config is the file model for the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// ServerConfig configures the main TCP listener.
type ServerConfig struct {
	Address          string   `yaml:"address"`
	ReadTimeout      Duration `yaml:"read_timeout"`
	WriteTimeout     Duration `yaml:"write_timeout"`
	KeepAliveTimeout Duration `yaml:"keep_alive_timeout"`
}

// LoggingConfig configures the process log sink.
type LoggingConfig struct {
	// File is the log file path. Empty logs to stdout.
	File string `yaml:"file"`
	// Colored enables the lipgloss-colored request logger. Only sensible
	// when logging to a terminal.
	Colored bool `yaml:"colored"`

	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// MetricsConfig configures the Prometheus scrape endpoint.
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ListenAddress string `yaml:"listen_address"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:          ":8080",
			KeepAliveTimeout: Duration(30 * time.Second),
		},
		Logging: LoggingConfig{
			MaxSizeMB:  256,
			MaxBackups: 10,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Metrics: MetricsConfig{
			ListenAddress: ":9090",
		},
	}
}

// Load reads a YAML config file, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Writer returns the log sink for this configuration: a size-rotated file
// when File is set, stdout otherwise.
func (lc LoggingConfig) Writer() io.Writer {
	if lc.File == "" {
		return os.Stdout
	}
	return &lumberjack.Logger{
		Filename:   lc.File,
		MaxSize:    lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAgeDays,
		Compress:   lc.Compress,
	}
}
