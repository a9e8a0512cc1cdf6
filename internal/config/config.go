// Package config loads application configuration and plan files from YAML,
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Database struct {
		PostgresDSN   string `yaml:"postgres_dsn"`
		ClickhouseDSN string `yaml:"clickhouse_dsn"`
		UseMemory     bool   `yaml:"use_memory"`
	} `yaml:"database"`
	Metrics struct {
		Namespace string `yaml:"namespace"`
	} `yaml:"metrics"`
	Simulation struct {
		DefaultSeed int64 `yaml:"default_seed"`
	} `yaml:"simulation"`
	LogLevel string `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DRIPCALC_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Database.PostgresDSN = v
	}
	if v := os.Getenv("CLICKHOUSE_DSN"); v != "" {
		cfg.Database.ClickhouseDSN = v
	}
	if v := os.Getenv("DRIPCALC_USE_MEMORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Database.UseMemory = b
		}
	}
	if v := os.Getenv("DRIPCALC_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.DefaultSeed = seed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "dripcalc"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Database.PostgresDSN == "" && cfg.Database.ClickhouseDSN == "" {
		cfg.Database.UseMemory = true
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if !c.Database.UseMemory && c.Database.PostgresDSN == "" {
		return fmt.Errorf("database.postgres_dsn is required unless database.use_memory is set")
	}
	return nil
}
