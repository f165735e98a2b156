package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Registry RegistryConfig `toml:"registry"`
	Cache    CacheConfig    `toml:"cache"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig represents the HTTP server configuration.
type ServerConfig struct {
	Host                string   `toml:"host"`
	Port                int      `toml:"port"`
	CORSAllowedOrigins  []string `toml:"cors_allowed_origins"`
	StaticFilesDir      string   `toml:"static_files_dir"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"`
	RateLimitPerSecond  float64  `toml:"rate_limit_per_second"`
	RateLimitBurst      int      `toml:"rate_limit_burst"`
}

// RegistryConfig represents the clinical-trials registry client configuration.
type RegistryConfig struct {
	BaseURL               string `toml:"base_url"`
	PageSize              int    `toml:"page_size"`
	PageDelayMS           int    `toml:"page_delay_ms"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	DefaultMaxRecords     int    `toml:"default_max_records"`
	MaxRecordsLimit       int    `toml:"max_records_limit"`
}

// CacheConfig represents the trial table cache configuration.
type CacheConfig struct {
	TTLMinutes int `toml:"ttl_minutes"`
}

// LoggingConfig represents the logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			CORSAllowedOrigins: []string{"*"},
			StaticFilesDir:     "web",
			ReadTimeoutSeconds: 15,
			// Cold fetches of multi-page conditions run inside the handler,
			// so the write window has to cover the whole paginated walk.
			WriteTimeoutSeconds: 120,
			RateLimitPerSecond:  10,
			RateLimitBurst:      20,
		},
		Registry: RegistryConfig{
			BaseURL:               "https://clinicaltrials.gov/api/v2/studies",
			PageSize:              1000,
			PageDelayMS:           200,
			RequestTimeoutSeconds: 30,
			DefaultMaxRecords:     1000,
			MaxRecordsLimit:       5000,
		},
		Cache: CacheConfig{
			TTLMinutes: 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error: the defaults are returned so the server can run unconfigured.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}
