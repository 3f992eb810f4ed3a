package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override the config file.
const (
	EnvAPIKey = "YOUTUBE_API_KEY"
	EnvPort   = "PORT"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server  ServerConfig  `toml:"server" json:"server"`
	YouTube YouTubeConfig `toml:"youtube" json:"youtube"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host                  string `toml:"host" json:"host"`
	Port                  int    `toml:"port" json:"port"`
	Prefix                string `toml:"prefix" json:"prefix"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds" json:"request_timeout_seconds"`
}

// YouTubeConfig contains YouTube Data API credentials and client limits.
type YouTubeConfig struct {
	APIKey            string  `toml:"api_key" json:"api_key"`
	BaseURL           string  `toml:"base_url" json:"base_url"`
	TimeoutSeconds    int     `toml:"timeout_seconds" json:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
	MaxConcurrency    int     `toml:"max_concurrency" json:"max_concurrency"`
	MaxPages          int     `toml:"max_pages" json:"max_pages"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RequestTimeout returns the per-request deadline.
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the per-call HTTP timeout for the upstream client.
func (y YouTubeConfig) Timeout() time.Duration {
	return time.Duration(y.TimeoutSeconds) * time.Second
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads variables from the given .env files into the process environment.
//
// Missing files are ignored and variables already set are never overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from the environment using lookup (usually [os.LookupEnv]).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.YouTube.APIKey = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvPort, v)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks limits that the rest of the program relies on.
//
// A missing API key is not a validation failure: operations report it per request.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port <= 0:
		return fmt.Errorf("%w: server.port must be positive", ErrInvalidConfig)
	case c.YouTube.MaxConcurrency <= 0:
		return fmt.Errorf("%w: youtube.max_concurrency must be positive", ErrInvalidConfig)
	case c.YouTube.MaxPages <= 0:
		return fmt.Errorf("%w: youtube.max_pages must be positive", ErrInvalidConfig)
	case c.YouTube.RequestsPerSecond < 0:
		return fmt.Errorf("%w: youtube.requests_per_second cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// HasAPIKey reports whether an upstream credential is configured.
func (c *Config) HasAPIKey() bool {
	return c.YouTube.APIKey != ""
}
