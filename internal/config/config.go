// Package config provides configuration management for Mahkah.
// It loads settings from environment variables with the MAHKAH_ prefix
// and provides sensible defaults for all configuration options.
//
// An optional YAML file can be loaded on top of the environment with
// LoadConfigFromFile; file values take precedence over environment
// variables, mirroring how deployments pin festival-day settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the Mahkah application.
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Relay    RelayConfig
	Security SecurityConfig
	Kiosk    KioskConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port int    // Server port (default: 8787)
	Host string // Server host (default: 127.0.0.1)
}

// LLMConfig contains model provider configuration.
type LLMConfig struct {
	APIKey        string        // Gemini API key; absence is a fatal configuration error for story requests
	Model         string        // Model name (default: gemini-2.5-flash)
	BaseURL       string        // Provider base URL (default: https://generativelanguage.googleapis.com)
	Timeout       time.Duration // Per-attempt request timeout (default: 60s)
	MaxAttempts   int           // Total attempts on throttling (default: 3)
	RetryBaseWait time.Duration // Backoff scale between attempts (default: 2s)
}

// RelayConfig contains story relay limits.
type RelayConfig struct {
	MaxImageBytes  int64   // Ceiling for the encoded image payload (default: 10 MiB)
	RateLimitRPS   float64 // Sustained request rate (default: 10)
	RateLimitBurst int     // Burst size (default: 20)
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	SecurityMode string // Security mode: development, production (default: development)
	APIToken     string // API authentication token, required in production mode
}

// KioskConfig contains settings for the visitor-facing kiosk client.
type KioskConfig struct {
	RelayURL        string // Story relay base URL (default: http://127.0.0.1:8787)
	DataPath        string // Path to the kiosk data directory (default: ./data)
	DefaultLanguage string // Initial UI language: ar or en (default: ar)
}

// fileConfig is the YAML schema for LoadConfigFromFile. Durations are
// strings in time.ParseDuration form ("60s", "2s").
type fileConfig struct {
	Port           int     `yaml:"port"`
	Host           string  `yaml:"host"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	BaseURL        string  `yaml:"base_url"`
	Timeout        string  `yaml:"timeout"`
	MaxAttempts    int     `yaml:"max_attempts"`
	RetryBaseWait  string  `yaml:"retry_base_wait"`
	MaxImageMB     int64   `yaml:"max_image_mb"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
	SecurityMode   string  `yaml:"security_mode"`
	APIToken       string  `yaml:"api_token"`
	RelayURL       string  `yaml:"relay_url"`
	DataPath       string  `yaml:"data_path"`
	DefaultLang    string  `yaml:"default_language"`
}

// LoadConfig loads configuration from environment variables with
// sensible defaults. All environment variables use the MAHKAH_ prefix.
func LoadConfig() (*Config, error) {
	return buildBaseConfig(), nil
}

// LoadConfigFromFile loads configuration from environment variables,
// then applies any value set in the YAML file at path. File values take
// precedence over environment variables.
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := buildBaseConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if err := applyFile(cfg, fc); err != nil {
		return nil, fmt.Errorf("config: invalid value in %s: %w", path, err)
	}
	return cfg, nil
}

// applyFile overwrites cfg with every non-zero value from fc.
func applyFile(cfg *Config, fc fileConfig) error {
	if fc.Port != 0 {
		cfg.Server.Port = fc.Port
	}
	if fc.Host != "" {
		cfg.Server.Host = fc.Host
	}
	if fc.APIKey != "" {
		cfg.LLM.APIKey = fc.APIKey
	}
	if fc.Model != "" {
		cfg.LLM.Model = fc.Model
	}
	if fc.BaseURL != "" {
		cfg.LLM.BaseURL = fc.BaseURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		cfg.LLM.Timeout = d
	}
	if fc.MaxAttempts != 0 {
		cfg.LLM.MaxAttempts = fc.MaxAttempts
	}
	if fc.RetryBaseWait != "" {
		d, err := time.ParseDuration(fc.RetryBaseWait)
		if err != nil {
			return fmt.Errorf("retry_base_wait: %w", err)
		}
		cfg.LLM.RetryBaseWait = d
	}
	if fc.MaxImageMB != 0 {
		cfg.Relay.MaxImageBytes = fc.MaxImageMB << 20
	}
	if fc.RateLimitRPS != 0 {
		cfg.Relay.RateLimitRPS = fc.RateLimitRPS
	}
	if fc.RateLimitBurst != 0 {
		cfg.Relay.RateLimitBurst = fc.RateLimitBurst
	}
	if fc.SecurityMode != "" {
		cfg.Security.SecurityMode = fc.SecurityMode
	}
	if fc.APIToken != "" {
		cfg.Security.APIToken = fc.APIToken
	}
	if fc.RelayURL != "" {
		cfg.Kiosk.RelayURL = fc.RelayURL
	}
	if fc.DataPath != "" {
		cfg.Kiosk.DataPath = fc.DataPath
	}
	if fc.DefaultLang != "" {
		cfg.Kiosk.DefaultLanguage = fc.DefaultLang
	}
	return nil
}

// buildBaseConfig constructs a Config with values from environment
// variables and defaults.
func buildBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("MAHKAH_PORT", 8787),
			Host: getEnv("MAHKAH_HOST", "127.0.0.1"),
		},
		LLM: LLMConfig{
			APIKey:        getEnv("MAHKAH_API_KEY", os.Getenv("API_KEY")),
			Model:         getEnv("MAHKAH_MODEL", "gemini-2.5-flash"),
			BaseURL:       getEnv("MAHKAH_PROVIDER_URL", "https://generativelanguage.googleapis.com"),
			Timeout:       getEnvDuration("MAHKAH_PROVIDER_TIMEOUT", 60*time.Second),
			MaxAttempts:   getEnvInt("MAHKAH_PROVIDER_MAX_ATTEMPTS", 3),
			RetryBaseWait: getEnvDuration("MAHKAH_PROVIDER_RETRY_WAIT", 2*time.Second),
		},
		Relay: RelayConfig{
			MaxImageBytes:  int64(getEnvInt("MAHKAH_MAX_IMAGE_MB", 10)) << 20,
			RateLimitRPS:   getEnvFloat("MAHKAH_RATE_LIMIT_RPS", 10.0),
			RateLimitBurst: getEnvInt("MAHKAH_RATE_LIMIT_BURST", 20),
		},
		Security: SecurityConfig{
			SecurityMode: getEnv("MAHKAH_SECURITY_MODE", "development"),
			APIToken:     getEnv("MAHKAH_API_TOKEN", ""),
		},
		Kiosk: KioskConfig{
			RelayURL:        getEnv("MAHKAH_RELAY_URL", "http://127.0.0.1:8787"),
			DataPath:        getEnv("MAHKAH_DATA_PATH", "./data"),
			DefaultLanguage: getEnv("MAHKAH_DEFAULT_LANG", "ar"),
		},
	}
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a
// default value when unset or unparsable.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a
// default value when unset or unparsable.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable
// (time.ParseDuration form) or returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
