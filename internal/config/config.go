// Package config provides configuration loading and validation for the CLI
// and server. Configuration flows from an optional JSON file and the
// environment into explicit structs; there is no process-wide mutable state.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/highmark/consult-copilot/internal/llm"
)

// Config represents the application configuration. All fields are optional;
// missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Generation options
	APIKey        string `json:"api_key,omitempty"`        // Gemini API key
	BaseURL       string `json:"base_url,omitempty"`       // Optional endpoint override
	ModelLite     string `json:"model_lite,omitempty"`     // Model for the lite tier
	ModelStandard string `json:"model_standard,omitempty"` // Model for the standard tier
	ModelAdvanced string `json:"model_advanced,omitempty"` // Model for the advanced tier

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL, empty disables persistence
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Call after godotenv
// has loaded any .env file.
func FromEnv() *Config {
	cfg := &Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		BaseURL:     os.Getenv("LLM_BASE_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// Merge overlays non-empty values from other onto a copy of c.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	if other == nil {
		return &merged
	}
	if other.APIKey != "" {
		merged.APIKey = other.APIKey
	}
	if other.BaseURL != "" {
		merged.BaseURL = other.BaseURL
	}
	if other.ModelLite != "" {
		merged.ModelLite = other.ModelLite
	}
	if other.ModelStandard != "" {
		merged.ModelStandard = other.ModelStandard
	}
	if other.ModelAdvanced != "" {
		merged.ModelAdvanced = other.ModelAdvanced
	}
	if other.Port != 0 {
		merged.Port = other.Port
	}
	if other.DatabaseURL != "" {
		merged.DatabaseURL = other.DatabaseURL
	}
	return &merged
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	return nil
}

// LLMConfig builds the generation client configuration, applying any model
// overrides on top of the defaults.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig(c.APIKey)
	cfg.BaseURL = c.BaseURL
	if c.ModelLite != "" {
		cfg.Models[llm.TierLite] = c.ModelLite
	}
	if c.ModelStandard != "" {
		cfg.Models[llm.TierStandard] = c.ModelStandard
	}
	if c.ModelAdvanced != "" {
		cfg.Models[llm.TierAdvanced] = c.ModelAdvanced
	}
	return cfg
}
