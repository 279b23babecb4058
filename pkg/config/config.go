// Package config loads and persists the plugin configuration as a JSON
// document under the user's home directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Provider identifiers accepted in the api_provider field.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

// Config represents the persisted plugin configuration.
type Config struct {
	APIProvider     string  `json:"api_provider"`
	OpenAIAPIKey    string  `json:"openai_api_key"`
	AnthropicAPIKey string  `json:"anthropic_api_key"`
	GoogleAPIKey    string  `json:"google_api_key"`
	Model           string  `json:"model"`
	Temperature     float64 `json:"temperature"`
	MaxTokens       int     `json:"max_tokens"`
	ShowCode        bool    `json:"show_code"`
	HistorySize     int     `json:"history_size"`
	// TimeoutSeconds is kept for compatibility with existing config files.
	// Providers apply their own request timeouts.
	TimeoutSeconds int    `json:"timeout"`
	AutoExecute    bool   `json:"auto_execute"`
	LogLevel       string `json:"log_level"`
	LogFile        string `json:"log_file,omitempty"`

	// LegacyAPIKey is the pre-provider flat key field. Load migrates it
	// into OpenAIAPIKey and drops it from the file.
	LegacyAPIKey string `json:"api_key,omitempty"`
}

// Default returns a configuration with default values.
func Default() Config {
	return Config{
		APIProvider:    ProviderOpenAI,
		Model:          "gpt-4",
		Temperature:    0.1,
		MaxTokens:      1500,
		ShowCode:       false,
		HistorySize:    10,
		TimeoutSeconds: 30,
		AutoExecute:    true,
		LogLevel:       "info",
	}
}

// Load loads configuration from the specified path. A missing file is
// created with defaults. Legacy fields are migrated and the file rewritten
// once, so subsequent loads see the new layout.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return applyEnvOverrides(cfg), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if migrateLegacy(&cfg) {
		if err := Save(configPath, cfg); err != nil {
			return Config{}, fmt.Errorf("failed to write migrated config: %w", err)
		}
	}

	return applyEnvOverrides(cfg), nil
}

// Save saves the configuration to the specified path.
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// migrateLegacy moves the old flat api_key field into the OpenAI slot.
// Reports whether anything changed.
func migrateLegacy(cfg *Config) bool {
	if cfg.LegacyAPIKey == "" {
		return false
	}
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = cfg.LegacyAPIKey
	}
	cfg.LegacyAPIKey = ""
	return true
}

func applyEnvOverrides(cfg Config) Config {
	if v := os.Getenv("KRITAGPT_PROVIDER"); v != "" {
		cfg.APIProvider = strings.ToLower(v)
	}
	if v := os.Getenv("KRITAGPT_OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("KRITAGPT_ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("KRITAGPT_GOOGLE_API_KEY"); v != "" {
		cfg.GoogleAPIKey = v
	}
	if v := os.Getenv("KRITAGPT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("KRITAGPT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("KRITAGPT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Temperature = f
		}
	}
	return cfg
}

// APIKey returns the configured key for the given provider.
func (c Config) APIKey(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderGoogle:
		return c.GoogleAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	switch c.APIProvider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
	default:
		return fmt.Errorf("unsupported provider: %s", c.APIProvider)
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got: %f", c.Temperature)
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got: %d", c.MaxTokens)
	}

	if c.HistorySize <= 0 {
		return fmt.Errorf("history_size must be positive, got: %d", c.HistorySize)
	}

	return nil
}

// GetConfigPath returns the default configuration file path.
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".kritagpt", "config.json")
	}
	return filepath.Join(homeDir, ".kritagpt", "config.json")
}
