// Package config provides application-wide configuration for Sherpa.
// Configuration is resolved once at process start and passed around as an
// explicit struct; nothing below this package reads the environment.
//
// Resolution order (later wins): baked-in defaults, optional YAML file
// (SHERPA_CONFIG), environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for Sherpa.
type Config struct {
	// Provider forces a specific LLM backend ("gemini" | "openai" | "mock").
	// Empty means: pick by credential priority (Gemini, then OpenAI, then mock).
	Provider string `yaml:"provider"`

	// Provider credentials and models.
	GeminiAPIKey string `yaml:"gemini_api_key"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
	OpenAIModel  string `yaml:"openai_model"`

	// Base URL overrides, mainly for tests and proxies.
	GeminiBaseURL string `yaml:"gemini_base_url"`
	OpenAIBaseURL string `yaml:"openai_base_url"`

	// TimeoutSeconds bounds a single vendor call. No retries are performed.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Storage and HTTP server.
	DBPath   string `yaml:"db_path"`
	HTTPHost string `yaml:"http_host"`
	HTTPPort int    `yaml:"http_port"`
}

const (
	envKeyConfigFile    = "SHERPA_CONFIG"
	envKeyProvider      = "SHERPA_PROVIDER"
	envKeyGeminiAPIKey  = "GOOGLE_API_KEY"
	envKeyOpenAIAPIKey  = "OPENAI_API_KEY"
	envKeyGeminiModel   = "GEMINI_MODEL"
	envKeyOpenAIModel   = "OPENAI_MODEL"
	envKeyGeminiBaseURL = "GEMINI_BASE_URL"
	envKeyOpenAIBaseURL = "OPENAI_BASE_URL"
	envKeyTimeout       = "SHERPA_TIMEOUT_SECONDS"
	envKeyDBPath        = "SHERPA_DB_PATH"
	envKeyHTTPHost      = "SHERPA_HTTP_HOST"
	envKeyHTTPPort      = "SHERPA_HTTP_PORT"
)

// Defaults mirror the vendor defaults the clients would otherwise pick.
const (
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultOpenAIModel   = "gpt-4o"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// Default returns the baked-in configuration.
func Default() Config {
	return Config{
		GeminiModel:    DefaultGeminiModel,
		OpenAIModel:    DefaultOpenAIModel,
		GeminiBaseURL:  DefaultGeminiBaseURL,
		OpenAIBaseURL:  DefaultOpenAIBaseURL,
		TimeoutSeconds: 30,
		DBPath:         "sherpa.db",
		HTTPHost:       "0.0.0.0",
		HTTPPort:       8080,
	}
}

// Load resolves the full configuration: defaults, then the optional YAML
// file pointed to by SHERPA_CONFIG, then environment variables.
// A missing file referenced by SHERPA_CONFIG is an error; an unset
// SHERPA_CONFIG is not.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(envKeyConfigFile); path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// loadFile overlays YAML file values onto cfg. Unset YAML fields keep the
// values already in cfg (yaml.Unmarshal leaves absent fields untouched).
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables onto cfg. Empty env vars are
// ignored so file/default values survive.
func applyEnv(cfg *Config) {
	cfg.Provider = envOr(envKeyProvider, cfg.Provider)
	cfg.GeminiAPIKey = envOr(envKeyGeminiAPIKey, cfg.GeminiAPIKey)
	cfg.OpenAIAPIKey = envOr(envKeyOpenAIAPIKey, cfg.OpenAIAPIKey)
	cfg.GeminiModel = envOr(envKeyGeminiModel, cfg.GeminiModel)
	cfg.OpenAIModel = envOr(envKeyOpenAIModel, cfg.OpenAIModel)
	cfg.GeminiBaseURL = envOr(envKeyGeminiBaseURL, cfg.GeminiBaseURL)
	cfg.OpenAIBaseURL = envOr(envKeyOpenAIBaseURL, cfg.OpenAIBaseURL)
	cfg.DBPath = envOr(envKeyDBPath, cfg.DBPath)
	cfg.HTTPHost = envOr(envKeyHTTPHost, cfg.HTTPHost)

	if v, err := strconv.Atoi(os.Getenv(envKeyTimeout)); err == nil && v > 0 {
		cfg.TimeoutSeconds = v
	}
	if v, err := strconv.Atoi(os.Getenv(envKeyHTTPPort)); err == nil && v > 0 {
		cfg.HTTPPort = v
	}
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
