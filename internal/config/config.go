// Package config loads service and CLI configuration from an optional file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blkdmnd/visual-thesis/internal/llm"
	"github.com/spf13/viper"
)

// Config aggregates settings sourced from a config file or environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Session SessionConfig `mapstructure:"session"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Verbose bool          `mapstructure:"verbose"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RateLimit is requests per second per client and endpoint; RateBurst is the bucket size.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// LLMConfig selects the model provider and model names.
type LLMConfig struct {
	Provider      string `mapstructure:"provider"`
	APIKey        string `mapstructure:"api_key"`
	Project       string `mapstructure:"project"`
	Location      string `mapstructure:"location"`
	LiteModel     string `mapstructure:"lite_model"`
	StandardModel string `mapstructure:"standard_model"`
	AdvancedModel string `mapstructure:"advanced_model"`
}

// FetchConfig controls job posting ingestion.
type FetchConfig struct {
	UseBrowser bool `mapstructure:"use_browser"`
}

// ThemeConfig controls theme persistence for the CLI.
type ThemeConfig struct {
	File string `mapstructure:"file"`
}

// Load reads configuration from path (optional, YAML or JSON) and the
// environment. Environment variables win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	models := llm.DefaultGeminiConfig()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 2.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("llm.provider", string(llm.ProviderGemini))
	v.SetDefault("llm.location", "us-central1")
	v.SetDefault("llm.lite_model", models.Models[llm.TierLite])
	v.SetDefault("llm.standard_model", models.Models[llm.TierStandard])
	v.SetDefault("llm.advanced_model", models.Models[llm.TierAdvanced])
	v.SetDefault("session.ttl", DefaultSessionTTL)
	v.SetDefault("session.store_size", 1024)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string][]string{
		"server.port":            {"PORT"},
		"server.allowed_origins": {"ALLOWED_ORIGINS"},
		"server.rate_limit":      {"RATE_LIMIT"},
		"server.rate_burst":      {"RATE_BURST"},
		"llm.provider":           {"LLM_PROVIDER"},
		"llm.api_key":            {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"llm.project":            {"VERTEX_PROJECT", "GOOGLE_CLOUD_PROJECT"},
		"llm.location":           {"VERTEX_LOCATION", "GOOGLE_CLOUD_LOCATION"},
		"llm.standard_model":     {"LLM_MODEL"},
		"session.secret":         {"SESSION_SECRET"},
		"session.ttl":            {"SESSION_TTL"},
		"session.store_size":     {"SESSION_STORE_SIZE"},
		"fetch.use_browser":      {"USE_BROWSER"},
		"theme.file":             {"THEME_FILE"},
		"verbose":                {"VERBOSE"},
	}

	for key, envs := range mappings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks ranges and provider requirements. Secrets needed only by
// specific commands are checked by ValidateServe and the LLM client.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst < 1 {
		errs = append(errs, errors.New("server.rate_limit must be positive and server.rate_burst at least 1"))
	}

	switch llm.Provider(strings.ToLower(c.LLM.Provider)) {
	case llm.ProviderGemini:
	case llm.ProviderVertex:
		if c.LLM.Project == "" || c.LLM.Location == "" {
			errs = append(errs, errors.New("llm.project and llm.location are required for the vertex provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider))
	}

	if err := c.Session.normalize(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config error: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateServe checks the settings the HTTP server cannot start without.
func (c *Config) ValidateServe() error {
	return c.Session.requireSecret()
}

// LLMClientConfig converts the loaded settings into an llm.Config.
func (c *Config) LLMClientConfig() *llm.Config {
	cfg := llm.DefaultGeminiConfig()
	cfg.Provider = llm.Provider(strings.ToLower(c.LLM.Provider))
	cfg.Project = c.LLM.Project
	cfg.Location = c.LLM.Location

	overrides := map[llm.ModelTier]string{
		llm.TierLite:     c.LLM.LiteModel,
		llm.TierStandard: c.LLM.StandardModel,
		llm.TierAdvanced: c.LLM.AdvancedModel,
	}
	for tier, model := range overrides {
		if model != "" {
			cfg = cfg.WithModel(tier, model)
		}
	}
	return cfg
}
