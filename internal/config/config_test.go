package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blkdmnd/visual-thesis/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ALLOWED_ORIGINS", "RATE_LIMIT", "RATE_BURST", "LLM_PROVIDER", "GEMINI_API_KEY",
		"GOOGLE_API_KEY", "VERTEX_PROJECT", "GOOGLE_CLOUD_PROJECT", "VERTEX_LOCATION",
		"GOOGLE_CLOUD_LOCATION", "LLM_MODEL", "SESSION_SECRET", "SESSION_TTL", "SESSION_STORE_SIZE",
		"USE_BROWSER", "THEME_FILE", "VERBOSE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.StandardModel)
	assert.Equal(t, DefaultSessionTTL, cfg.Session.TTL)
	assert.Equal(t, 1024, cfg.Session.StoreSize)
	assert.False(t, cfg.Fetch.UseBrowser)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("LLM_MODEL", "gemini-custom")
	t.Setenv("USE_BROWSER", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "key-123", cfg.LLM.APIKey)
	assert.Equal(t, testSecret, cfg.Session.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "gemini-custom", cfg.LLM.StandardModel)
	assert.True(t, cfg.Fetch.UseBrowser)
	assert.NoError(t, cfg.ValidateServe())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 3000
  allowed_origins: ["https://example.com"]
llm:
  provider: vertex
  project: my-project
  location: europe-west4
theme:
  file: /tmp/theme.json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "vertex", cfg.LLM.Provider)
	assert.Equal(t, "/tmp/theme.json", cfg.Theme.File)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server": {"port": 3000}}`), 0o600))
	t.Setenv("PORT", "4000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestLoad_FileNotFound(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:  ServerConfig{Port: 8080, RateLimit: 1, RateBurst: 5},
			LLM:     LLMConfig{Provider: "gemini"},
			Session: SessionConfig{TTL: time.Hour, StoreSize: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad rate", func(c *Config) { c.Server.RateBurst = 0 }, "rate_burst"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "openai" }, "unsupported llm.provider"},
		{"vertex without project", func(c *Config) { c.LLM.Provider = "vertex" }, "llm.project"},
		{"short ttl", func(c *Config) { c.Session.TTL = time.Second }, "session.ttl"},
		{"short secret", func(c *Config) { c.Session.Secret = "short" }, "at least 32 characters"},
		{"empty store", func(c *Config) { c.Session.StoreSize = 0 }, "store_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateServe_RequiresSecret(t *testing.T) {
	cfg := Config{}
	err := cfg.ValidateServe()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLLMClientConfig(t *testing.T) {
	cfg := Config{LLM: LLMConfig{
		Provider:      "Vertex",
		Project:       "p",
		Location:      "us-east1",
		StandardModel: "gemini-custom",
	}}

	client := cfg.LLMClientConfig()
	assert.Equal(t, llm.ProviderVertex, client.Provider)
	assert.Equal(t, "p", client.Project)
	assert.Equal(t, "us-east1", client.Location)
	assert.Equal(t, "gemini-custom", client.GetModel(llm.TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", client.GetModel(llm.TierLite))
}
