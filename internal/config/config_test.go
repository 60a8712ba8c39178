package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/highmark/consult-copilot/internal/llm"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_key": "file-key",
		"model_advanced": "gemini-exp",
		"port": 9090,
		"database_url": "postgres://localhost/consult"
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "gemini-exp", cfg.ModelAdvanced)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/consult", cfg.DatabaseURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("LLM_BASE_URL", "https://proxy.example.com")
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("PORT", "8181")

	cfg := FromEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "https://proxy.example.com", cfg.BaseURL)
	assert.Equal(t, "postgres://localhost/db", cfg.DatabaseURL)
	assert.Equal(t, 8181, cfg.Port)
}

func TestFromEnv_BadPortIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	assert.Equal(t, 0, FromEnv().Port)
}

func TestMerge(t *testing.T) {
	base := &Config{APIKey: "base-key", Port: 8080}
	merged := base.Merge(&Config{Port: 9090, DatabaseURL: "postgres://x"})

	assert.Equal(t, "base-key", merged.APIKey)
	assert.Equal(t, 9090, merged.Port)
	assert.Equal(t, "postgres://x", merged.DatabaseURL)

	// Original untouched
	assert.Equal(t, 8080, base.Port)

	// Nil overlay is a copy
	assert.Equal(t, base, base.Merge(nil))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{Port: 8080}).Validate())
	assert.NoError(t, (&Config{}).Validate())
	assert.Error(t, (&Config{Port: -1}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
}

func TestLLMConfig_AppliesOverrides(t *testing.T) {
	cfg := &Config{
		APIKey:        "k",
		BaseURL:       "https://proxy.example.com",
		ModelAdvanced: "custom-pro",
	}

	llmCfg := cfg.LLMConfig()
	assert.Equal(t, "k", llmCfg.APIKey)
	assert.Equal(t, "https://proxy.example.com", llmCfg.BaseURL)
	assert.Equal(t, "custom-pro", llmCfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash", llmCfg.GetModel(llm.TierStandard))
}
