package config_test

import (
	"testing"

	"github.com/luminapath/lumina-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "gemini,perplexity", cfg.LLM.ProviderOrder)
	assert.Equal(t, 3, cfg.LLM.MaxAttempts)
	assert.Equal(t, 2, cfg.LLM.RetryBackoffSeconds)
	assert.Equal(t, 30, cfg.LLM.ExplanationTimeoutSeconds)
	assert.Equal(t, 60, cfg.LLM.ReportTimeoutSeconds)

	// Absent credentials must not fail loading.
	assert.Empty(t, cfg.LLM.GeminiAPIKey)
	assert.Empty(t, cfg.LLM.PerplexityAPIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LUMINA_SERVER_PORT", "9090")
	t.Setenv("LUMINA_SERVER_LOG_LEVEL", "debug")
	t.Setenv("LUMINA_LLM_GEMINI_API_KEY", "test-key")
	t.Setenv("LUMINA_LLM_PROVIDER_ORDER", "perplexity,gemini")
	t.Setenv("LUMINA_LLM_MAX_ATTEMPTS", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "test-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "perplexity,gemini", cfg.LLM.ProviderOrder)
	assert.Equal(t, 5, cfg.LLM.MaxAttempts)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "LUMINA_SERVER_PORT", value: "70000"},
		{name: "unknown log level", key: "LUMINA_SERVER_LOG_LEVEL", value: "verbose"},
		{name: "zero attempts", key: "LUMINA_LLM_MAX_ATTEMPTS", value: "0"},
		{name: "negative backoff", key: "LUMINA_LLM_RETRY_BACKOFF_SECONDS", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	t.Parallel()

	llm := config.LLMConfig{
		RetryBackoffSeconds:       2,
		ExplanationTimeoutSeconds: 30,
		ReportTimeoutSeconds:      60,
	}

	assert.Equal(t, "2s", llm.RetryBackoff().String())
	assert.Equal(t, "30s", llm.ExplanationTimeout().String())
	assert.Equal(t, "1m0s", llm.ReportTimeout().String())
}
