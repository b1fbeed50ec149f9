package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "CACHE_TTL", "AI_PROVIDER", "AI_SERVICE_URL", "AI_TIMEOUT", "EXPORT_DIR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "service", cfg.AIProvider)
	assert.Equal(t, "http://ai-service:8000", cfg.AIServiceURL)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 60*time.Second, cfg.AITimeout)
	assert.Equal(t, "exports", cfg.ExportDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("AI_SERVICE_URL", "http://localhost:9000/")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:9000", cfg.AIServiceURL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("AI_TIMEOUT", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "AI_TIMEOUT")
}

func TestValidate(t *testing.T) {
	cfg := &Config{AIProvider: "gemini", ExportDir: "out"}
	assert.ErrorContains(t, cfg.Validate(), "GEMINI_API_KEY")

	cfg.GeminiAPIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.AIProvider = "openai"
	assert.ErrorContains(t, cfg.Validate(), "unknown AI_PROVIDER")
}
