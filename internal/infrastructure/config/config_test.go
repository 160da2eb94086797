package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key-1234567890")
	t.Setenv("APP_ENV", "")
	t.Setenv("CORS_ORIGINS", "")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.EnvironmentMode())
	assert.True(t, cfg.App.Debug)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Gemini.Timeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 128, cfg.Cache.MaxSize)
	assert.True(t, cfg.Cache.CacheFailures)
	assert.Equal(t, 12000, cfg.Prompt.MaxChars)
	assert.Empty(t, cfg.CORS.AllowedOrigins())
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("CACHE_MAX_SIZE", "4")
	t.Setenv("CACHE_FAILURES", "false")
	t.Setenv("PROMPT_MAX_CHARS", "500")
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173  https://app.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 4, cfg.Cache.MaxSize)
	assert.False(t, cfg.Cache.CacheFailures)
	assert.Equal(t, 500, cfg.Prompt.MaxChars)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORS.AllowedOrigins())
}

func TestLoadConfig_ProductionCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		wantErr bool
	}{
		{name: "empty origins", origins: "", wantErr: true},
		{name: "wildcard", origins: "https://app.example.com *", wantErr: true},
		{name: "explicit origins", origins: "https://app.example.com", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("APP_ENV", "Production")
			t.Setenv("CORS_ORIGINS", tt.origins)

			cfg, err := LoadConfig()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsecureCORS)
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.IsProduction())
			assert.False(t, cfg.App.Debug)
		})
	}
}

func TestLoadConfig_DevelopmentAllowsWildcard(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "*")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins())
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "abcd...wxyz", MaskAPIKey("abcdefghijklmnopqrstuvwxyz"))
}
