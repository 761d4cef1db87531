package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test-1234567890")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "meal-planner", cfg.App.Name)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Store.Addr)
	assert.Equal(t, 2, cfg.Planner.DefaultImportServings)
	assert.Equal(t, 60*time.Second, cfg.Planner.CategorizeTimeout)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "sk-or-test-1234567890", cfg.OpenRouter.APIKey)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test-1234567890")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_QUEUE_WORKERS", "4")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Queue.Workers)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing api key",
			env:     map[string]string{"OPENROUTER_API_KEY": ""},
			wantErr: "openrouter api key is required",
		},
		{
			name:    "unknown store driver",
			env:     map[string]string{"OPENROUTER_API_KEY": "sk-or-test-1234567890", "STORE_DRIVER": "etcd"},
			wantErr: "unknown store driver",
		},
		{
			name:    "zero queue workers",
			env:     map[string]string{"OPENROUTER_API_KEY": "sk-or-test-1234567890", "APP_QUEUE_WORKERS": "0"},
			wantErr: "invalid queue workers",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadConfig_OpenRouterDisabledNeedsNoKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENROUTER_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.OpenRouter.Enabled)
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "sk-o...7890", MaskAPIKey("sk-or-test-1234567890"))
}
