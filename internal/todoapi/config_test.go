package todoapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://api-todo-list-pbw.vercel.app", cfg.BaseURL)
	assert.False(t, cfg.LogCalls)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TUGASIN_API_URL", "http://localhost:3000/")
	t.Setenv("TUGASIN_API_LOG_CALLS", "true")

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_InvalidBoolIgnored(t *testing.T) {
	t.Setenv("TUGASIN_API_LOG_CALLS", "sometimes")

	cfg := LoadConfig()
	assert.False(t, cfg.LogCalls)
}
