package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citadels-engine/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "citadels.db", cfg.DBPath)
	assert.Equal(t, 256, cfg.QRSize)
	assert.False(t, cfg.Dev)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CITADELS_PORT", "9000")
	t.Setenv("CITADELS_DB_PATH", "/tmp/x.db")
	t.Setenv("CITADELS_DEV", "true")
	t.Setenv("CITADELS_LOG_LEVEL", "debug")
	t.Setenv("CITADELS_BASE_URL", "https://citadels.example")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.True(t, cfg.Dev)
	assert.Equal(t, "https://citadels.example", cfg.BaseURL)

	l, err := cfg.Logger()
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := map[string][2]string{
		"port not a number": {"CITADELS_PORT", "eighty"},
		"port out of range": {"CITADELS_PORT", "70000"},
		"unknown level":     {"CITADELS_LOG_LEVEL", "loud"},
		"tiny qr":           {"CITADELS_QR_SIZE", "8"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
