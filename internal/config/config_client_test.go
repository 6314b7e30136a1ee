package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientConfig_Defaults(t *testing.T) {
	t.Setenv("ACCOUNTCTL_SERVER_URL", "")
	t.Setenv("ACCOUNTCTL_TOKEN", "")

	cfg, err := GetClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Empty(t, cfg.Token)
	assert.False(t, cfg.Debug)
}

func TestGetClientConfig_FromEnv(t *testing.T) {
	t.Setenv("ACCOUNTCTL_SERVER_URL", "https://accounts.example.com")
	t.Setenv("ACCOUNTCTL_REQUEST_TIMEOUT", "3s")
	t.Setenv("ACCOUNTCTL_TOKEN", "jwt")
	t.Setenv("ACCOUNTCTL_DEBUG", "true")

	cfg, err := GetClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.example.com", cfg.ServerURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "jwt", cfg.Token)
	assert.True(t, cfg.Debug)
}

func TestGetClientConfig_Invalid(t *testing.T) {
	t.Setenv("ACCOUNTCTL_REQUEST_TIMEOUT", "-1s")

	_, err := GetClientConfig()
	assert.ErrorIs(t, err, ErrInvalidClientConfigs)
}

func TestGetClientConfig_BadDuration(t *testing.T) {
	t.Setenv("ACCOUNTCTL_REQUEST_TIMEOUT", "soon")

	_, err := GetClientConfig()
	require.Error(t, err)
}
