package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("PHONE_NUMBER_ID", "714448665094548")
	t.Setenv("UPI_ID", "dabba@paytm")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "DabbaXpress", cfg.BrandName)
	assert.Equal(t, 40, cfg.DeliveryETAMinutes)
	assert.Equal(t, "interactive", cfg.RenderMode)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, "8080", cfg.Port)
	assert.NotEmpty(t, cfg.WAVerifyToken, "verify token is generated when unset")
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("UPI_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPI_ID")
}

func TestLoadInvalidRenderMode(t *testing.T) {
	setRequired(t)
	t.Setenv("RENDER_MODE", "carousel")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RENDER_MODE")
}

func TestLoadInvalidSessionBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_BACKEND")
}
