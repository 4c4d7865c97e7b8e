package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "posadmin_sid", cfg.SessionCookieName)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 15*time.Second, cfg.APITimeout())
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE_URL", "http://api.interna:4000/api")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SMTP_HOST", "smtp.tienda.test")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.1.0.0/16")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://api.interna:4000/api", cfg.APIBaseURL)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, "smtp.tienda.test", cfg.SMTPHost)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, []string{"10.0.0.1", "10.1.0.0/16"}, cfg.TrustedProxies)
}

func TestSessionTTL_NeverZero(t *testing.T) {
	assert.Equal(t, 8*time.Hour, (&Config{SessionTTLHours: 0}).SessionTTL())
	assert.Equal(t, 8*time.Hour, (&Config{SessionTTLHours: -3}).SessionTTL())
	assert.Equal(t, 2*time.Hour, (&Config{SessionTTLHours: 2}).SessionTTL())
}
