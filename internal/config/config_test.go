package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/incidents")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.IncidentCacheTTL)
	assert.Equal(t, "soporte@municipalidad.local", cfg.MailSupportAddress)
	assert.Equal(t, "no-reply@municipalidad.local", cfg.MailNoReplyAddress)
	assert.Equal(t, int64(10*1024*1024), cfg.EvidenceMaxBytes)
	assert.Equal(t, 3, cfg.WebhookMaxRetries)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/incidents")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("EVIDENCE_MAX_BYTES", "1024")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, int64(1024), cfg.EvidenceMaxBytes)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/incidents")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
