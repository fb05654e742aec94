package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNFromComponents(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "svc",
		Password: "pw",
		DBName:   "eventboard",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://svc:pw@db.internal:5433/eventboard?sslmode=require", c.DSN())
}

func TestDSNPrefersURL(t *testing.T) {
	c := DatabaseConfig{
		URL:  "postgres://elsewhere:5432/other?sslmode=disable",
		Host: "ignored",
	}
	assert.Equal(t, "postgres://elsewhere:5432/other?sslmode=disable", c.DSN())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("READ_TIMEOUT_SEC", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://test:5432/db")
	t.Setenv("READ_TIMEOUT_SEC", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://test:5432/db", cfg.Database.DSN())
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
}
