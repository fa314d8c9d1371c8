package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "PORT", "DATABASE_URL", "LEDGER_COMPANIES", "LEDGER_TIMEZONE",
		"LEDGER_DATE_LAYOUT", "LEDGER_CURRENCY", "LEDGER_STRICT_AMOUNTS",
		"JWT_SECRET", "JWT_ACCESS_TTL", "OWNER_PASSWORD_HASH", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ledger.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"Avon", "Scentia", "Zermat"}, cfg.Companies)
	assert.Equal(t, "America/Managua", cfg.Location.String())
	assert.Equal(t, "NIO", cfg.Currency)
	assert.False(t, cfg.StrictAmounts)
	assert.Equal(t, 24*time.Hour, cfg.JWTAccessTTL)
	assert.False(t, cfg.AuthEnabled())
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LEDGER_COMPANIES", " Avon , Natura ,")
	t.Setenv("LEDGER_TIMEZONE", "UTC")
	t.Setenv("LEDGER_CURRENCY", "usd")
	t.Setenv("LEDGER_STRICT_AMOUNTS", "yes")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("OWNER_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"Avon", "Natura"}, cfg.Companies)
	assert.Equal(t, time.UTC.String(), cfg.Location.String())
	assert.Equal(t, "USD", cfg.Currency)
	assert.True(t, cfg.StrictAmounts)
	assert.True(t, cfg.AuthEnabled())
	assert.Len(t, cfg.CORSAllowedOrigins, 2)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad timezone":       {"LEDGER_TIMEZONE": "Mars/Olympus"},
		"duplicate company":  {"LEDGER_COMPANIES": "Avon,Avon"},
		"bad currency":       {"LEDGER_CURRENCY": "CORDOBA"},
		"bad ttl":            {"JWT_ACCESS_TTL": "soon"},
		"prod without hash":  {"APP_ENV": "production", "JWT_SECRET": "real"},
		"prod default token": {"APP_ENV": "release", "OWNER_PASSWORD_HASH": "x"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
