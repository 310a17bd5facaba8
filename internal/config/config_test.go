package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("BACKEND", "")
	t.Setenv("SCRIPT_URL", "https://script.example/exec")
	t.Setenv("DB_DSN", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("BACKEND_TIMEOUT", "")
	t.Setenv("SLOTS_REFRESH_INTERVAL", "")
	t.Setenv("ADMIN_TOKEN_TTL", "")
	t.Setenv("ADMIN_IDS", "")
	t.Setenv("ADMIN_SECRET_HASH", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("ENV", "")
}

func TestFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, BackendScript, cfg.Backend)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "Europe/Moscow", cfg.Timezone.String())
	assert.Equal(t, 30*time.Second, cfg.BackendTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 12*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.False(t, cfg.APIEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BACKEND", "Postgres")
	t.Setenv("DB_DSN", "postgres://localhost/booking")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("ADMIN_IDS", "1, 2,3")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("ADMIN_SECRET_HASH", "hash")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, time.UTC.String(), cfg.Timezone.String())
	assert.Equal(t, 5*time.Second, cfg.BackendTimeout)
	assert.Equal(t, []int64{1, 2, 3}, cfg.AdminIDs)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.APIEnabled())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing script url", map[string]string{"SCRIPT_URL": ""}},
		{"missing dsn", map[string]string{"BACKEND": "postgres"}},
		{"unknown backend", map[string]string{"BACKEND": "excel"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}},
		{"bad duration", map[string]string{"BACKEND_TIMEOUT": "soon"}},
		{"bad admin id", map[string]string{"ADMIN_IDS": "1,abc"}},
		{"api admin without jwt", map[string]string{"HTTP_ADDR": ":8080", "ADMIN_SECRET_HASH": "hash"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestParseAdminIDs_Empty(t *testing.T) {
	ids, err := ParseAdminIDs("  ")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
