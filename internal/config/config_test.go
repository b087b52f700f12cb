package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseURLKinds(t *testing.T) {
	pg := DatabaseConfig{URL: "postgres://u:p@db:5432/crm"}
	assert.True(t, pg.IsPostgres())
	assert.False(t, pg.IsMySQL())
	assert.Equal(t, "postgres://u:p@db:5432/crm?sslmode=disable", pg.GetPostgresDSN())

	keep := DatabaseConfig{URL: "postgresql://db/crm?sslmode=require"}
	assert.Equal(t, "postgresql://db/crm?sslmode=require", keep.GetPostgresDSN())

	lite := DatabaseConfig{URL: "sqlite:///./data/crm.db"}
	assert.False(t, lite.IsPostgres())
	assert.Equal(t, "./data/crm.db", lite.GetSQLitePath())
}

func TestGetMySQLDSN(t *testing.T) {
	c := DatabaseConfig{URL: "mysql://crm:secret@db/enquiries"}
	require.True(t, c.IsMySQL())
	dsn, err := c.GetMySQLDSN()
	require.NoError(t, err)
	assert.Equal(t, "crm:secret@tcp(db:3306)/enquiries?charset=utf8mb4&loc=UTC&parseTime=true", dsn)

	bad := DatabaseConfig{URL: "mysql://%zz"}
	_, err = bad.GetMySQLDSN()
	assert.Error(t, err)
}

func TestFollowUpLocation(t *testing.T) {
	loc, err := FollowUpConfig{Timezone: "Local"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = FollowUpConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = FollowUpConfig{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FOLLOW_UP_SCAN_INTERVAL", "15m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("QUEUE_ENABLED", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 15*time.Minute, cfg.FollowUp.Interval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Queue.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiry())
	assert.Same(t, cfg, Get())
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string][2]string{
		"log format":    {"LOG_FORMAT", "xml"},
		"timezone":      {"FOLLOW_UP_TIMEZONE", "Nowhere/Town"},
		"upcoming days": {"FOLLOW_UP_UPCOMING_DAYS", "-1"},
		"token expiry":  {"ACCESS_TOKEN_EXPIRE_MINUTES", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
