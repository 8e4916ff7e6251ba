package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "2h", cfg.JWT.AccessExpiration)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "0 0 1 * *", cfg.Scheduler.AccrualSpec)
	assert.Equal(t, "30 0 * * *", cfg.Scheduler.LeaveStatusSpec)
	assert.Equal(t, AssistantDriverPostgres, cfg.Assistant.Driver)
	assert.Equal(t, 2, cfg.Assistant.ExampleCount)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_MissingPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_PORT")
}

func TestLoad_AssistantDriver(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ASSISTANT_ENABLED", "true")
	t.Setenv("ASSISTANT_DB_DRIVER", "mysql")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ASSISTANT_DB_DRIVER")

	t.Setenv("ASSISTANT_DB_DRIVER", AssistantDriverSQLite)
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Assistant.Enabled)
	assert.Equal(t, AssistantDriverSQLite, cfg.Assistant.Driver)
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "hr", Password: "pw", Name: "hrdb", SSLMode: "require",
	}}
	assert.Equal(t, "postgres://hr:pw@db:5433/hrdb?sslmode=require", cfg.DatabaseURL())
}

func TestSchedulerConfig_Location(t *testing.T) {
	loc, err := SchedulerConfig{Timezone: "Local"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = SchedulerConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = SchedulerConfig{Timezone: "Mars/Olympus_Mons"}.Location()
	assert.Error(t, err)
}
