package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmartex/rebate/types"
)

func TestLoadEnvironmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APP_PORT", "")

	env, err := LoadEnvironment()
	require.NoError(t, err)

	assert.Equal(t, "development", env.AppEnv)
	assert.Equal(t, 3000, env.Port)
	assert.Equal(t, ":3000", env.ListenAddr())
	assert.Equal(t, "http://localhost:3000", env.AppOrigin)
	assert.Equal(t, types.StoreDriverMemory, env.StoreDriver)
	assert.Equal(t, "rebate-development-secret", env.JWTSecret)
	assert.Equal(t, 24*time.Hour, env.SessionTTL)
	assert.Equal(t, "Asia/Shanghai", env.Location().String())
	assert.Equal(t, 5432, env.Database.Port)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ORIGIN", "https://rebate.example.com")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("DATABASE_PORT", "not-a-number")
	t.Setenv("ADMIN_UIDS", "user1, ,user6")

	env, err := LoadEnvironment()
	require.NoError(t, err)

	assert.Equal(t, 8080, env.Port)
	assert.Equal(t, "https://rebate.example.com", env.AppOrigin)
	assert.Equal(t, "s3cret", env.JWTSecret)
	assert.Equal(t, 2*time.Hour, env.SessionTTL)
	assert.Equal(t, time.UTC, env.Location())
	assert.Equal(t, 5432, env.Database.Port)
	assert.Equal(t, []string{"user1", "user6"}, env.AdminUIDs)
}

func TestLoadEnvironmentProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadEnvironment()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	env := &Environment{
		JWTSecret:      "secret",
		StoreDriver:    types.StoreDriverMemory,
		SessionTTL:     time.Hour,
		ReportTimezone: "UTC",
	}
	assert.NoError(t, env.Validate())

	env.StoreDriver = "mysql"
	assert.Error(t, env.Validate())

	env.StoreDriver = types.StoreDriverPostgres
	assert.Error(t, env.Validate())

	env.Database.Host = "localhost"
	assert.NoError(t, env.Validate())

	env.ReportTimezone = "Mars/Olympus"
	assert.Error(t, env.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host:    "localhost",
		Port:    5432,
		User:    "rebate",
		Pass:    "secret",
		Name:    "rebate",
		SSLMode: "disable",
	}

	assert.Equal(t, "host=localhost port=5432 user=rebate password=secret dbname=rebate sslmode=disable", c.DSN())
}

func TestNewLoggerService(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	NewLoggerService()
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	t.Setenv("LOG_LEVEL", "chatty")
	NewLoggerService()
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
}
