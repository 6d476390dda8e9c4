package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DB_DRIVER", "DB_PORT", "CORS_ORIGINS", "RATE_LIMIT_PER_MINUTE", "LEADERBOARD_CACHE_TTL", "SETTLEMENT_LOCK_TTL", "IS_PROD"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8000", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, 30*time.Second, cfg.LeaderboardTTL)
	assert.Equal(t, 10*time.Second, cfg.SettlementLockTTL)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_PORT", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("LEADERBOARD_CACHE_TTL", "1m")
	t.Setenv("SETTLEMENT_LOCK_TTL", "not-a-duration")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.Equal(t, time.Minute, cfg.LeaderboardTTL)
	assert.Equal(t, 10*time.Second, cfg.SettlementLockTTL)
	assert.True(t, cfg.IsProd)
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		DBDriver:   DriverMySQL,
		DBUser:     "game",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "3306",
		DBName:     "rps",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "game:secret@tcp(db:3306)/rps?parseTime=true&loc=UTC", cfg.DSN())

	cfg.DBDriver = DriverPostgres
	cfg.DBPort = "5432"
	assert.Equal(t, "host=db user=game password=secret dbname=rps port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
