package config

import (
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	AppPort            string        // Application port
	DBDriver           string        // Database driver: mysql or postgres
	DBUser             string        // Database user
	DBPassword         string        // Database password
	DBHost             string        // Database host
	DBPort             string        // Database port
	DBName             string        // Database name
	DBSSLMode          string        // PostgreSQL sslmode
	RedisAddr          string        // Redis server address
	RedisPass          string        // Redis password
	RedisDB            int           // Redis database number
	IsProd             bool          // Is production environment
	LogLevel           string        // Logrus level name
	BotToken           string        // Telegram bot token used for invoice links
	CORSOrigins        []string      // Allowed CORS origins
	RateLimitPerMinute int           // Requests per client per minute, 0 disables
	LeaderboardTTL     time.Duration // Top-10 cache lifetime, 0 disables
	SettlementLockTTL  time.Duration // Expiry of the per-game settlement lock
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverMySQL))
	return &Config{
		AppPort:            getEnv("APP_PORT", "8000"),                           // Application port
		DBDriver:           driver,                                               // Database driver
		DBUser:             os.Getenv("DB_USER"),                                 // Database user
		DBPassword:         os.Getenv("DB_PASSWORD"),                             // Database password
		DBHost:             getEnv("DB_HOST", "localhost"),                       // Database host
		DBPort:             getEnv("DB_PORT", DefaultPort(driver)),               // Database port
		DBName:             os.Getenv("DB_NAME"),                                 // Database name
		DBSSLMode:          getEnv("DB_SSLMODE", "disable"),                      // PostgreSQL sslmode
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),               // Redis server address
		RedisPass:          os.Getenv("REDIS_PASS"),                              // Redis password
		RedisDB:            redisDB,                                              // Redis database number
		IsProd:             os.Getenv("IS_PROD") == "true",                       // Is production environment
		LogLevel:           getEnv("LOG_LEVEL", "info"),                          // Log level
		BotToken:           os.Getenv("BOT_TOKEN"),                               // Telegram bot token
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),               // Allowed origins
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 120),                 // Rate limit
		LeaderboardTTL:     getDuration("LEADERBOARD_CACHE_TTL", 30*time.Second), // Leaderboard cache TTL
		SettlementLockTTL:  getDuration("SETTLEMENT_LOCK_TTL", 10*time.Second),   // Settlement lock expiry
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=UTC"
}

// DefaultPort returns the well-known port of a driver
func DefaultPort(driver string) string {
	if driver == DriverPostgres {
		return "5432"
	}
	return "3306"
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses an integer variable, falling back on absence or garbage
func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// getDuration parses a Go duration variable, falling back on absence or garbage
func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// splitList splits a comma separated list, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
