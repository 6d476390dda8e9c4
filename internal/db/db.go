package db

import (
	"fmt"  // Error wrapping
	"time" // Slow query threshold

	"rps_game/internal/config" // Custom package for configuration

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // PostgreSQL driver for GORM (pgx)
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger
)

// Open connects to the configured database
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN())
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
	return OpenDialector(dialector)
}

// OpenDialector opens a GORM handle whose logs go through logrus
func OpenDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	gormLogger := logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond, // Log queries slower than this
		LogLevel:                  logger.Warn,            // Only warnings and errors
		IgnoreRecordNotFoundError: true,                   // Missing rows are expected lookups
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true, // Unique violations become gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return db, nil
}
