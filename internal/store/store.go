package store

import (
	"context"      // Context for database operations
	"database/sql" // Transaction isolation levels
	"errors"       // Error inspection

	"rps_game/internal/service" // Repository contracts

	"github.com/go-sql-driver/mysql" // MySQL error codes
	"github.com/jackc/pgx/v5/pgconn" // PostgreSQL error codes
	"github.com/sirupsen/logrus"     // Logging library
	"gorm.io/gorm"                   // GORM ORM library
)

// maxAttempts bounds how often a unit of work is replayed after a serialization conflict
const maxAttempts = 3

// amountExpr casts a bound decimal the same way on MySQL and PostgreSQL
const amountExpr = "CAST(? AS DECIMAL(14,2))"

// Store implements service.Store on top of GORM
type Store struct {
	db *gorm.DB // Either the pool or a transaction
}

// New creates a store bound to the connection pool
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Users returns the user repository
func (s *Store) Users() service.UserRepository {
	return &userRepository{db: s.db}
}

// Games returns the game repository
func (s *Store) Games() service.GameRepository {
	return &gameRepository{db: s.db}
}

// Tasks returns the task repository
func (s *Store) Tasks() service.TaskRepository {
	return &taskRepository{db: s.db}
}

// Atomic runs fn in a serializable transaction. Returning an error from fn rolls it back
// When the database aborts the transaction as a serialization conflict or deadlock, fn is
// run again from scratch, so it must not carry state over from a previous attempt
func (s *Store) Atomic(ctx context.Context, fn func(r service.Repositories) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&Store{db: tx}) // Repositories share the transaction
		}, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if !retryable(err) || ctx.Err() != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Transaction conflict, retrying")
	}
	return err
}

// retryable reports whether err is a transient conflict the database asks us to retry
func retryable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01" // serialization_failure, deadlock_detected
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1213 || myErr.Number == 1205 // ER_LOCK_DEADLOCK, ER_LOCK_WAIT_TIMEOUT
	}
	return false
}

// notFound maps gorm.ErrRecordNotFound to a nil error so callers can test for a nil row
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
