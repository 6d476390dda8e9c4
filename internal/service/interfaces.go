package service

import (
	"context" // Context for repository calls
	"time"    // Task expiry and cache TTLs

	"rps_game/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
)

// UserRepository defines the ledger/account data access
type UserRepository interface {
	// GetByID returns the user or nil when it does not exist
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetForUpdate is GetByID with a row lock held until the unit of work ends
	GetForUpdate(ctx context.Context, id int64) (*domain.User, error)

	// Create inserts a new user row
	Create(ctx context.Context, user *domain.User) error

	// List returns all users in registration order
	List(ctx context.Context) ([]domain.User, error)

	// ListByIDs returns the existing users among ids, in any order
	ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error)

	// ListReferrals returns the users referred by referrerID
	ListReferrals(ctx context.Context, referrerID int64) ([]domain.User, error)

	// AddBalance adds amount (possibly negative) to the balance without a floor check
	AddBalance(ctx context.Context, id int64, amount decimal.Decimal) error

	// DebitBalance subtracts amount only if the balance covers it and reports whether it did
	DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) (bool, error)

	// IncrementWins bumps the won games counter by one
	IncrementWins(ctx context.Context, id int64) error

	// TopByWins returns up to limit users ordered by won games, most first
	TopByWins(ctx context.Context, limit int) ([]domain.User, error)

	// CountWithMoreWins counts users with strictly more won games than wins
	CountWithMoreWins(ctx context.Context, wins int) (int64, error)
}

// GameRepository defines the game data access
type GameRepository interface {
	// Create inserts a new unsettled game
	Create(ctx context.Context, game *domain.Game) error

	// GetForUpdate returns the game with a row lock, or nil when it does not exist
	GetForUpdate(ctx context.Context, id int64) (*domain.Game, error)

	// SetResult writes the result only if the game is still unsettled and reports whether it did
	SetResult(ctx context.Context, id int64, result domain.Result) (bool, error)

	// Delete removes the game and returns it, or nil when it does not exist
	Delete(ctx context.Context, id int64) (*domain.Game, error)

	// ListByUser returns every game owned by the user
	ListByUser(ctx context.Context, userID int64) ([]domain.Game, error)

	// ListOpen returns unsettled games joined with their owner's name
	ListOpen(ctx context.Context) ([]domain.OpenGame, error)
}

// TaskRepository defines the task data access
type TaskRepository interface {
	// List returns all tasks
	List(ctx context.Context) ([]domain.Task, error)

	// Create inserts a task
	Create(ctx context.Context, task *domain.Task) error

	// Delete removes a task and reports whether it existed
	Delete(ctx context.Context, id int64) (bool, error)

	// GetForUpdate returns the task with a row lock, or nil when it does not exist
	GetForUpdate(ctx context.Context, id int64) (*domain.Task, error)

	// ListAvailable returns tasks with repeats left, not expired at now and not completed by the user
	ListAvailable(ctx context.Context, userID int64, now time.Time) ([]domain.Task, error)

	// ConsumeRepeat decrements repeat_count if it is positive and reports whether it did
	ConsumeRepeat(ctx context.Context, id int64) (bool, error)

	// RecordCompletion inserts a user_tasks row
	RecordCompletion(ctx context.Context, userID, taskID int64) error
}

// Repositories groups the repositories bound to one database handle
type Repositories interface {
	Users() UserRepository
	Games() GameRepository
	Tasks() TaskRepository
}

// Store gives direct reads and atomic units of work
// Every repository obtained from the Repositories passed to fn shares one transaction;
// returning an error from fn rolls all of it back
type Store interface {
	Repositories
	Atomic(ctx context.Context, fn func(r Repositories) error) error
}

// Locker serializes work on a key across processes
type Locker interface {
	// Lock blocks until the key is held or ctx ends; the returned func releases it
	Lock(ctx context.Context, key string) (func(), error)
}

// Cache is a read-through cache for query results
type Cache interface {
	// Get loads key into dest and reports whether it was present
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
