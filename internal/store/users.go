package store

import (
	"context" // Context for database operations
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"rps_game/internal/domain"  // Domain models
	"rps_game/internal/service" // Repository errors

	"github.com/shopspring/decimal" // Fixed-point money
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Locking clauses
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) get(ctx context.Context, id int64, lock bool) (*domain.User, error) {
	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"}) // SELECT ... FOR UPDATE
	}
	var user domain.User
	if err := query.First(&user, "id = ?", id).Error; err != nil {
		if err = notFound(err); err != nil {
			return nil, fmt.Errorf("failed to get user %d: %w", id, err)
		}
		return nil, nil // Not found
	}
	return &user, nil
}

// GetByID returns the user or nil
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate returns the user locked for the rest of the transaction, or nil
func (r *userRepository) GetForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, id, true)
}

// Create inserts a user row. A taken id surfaces as service.ErrUserExists
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return service.ErrUserExists
		}
		return fmt.Errorf("failed to create user %d: %w", user.ID, err)
	}
	return nil
}

// List returns all users in registration order
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListByIDs returns the users among ids in no particular order; unknown ids are skipped
func (r *userRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	users := []domain.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users by id: %w", err)
	}
	return users, nil
}

// ListReferrals returns users whose referrer is referrerID
func (r *userRepository) ListReferrals(ctx context.Context, referrerID int64) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at, id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals of %d: %w", referrerID, err)
	}
	return users, nil
}

// AddBalance adds amount to the balance with no floor check
func (r *userRepository) AddBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + "+amountExpr, amount.StringFixed(2)))
	if result.Error != nil {
		return fmt.Errorf("failed to add balance for user %d: %w", id, result.Error)
	}
	// MySQL reports zero affected rows for a no-op update, so only non-zero amounts are checked
	if result.RowsAffected == 0 && !amount.IsZero() {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

// DebitBalance subtracts amount only when the balance covers it
func (r *userRepository) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) (bool, error) {
	value := amount.StringFixed(2)
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ? AND balance >= "+amountExpr, id, value).
		Update("balance", gorm.Expr("balance - "+amountExpr, value))
	if result.Error != nil {
		return false, fmt.Errorf("failed to debit user %d: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// IncrementWins bumps won_games by one
func (r *userRepository) IncrementWins(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("won_games", gorm.Expr("won_games + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment wins for user %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d not found", id)
	}
	return nil
}

// TopByWins returns up to limit users ordered by won games, ties by id
func (r *userRepository) TopByWins(ctx context.Context, limit int) ([]domain.User, error) {
	users := []domain.User{}
	err := r.db.WithContext(ctx).
		Order("won_games DESC, id").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top users: %w", err)
	}
	return users, nil
}

// CountWithMoreWins counts users strictly ahead of wins
func (r *userRepository) CountWithMoreWins(ctx context.Context, wins int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("won_games > ?", wins).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users above %d wins: %w", wins, err)
	}
	return count, nil
}
