package store

import (
	"context" // Context for database operations
	"fmt"     // Error wrapping

	"rps_game/internal/domain" // Domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Locking clauses
)

type gameRepository struct {
	db *gorm.DB
}

// Create inserts an unsettled game
func (r *gameRepository) Create(ctx context.Context, game *domain.Game) error {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return fmt.Errorf("failed to create game for user %d: %w", game.UserID, err)
	}
	return nil
}

// GetForUpdate returns the game locked for the rest of the transaction, or nil
func (r *gameRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&game, "id = ?", id).Error
	if err != nil {
		if err = notFound(err); err != nil {
			return nil, fmt.Errorf("failed to get game %d: %w", id, err)
		}
		return nil, nil
	}
	return &game, nil
}

// SetResult settles the game if it is still open
func (r *gameRepository) SetResult(ctx context.Context, id int64, result domain.Result) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Game{}).
		Where("id = ? AND result IS NULL", id). // At most once
		Update("result", result)
	if res.Error != nil {
		return false, fmt.Errorf("failed to set result of game %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Delete removes a game and returns it, or nil when absent
func (r *gameRepository) Delete(ctx context.Context, id int64) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&game, "id = ?", id).Error
	if err != nil {
		if err = notFound(err); err != nil {
			return nil, fmt.Errorf("failed to get game %d: %w", id, err)
		}
		return nil, nil
	}
	if err := r.db.WithContext(ctx).Delete(&domain.Game{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	return &game, nil
}

// ListByUser returns all games of a user, oldest first
func (r *gameRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Game, error) {
	games := []domain.Game{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list games of user %d: %w", userID, err)
	}
	return games, nil
}

// ListOpen returns unsettled games joined with the owner's name
func (r *gameRepository) ListOpen(ctx context.Context) ([]domain.OpenGame, error) {
	games := []domain.OpenGame{}
	err := r.db.WithContext(ctx).
		Table("games").
		Select("games.id, games.bet, games.symbol, games.result, games.user_id, games.created_at, users.name AS user_name").
		Joins("JOIN users ON users.id = games.user_id").
		Where("games.result IS NULL").
		Order("games.id").
		Scan(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list open games: %w", err)
	}
	return games, nil
}
