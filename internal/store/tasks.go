package store

import (
	"context" // Context for database operations
	"fmt"     // Error wrapping
	"time"    // Expiry comparison

	"rps_game/internal/domain" // Domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Locking clauses
)

type taskRepository struct {
	db *gorm.DB
}

// List returns all tasks
func (r *taskRepository) List(ctx context.Context) ([]domain.Task, error) {
	tasks := []domain.Task{}
	if err := r.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a task
func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Delete removes a task; completion records are kept
func (r *taskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete task %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetForUpdate returns the task locked for the rest of the transaction, or nil
func (r *taskRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&task, "id = ?", id).Error
	if err != nil {
		if err = notFound(err); err != nil {
			return nil, fmt.Errorf("failed to get task %d: %w", id, err)
		}
		return nil, nil
	}
	return &task, nil
}

// ListAvailable returns open tasks the user has not completed
func (r *taskRepository) ListAvailable(ctx context.Context, userID int64, now time.Time) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Select("tasks.*").
		Joins("LEFT JOIN user_tasks ON user_tasks.task_id = tasks.id AND user_tasks.user_id = ?", userID).
		Where("user_tasks.id IS NULL").
		Where("tasks.expired_at > ?", now).
		Where("tasks.repeat_count > 0").
		Order("tasks.id").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available tasks for user %d: %w", userID, err)
	}
	return tasks, nil
}

// ConsumeRepeat decrements repeat_count, never below zero
func (r *taskRepository) ConsumeRepeat(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ? AND repeat_count > 0", id).
		Update("repeat_count", gorm.Expr("repeat_count - 1"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to consume repeat of task %d: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// RecordCompletion inserts a user_tasks row
func (r *taskRepository) RecordCompletion(ctx context.Context, userID, taskID int64) error {
	completion := &domain.UserTask{UserID: userID, TaskID: taskID}
	if err := r.db.WithContext(ctx).Create(completion).Error; err != nil {
		return fmt.Errorf("failed to record task %d for user %d: %w", taskID, userID, err)
	}
	return nil
}
