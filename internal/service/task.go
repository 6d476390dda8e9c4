package service

import (
	"context" // Context for store calls
	"fmt"     // Error wrapping
	"strings" // Name normalization
	"time"    // Expiry checks

	"rps_game/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
)

// TaskService manages reward tasks and their completion
type TaskService struct {
	store Store
	now   func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(store Store) *TaskService {
	return &TaskService{
		store: store,
		now:   time.Now,
	}
}

// List returns all tasks
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.Tasks().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create adds a task. A nil repeatCount means a single completion
func (s *TaskService) Create(ctx context.Context, name string, expiredAt time.Time, reward decimal.Decimal, repeatCount *int) (*domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidTask)
	}
	if reward.IsNegative() {
		return nil, fmt.Errorf("%w: reward must not be negative", ErrInvalidTask)
	}
	reward = reward.Round(2)
	if !domain.AmountInRange(reward) {
		return nil, ErrAmountOutOfRange
	}
	repeats := 1
	if repeatCount != nil {
		repeats = *repeatCount
	}
	if repeats < 0 {
		return nil, fmt.Errorf("%w: repeat_count must not be negative", ErrInvalidTask)
	}

	task := &domain.Task{
		Name:        name,
		ExpiredAt:   expiredAt,
		Reward:      reward,
		RepeatCount: repeats,
	}
	if err := s.store.Tasks().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"task_id":      task.ID,
		"reward":       task.Reward.StringFixed(2),
		"repeat_count": task.RepeatCount,
	}).Info("Task created")

	return task, nil
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, taskID int64) error {
	deleted, err := s.store.Tasks().Delete(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", taskID, err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	logrus.WithField("task_id", taskID).Info("Task deleted")
	return nil
}

// ListAvailable returns the tasks the user can still see: repeats left,
// not expired and not yet completed by this user
func (s *TaskService) ListAvailable(ctx context.Context, userID int64) ([]domain.Task, error) {
	tasks, err := s.store.Tasks().ListAvailable(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for user %d: %w", userID, err)
	}
	return tasks, nil
}

// FinishTask records a completion, credits the reward and consumes one repeat
// Prior completions by the same user are not checked
func (s *TaskService) FinishTask(ctx context.Context, userID, taskID int64) error {
	var reward decimal.Decimal
	err := s.store.Atomic(ctx, func(r Repositories) error {
		task, err := r.Tasks().GetForUpdate(ctx, taskID)
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}
		if task == nil {
			return ErrTaskNotFound
		}
		if task.RepeatCount <= 0 {
			return ErrNoRepeatsLeft
		}

		user, err := r.Users().GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return ErrUserNotFound
		}
		if !domain.AmountInRange(user.Balance.Add(task.Reward)) {
			return ErrAmountOutOfRange
		}

		if err := r.Tasks().RecordCompletion(ctx, userID, taskID); err != nil {
			return fmt.Errorf("failed to record completion: %w", err)
		}
		if err := r.Users().AddBalance(ctx, userID, task.Reward); err != nil {
			return fmt.Errorf("failed to credit reward: %w", err)
		}
		consumed, err := r.Tasks().ConsumeRepeat(ctx, taskID)
		if err != nil {
			return fmt.Errorf("failed to consume repeat: %w", err)
		}
		if !consumed {
			return ErrNoRepeatsLeft
		}

		reward = task.Reward
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"task_id": taskID,
		"reward":  reward.StringFixed(2),
	}).Info("Task finished")

	return nil
}
