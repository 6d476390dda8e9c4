package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// Task Model
type Task struct {
	ID          int64           `gorm:"primaryKey" json:"id"`                      // Primary key
	Name        string          `gorm:"size:255;not null" json:"name"`             // Task title
	ExpiredAt   time.Time       `gorm:"not null" json:"expired_at"`                // Task is hidden after this moment
	Reward      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"reward"` // Amount credited on completion
	RepeatCount int             `gorm:"not null" json:"repeat_count"`              // Remaining completions across all users
	CreatedAt   time.Time       `json:"created_at"`                                // Creation time
}

// UserTask records that a user consumed one repeat of a task
// (user_id, task_id) is not unique: nothing stops a second completion of the same task
type UserTask struct {
	ID        int64     `gorm:"primaryKey" json:"id"`          // Primary key
	UserID    int64     `gorm:"index;not null" json:"user_id"` // Completing user
	TaskID    int64     `gorm:"index;not null" json:"task_id"` // Completed task
	CreatedAt time.Time `json:"created_at"`                    // Completion time
}
