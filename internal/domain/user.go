package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// User Model
type User struct {
	ID         int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`   // External id (Telegram user id)
	Name       string          `gorm:"size:255;not null" json:"name"`              // Display name
	Balance    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"balance"` // Current balance
	WonGames   int             `gorm:"not null;index" json:"won_games"`            // Number of games won
	ReferrerID *int64          `gorm:"index" json:"referrer_id"`                   // Key of the referring user, if any
	CreatedAt  time.Time       `json:"created_at"`                                 // Registration time
}
