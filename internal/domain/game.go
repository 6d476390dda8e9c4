package domain

import (
	"fmt"     // Error formatting
	"strings" // Symbol normalization
	"time"    // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// Symbol is a rock-paper-scissors hand
type Symbol string

const (
	Rock     Symbol = "rock"
	Paper    Symbol = "paper"
	Scissors Symbol = "scissors"
)

// Result is the outcome of a game from the owner's point of view
type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultDraw Result = "draw"
)

// beats maps each symbol to the one it defeats
var beats = map[Symbol]Symbol{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// ParseSymbol validates a symbol coming from the outside world
func ParseSymbol(s string) (Symbol, error) {
	sym := Symbol(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := beats[sym]; !ok {
		return "", fmt.Errorf("unknown symbol %q", s)
	}
	return sym, nil
}

// Beats reports whether s defeats other
func (s Symbol) Beats(other Symbol) bool {
	return beats[s] == other
}

// Play resolves a game between the owner's and the opponent's symbols
func Play(owner, opponent Symbol) Result {
	switch {
	case owner == opponent:
		return ResultDraw
	case owner.Beats(opponent):
		return ResultWin
	default:
		return ResultLose
	}
}

// Game Model
type Game struct {
	ID        int64           `gorm:"primaryKey" json:"id"`                   // Primary key
	Bet       decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"bet"` // Stake debited from the owner at creation
	Symbol    Symbol          `gorm:"size:16;not null" json:"symbol"`         // Owner's hand
	Result    *Result         `gorm:"size:16;index" json:"result"`            // Nil until settled
	UserID    int64           `gorm:"index;not null" json:"user_id"`          // Owner
	CreatedAt time.Time       `json:"created_at"`                             // Creation time
}

// Settled reports whether the game already has a result
func (g *Game) Settled() bool {
	return g.Result != nil
}

// OpenGame is an unsettled game joined with its owner's name
type OpenGame struct {
	ID        int64           `json:"id"`
	Bet       decimal.Decimal `json:"bet"`
	Symbol    Symbol          `json:"symbol"`
	Result    *Result         `json:"result"`
	UserID    int64           `json:"user_id"`
	UserName  string          `json:"user_name"`
	CreatedAt time.Time       `json:"created_at"`
}
