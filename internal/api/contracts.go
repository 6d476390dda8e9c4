package api

import (
	"context" // Context for service calls
	"time"    // Task expiry

	"rps_game/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
)

// UserService is what the user handlers need from the user service
type UserService interface {
	Register(ctx context.Context, name string, userID int64, referrerID *int64) (*domain.User, error)
	Get(ctx context.Context, userID int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Friends(ctx context.Context, userID int64) ([]domain.User, error)
	AdjustBalance(ctx context.Context, userID int64, amount decimal.Decimal) error
}

// GameService is what the game handlers need from the game service
type GameService interface {
	CreateGame(ctx context.Context, userID int64, bet decimal.Decimal, symbol string) (*domain.Game, error)
	FinishGame(ctx context.Context, gameID, opponentID int64, opponentSymbol string) (domain.Result, error)
	DeleteGame(ctx context.Context, gameID int64) (*domain.Game, error)
	ListOpenGames(ctx context.Context) ([]domain.OpenGame, error)
	ListUserGames(ctx context.Context, userID int64) ([]domain.Game, error)
}

// TaskService is what the task handlers need from the task service
type TaskService interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, name string, expiredAt time.Time, reward decimal.Decimal, repeatCount *int) (*domain.Task, error)
	Delete(ctx context.Context, taskID int64) error
	ListAvailable(ctx context.Context, userID int64) ([]domain.Task, error)
	FinishTask(ctx context.Context, userID, taskID int64) error
}

// LeaderboardService serves the leaderboard and per-user ranks
type LeaderboardService interface {
	Top10(ctx context.Context) ([]domain.User, error)
	RankOf(ctx context.Context, userID int64) (int64, error)
}

// Biller issues payment links for topping up a balance
type Biller interface {
	CreateInvoiceLink(ctx context.Context, amount int) (string, error)
}

// Pinger checks that a dependency is reachable
type Pinger func(ctx context.Context) error
