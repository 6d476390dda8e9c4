package api

import (
	"context"
	"time"

	"rps_game/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name string, userID int64, referrerID *int64) (*domain.User, error) {
	args := m.Called(ctx, name, userID, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) Friends(ctx context.Context, userID int64) ([]domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) AdjustBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) CreateGame(ctx context.Context, userID int64, bet decimal.Decimal, symbol string) (*domain.Game, error) {
	args := m.Called(ctx, userID, bet, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Game), args.Error(1)
}

func (m *MockGameService) FinishGame(ctx context.Context, gameID, opponentID int64, opponentSymbol string) (domain.Result, error) {
	args := m.Called(ctx, gameID, opponentID, opponentSymbol)
	return args.Get(0).(domain.Result), args.Error(1)
}

func (m *MockGameService) DeleteGame(ctx context.Context, gameID int64) (*domain.Game, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Game), args.Error(1)
}

func (m *MockGameService) ListOpenGames(ctx context.Context) ([]domain.OpenGame, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.OpenGame), args.Error(1)
}

func (m *MockGameService) ListUserGames(ctx context.Context, userID int64) ([]domain.Game, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Game), args.Error(1)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) List(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, name string, expiredAt time.Time, reward decimal.Decimal, repeatCount *int) (*domain.Task, error) {
	args := m.Called(ctx, name, expiredAt, reward, repeatCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, taskID int64) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskService) ListAvailable(ctx context.Context, userID int64) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskService) FinishTask(ctx context.Context, userID, taskID int64) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Top10(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockLeaderboardService) RankOf(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBiller struct {
	mock.Mock
}

func (m *MockBiller) CreateInvoiceLink(ctx context.Context, amount int) (string, error) {
	args := m.Called(ctx, amount)
	return args.String(0), args.Error(1)
}
