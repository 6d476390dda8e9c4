package service

import (
	"context"
	"reflect"
	"sync"
	"time"

	"rps_game/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) ListReferrals(ctx context.Context, referrerID int64) ([]domain.User, error) {
	args := m.Called(ctx, referrerID)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockUserRepository) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, id, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) IncrementWins(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) TopByWins(ctx context.Context, limit int) ([]domain.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) CountWithMoreWins(ctx context.Context, wins int) (int64, error) {
	args := m.Called(ctx, wins)
	return args.Get(0).(int64), args.Error(1)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *domain.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Game), args.Error(1)
}

func (m *MockGameRepository) SetResult(ctx context.Context, id int64, result domain.Result) (bool, error) {
	args := m.Called(ctx, id, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockGameRepository) Delete(ctx context.Context, id int64) (*domain.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Game), args.Error(1)
}

func (m *MockGameRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Game, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Game), args.Error(1)
}

func (m *MockGameRepository) ListOpen(ctx context.Context) ([]domain.OpenGame, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.OpenGame), args.Error(1)
}

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListAvailable(ctx context.Context, userID int64, now time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ConsumeRepeat(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) RecordCompletion(ctx context.Context, userID, taskID int64) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

// MockStore hands the same mocked repositories to direct reads and units of work
type MockStore struct {
	users *MockUserRepository
	games *MockGameRepository
	tasks *MockTaskRepository
}

func newMockStore() *MockStore {
	return &MockStore{
		users: new(MockUserRepository),
		games: new(MockGameRepository),
		tasks: new(MockTaskRepository),
	}
}

func (s *MockStore) Users() UserRepository { return s.users }
func (s *MockStore) Games() GameRepository { return s.games }
func (s *MockStore) Tasks() TaskRepository { return s.tasks }

func (s *MockStore) Atomic(ctx context.Context, fn func(r Repositories) error) error {
	return fn(s)
}

func (s *MockStore) AssertExpectations(t mock.TestingT) {
	s.users.AssertExpectations(t)
	s.games.AssertExpectations(t)
	s.tasks.AssertExpectations(t)
}

// fakeLocker records acquired keys and fails with err when set
type fakeLocker struct {
	mu       sync.Mutex
	err      error
	locked   []string
	released int
}

func (l *fakeLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.locked = append(l.locked, key)
	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}

// fakeCache keeps values in memory and hands them back by reflection
type fakeCache struct {
	data   map[string]any
	getErr error
	sets   []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]any)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(v))
	return true, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.data[key] = value
	c.sets = append(c.sets, key)
	return nil
}

func decEq(want string) any {
	w := decimal.RequireFromString(want)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(w) })
}
