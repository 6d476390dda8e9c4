package service

import (
	"context"
	"errors"
	"testing"

	"rps_game/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("without referrer", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetByID", mock.Anything, int64(42)).Return(nil, nil)
		st.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == 42 && u.Name == "Bob" && u.Balance.IsZero() && u.ReferrerID == nil
		})).Return(nil)

		svc := NewUserService(st, nil)
		user, err := svc.Register(ctx, "Bob", 42, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, user.WonGames)
		st.AssertExpectations(t)
	})

	t.Run("with existing referrer", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetByID", mock.Anything, int64(42)).Return(nil, nil)
		st.users.On("GetForUpdate", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
		st.users.On("AddBalance", mock.Anything, int64(7), decEq("10")).Return(nil)
		st.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ReferrerID != nil && *u.ReferrerID == 7 && u.Balance.Equal(decimal.NewFromInt(5))
		})).Return(nil)

		referrer := int64(7)
		svc := NewUserService(st, nil)
		user, err := svc.Register(ctx, "Bob", 42, &referrer)

		require.NoError(t, err)
		assert.True(t, user.Balance.Equal(decimal.NewFromInt(5)))
		st.AssertExpectations(t)
	})

	t.Run("unknown referrer is ignored", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetByID", mock.Anything, int64(42)).Return(nil, nil)
		st.users.On("GetForUpdate", mock.Anything, int64(99)).Return(nil, nil)
		st.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ReferrerID == nil && u.Balance.IsZero()
		})).Return(nil)

		referrer := int64(99)
		svc := NewUserService(st, nil)
		_, err := svc.Register(ctx, "Bob", 42, &referrer)

		require.NoError(t, err)
		st.users.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero referrer means none", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetByID", mock.Anything, int64(42)).Return(nil, nil)
		st.users.On("Create", mock.Anything, mock.Anything).Return(nil)

		zero := int64(0)
		svc := NewUserService(st, nil)
		_, err := svc.Register(ctx, "Bob", 42, &zero)

		require.NoError(t, err)
		st.users.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("starts a new leaderboard generation", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetByID", mock.Anything, int64(42)).Return(nil, nil)
		st.users.On("Create", mock.Anything, mock.Anything).Return(nil)
		cache := newFakeCache()

		svc := NewUserService(st, cache)
		_, err := svc.Register(ctx, "Bob", 42, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{leaderboardGenKey}, cache.sets)
	})

	t.Run("duplicate id", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)

		svc := NewUserService(st, nil)
		_, err := svc.Register(ctx, "Bob", 42, nil)

		assert.ErrorIs(t, err, ErrUserExists)
		st.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_Get(t *testing.T) {
	ctx := context.Background()
	st := newMockStore()
	st.users.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Name: "alice"}, nil)
	st.users.On("GetByID", mock.Anything, int64(2)).Return(nil, nil)
	st.users.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("connection reset"))

	svc := NewUserService(st, nil)

	user, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)

	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.True(t, IsNotFound(err))

	_, err = svc.Get(ctx, 3)
	assert.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestUserService_ListAndFriends(t *testing.T) {
	ctx := context.Background()
	st := newMockStore()
	st.users.On("List", mock.Anything).Return([]domain.User{{ID: 1}, {ID: 2}}, nil)
	st.users.On("ListReferrals", mock.Anything, int64(1)).Return([]domain.User{{ID: 2}}, nil)

	svc := NewUserService(st, nil)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	friends, err := svc.Friends(ctx, 1)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, int64(2), friends[0].ID)
}

func TestUserService_AdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("negative amounts are allowed", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetForUpdate", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Balance: decimal.NewFromInt(1)}, nil)
		st.users.On("AddBalance", mock.Anything, int64(1), decEq("-5.13")).Return(nil)

		svc := NewUserService(st, nil)
		require.NoError(t, svc.AdjustBalance(ctx, 1, decimal.RequireFromString("-5.125")))
		st.AssertExpectations(t)
	})

	t.Run("amount beyond the money column", func(t *testing.T) {
		st := newMockStore()
		svc := NewUserService(st, nil)

		err := svc.AdjustBalance(ctx, 1, decimal.RequireFromString("1000000000000"))

		assert.ErrorIs(t, err, ErrAmountOutOfRange)
		st.users.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("resulting balance beyond the money column", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetForUpdate", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Balance: domain.MaxAmount}, nil)

		svc := NewUserService(st, nil)
		err := svc.AdjustBalance(ctx, 1, decimal.RequireFromString("0.01"))

		assert.ErrorIs(t, err, ErrAmountOutOfRange)
		st.users.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		st := newMockStore()
		st.users.On("GetForUpdate", mock.Anything, int64(1)).Return(nil, nil)

		svc := NewUserService(st, nil)
		assert.ErrorIs(t, svc.AdjustBalance(ctx, 1, decimal.NewFromInt(5)), ErrUserNotFound)
		st.users.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}
