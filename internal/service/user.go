package service

import (
	"context" // Context for store calls
	"fmt"     // Error wrapping

	"rps_game/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
)

var (
	// ReferralSignupBonus is credited to a user who registers through a valid referral
	ReferralSignupBonus = decimal.NewFromInt(5)
	// ReferrerBonus is credited to the referring user
	ReferrerBonus = decimal.NewFromInt(10)
)

// UserService handles registration, referrals and direct balance adjustments
type UserService struct {
	store Store
	cache Cache // Leaderboard generation; nil disables invalidation
}

// NewUserService creates a new user service
func NewUserService(store Store, cache Cache) *UserService {
	return &UserService{
		store: store,
		cache: cache,
	}
}

// Register creates a user with a zero balance. When referrerID names an existing
// user both sides receive the referral bonuses; an unknown referrer is ignored
func (s *UserService) Register(ctx context.Context, name string, userID int64, referrerID *int64) (*domain.User, error) {
	user := &domain.User{
		ID:   userID,
		Name: name,
	}

	err := s.store.Atomic(ctx, func(r Repositories) error {
		user.Balance = decimal.Zero
		user.ReferrerID = nil

		existing, err := r.Users().GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if existing != nil {
			return ErrUserExists
		}

		if referrerID != nil && *referrerID != 0 {
			referrer, err := r.Users().GetForUpdate(ctx, *referrerID)
			if err != nil {
				return fmt.Errorf("failed to get referrer: %w", err)
			}
			if referrer != nil {
				if err := r.Users().AddBalance(ctx, referrer.ID, ReferrerBonus); err != nil {
					return fmt.Errorf("failed to credit referrer: %w", err)
				}
				user.ReferrerID = &referrer.ID
				user.Balance = user.Balance.Add(ReferralSignupBonus)
			}
		}

		if err := r.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"user_id": user.ID,
		"balance": user.Balance.StringFixed(2),
	}
	if user.ReferrerID != nil {
		fields["referrer_id"] = *user.ReferrerID
	}
	logrus.WithFields(fields).Info("User registered")

	// A new user can enter a leaderboard that has fewer than ten entries
	invalidateLeaderboard(ctx, s.cache)

	return user, nil
}

// Get returns a user by id
func (s *UserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns all users
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Friends returns the users referred by userID
func (s *UserService) Friends(ctx context.Context, userID int64) ([]domain.User, error) {
	friends, err := s.store.Users().ListReferrals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals of user %d: %w", userID, err)
	}
	return friends, nil
}

// AdjustBalance adds amount to the user's balance. There is no floor check:
// a negative amount may take the balance below zero
func (s *UserService) AdjustBalance(ctx context.Context, userID int64, amount decimal.Decimal) error {
	amount = amount.Round(2)
	if !domain.AmountInRange(amount) {
		return ErrAmountOutOfRange
	}
	err := s.store.Atomic(ctx, func(r Repositories) error {
		user, err := r.Users().GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			return ErrUserNotFound
		}
		if !domain.AmountInRange(user.Balance.Add(amount)) {
			return ErrAmountOutOfRange
		}
		if err := r.Users().AddBalance(ctx, userID, amount); err != nil {
			return fmt.Errorf("failed to adjust balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount.StringFixed(2),
	}).Info("Balance adjusted")

	return nil
}
