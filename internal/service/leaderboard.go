package service

import (
	"context" // Context for store and cache calls
	"fmt"     // Error wrapping
	"time"    // Cache TTLs

	"rps_game/internal/domain" // Domain models

	"github.com/google/uuid"     // Cache generation tokens
	"github.com/sirupsen/logrus" // Logging library
)

const (
	leaderboardLimit = 10

	// leaderboardGenKey holds the current generation; ranking snapshots are keyed by it
	leaderboardGenKey    = "leaderboard:generation"
	leaderboardKeyPrefix = "leaderboard:top_10:"
	leaderboardGenTTL    = 24 * time.Hour
)

// LeaderboardService ranks users by games won
type LeaderboardService struct {
	store Store
	cache Cache
	ttl   time.Duration
}

// NewLeaderboardService creates a new leaderboard service. A zero ttl disables caching
func NewLeaderboardService(store Store, cache Cache, ttl time.Duration) *LeaderboardService {
	return &LeaderboardService{
		store: store,
		cache: cache,
		ttl:   ttl,
	}
}

// Top10 returns the ten users with the most won games
// Only the ordering is cached; the rows themselves are always read fresh
func (s *LeaderboardService) Top10(ctx context.Context) ([]domain.User, error) {
	if s.cache == nil || s.ttl <= 0 {
		return s.loadTop(ctx)
	}

	gen, err := leaderboardGeneration(ctx, s.cache)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Leaderboard cache read failed")
		return s.loadTop(ctx)
	}
	key := leaderboardKeyPrefix + gen

	var ids []int64
	found, err := s.cache.Get(ctx, key, &ids)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Leaderboard cache read failed")
	}
	if err == nil && found {
		return s.loadByIDs(ctx, ids)
	}

	users, err := s.loadTop(ctx)
	if err != nil {
		return nil, err
	}

	ids = make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	// fire and forget
	_ = s.cache.Set(ctx, key, ids, s.ttl)

	return users, nil
}

func (s *LeaderboardService) loadTop(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.Users().TopByWins(ctx, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return users, nil
}

// loadByIDs returns the users in the order of ids
func (s *LeaderboardService) loadByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	rows, err := s.store.Users().ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	byID := make(map[int64]domain.User, len(rows))
	for _, u := range rows {
		byID[u.ID] = u
	}
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// RankOf returns the 1-based place of the user. Users with equal wins share a place
func (s *LeaderboardService) RankOf(ctx context.Context, userID int64) (int64, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	above, err := s.store.Users().CountWithMoreWins(ctx, user.WonGames)
	if err != nil {
		return 0, fmt.Errorf("failed to rank user %d: %w", userID, err)
	}
	return above + 1, nil
}

func leaderboardGeneration(ctx context.Context, cache Cache) (string, error) {
	var gen string
	if _, err := cache.Get(ctx, leaderboardGenKey, &gen); err != nil {
		return "", err
	}
	return gen, nil
}

// invalidateLeaderboard starts a new generation. A snapshot computed under the old
// generation may still be written afterwards, but nobody reads that key again
func invalidateLeaderboard(ctx context.Context, cache Cache) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, leaderboardGenKey, uuid.NewString(), leaderboardGenTTL); err != nil {
		logrus.WithField("error", err.Error()).Warn("Leaderboard cache invalidation failed")
	}
}
