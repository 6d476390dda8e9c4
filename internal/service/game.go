package service

import (
	"context" // Context for store and lock calls
	"fmt"     // Error wrapping
	"strconv" // Lock key formatting

	"rps_game/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
)

// GameService creates, settles and removes wagered games
type GameService struct {
	store  Store
	locker Locker
	cache  Cache
}

// NewGameService creates a new game service
func NewGameService(store Store, locker Locker, cache Cache) *GameService {
	return &GameService{
		store:  store,
		locker: locker,
		cache:  cache,
	}
}

// LockKeyGame is the settlement lock key for a game
func LockKeyGame(gameID int64) string {
	return "lock:game:" + strconv.FormatInt(gameID, 10)
}

// CreateGame debits the bet from the owner and opens an unsettled game
func (s *GameService) CreateGame(ctx context.Context, userID int64, bet decimal.Decimal, symbol string) (*domain.Game, error) {
	sym, err := domain.ParseSymbol(symbol)
	if err != nil {
		return nil, ErrInvalidSymbol
	}
	bet = bet.Round(2)
	if !bet.IsPositive() {
		return nil, ErrInvalidBet
	}
	if !domain.AmountInRange(bet) {
		return nil, ErrAmountOutOfRange
	}

	game := &domain.Game{
		UserID: userID,
		Bet:    bet,
		Symbol: sym,
	}

	err = s.store.Atomic(ctx, func(r Repositories) error {
		game.ID = 0

		owner, err := r.Users().GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if owner == nil {
			return ErrUserNotFound
		}
		if owner.Balance.LessThan(bet) {
			return ErrInsufficientFunds
		}

		debited, err := r.Users().DebitBalance(ctx, userID, bet)
		if err != nil {
			return fmt.Errorf("failed to debit bet: %w", err)
		}
		if !debited {
			return ErrInsufficientFunds
		}

		if err := r.Games().Create(ctx, game); err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"game_id": game.ID,
		"user_id": userID,
		"bet":     bet.StringFixed(2),
		"symbol":  sym,
	}).Info("Game created")

	return game, nil
}

// FinishGame settles an open game against an opponent's symbol and moves the stakes
// A game is settled at most once; later calls get ErrAlreadyFinished
func (s *GameService) FinishGame(ctx context.Context, gameID, opponentID int64, opponentSymbol string) (domain.Result, error) {
	opponentSym, err := domain.ParseSymbol(opponentSymbol)
	if err != nil {
		return "", ErrInvalidSymbol
	}

	unlock, err := s.locker.Lock(ctx, LockKeyGame(gameID))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"game_id": gameID,
			"error":   err.Error(),
		}).Warn("Settlement lock not acquired")
		return "", ErrGameLocked
	}
	defer unlock()

	var (
		game   *domain.Game
		result domain.Result
	)
	err = s.store.Atomic(ctx, func(r Repositories) error {
		var err error
		game, err = r.Games().GetForUpdate(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to get game: %w", err)
		}
		if game == nil {
			return ErrGameNotFound
		}
		if game.Settled() {
			return ErrAlreadyFinished
		}

		owner, opponent, err := lockPlayers(ctx, r.Users(), game.UserID, opponentID)
		if err != nil {
			return err
		}
		// Opponent must cover the stake before the outcome is known
		if opponent.Balance.LessThan(game.Bet) {
			return ErrInsufficientFunds
		}

		result = domain.Play(game.Symbol, opponentSym)
		if !payoutInRange(owner, opponent, game.Bet, result) {
			return ErrAmountOutOfRange
		}

		updated, err := r.Games().SetResult(ctx, gameID, result)
		if err != nil {
			return fmt.Errorf("failed to set game result: %w", err)
		}
		if !updated {
			return ErrAlreadyFinished
		}

		return payout(ctx, r.Users(), game, opponentID, result)
	})
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"game_id":     gameID,
		"owner_id":    game.UserID,
		"opponent_id": opponentID,
		"bet":         game.Bet.StringFixed(2),
		"result":      result,
	}).Info("Game settled")

	if result != domain.ResultDraw {
		invalidateLeaderboard(ctx, s.cache)
	}

	return result, nil
}

// lockPlayers row-locks owner and opponent in ascending id order, so two games
// settled concurrently between the same pair of users cannot deadlock
func lockPlayers(ctx context.Context, users UserRepository, ownerID, opponentID int64) (*domain.User, *domain.User, error) {
	first, second := ownerID, opponentID
	if second < first {
		first, second = second, first
	}

	locked := make(map[int64]*domain.User, 2)
	for _, id := range []int64{first, second} {
		if _, ok := locked[id]; ok {
			continue // Self-play
		}
		u, err := users.GetForUpdate(ctx, id)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to lock user %d: %w", id, err)
		}
		if u == nil {
			return nil, nil, ErrUserNotFound
		}
		locked[id] = u
	}
	return locked[ownerID], locked[opponentID], nil
}

// payoutInRange reports whether both balances still fit the money column after payout
func payoutInRange(owner, opponent *domain.User, bet decimal.Decimal, result domain.Result) bool {
	switch result {
	case domain.ResultWin:
		if owner.ID == opponent.ID {
			return domain.AmountInRange(owner.Balance.Add(bet))
		}
		return domain.AmountInRange(owner.Balance.Add(bet.Mul(decimal.NewFromInt(2))))
	case domain.ResultLose:
		return domain.AmountInRange(opponent.Balance.Add(bet))
	default:
		return domain.AmountInRange(owner.Balance.Add(bet))
	}
}

// payout applies the balance and win-counter changes for a settled game
// The owner's bet was already debited when the game was created
func payout(ctx context.Context, users UserRepository, game *domain.Game, opponentID int64, result domain.Result) error {
	switch result {
	case domain.ResultDraw:
		if err := users.AddBalance(ctx, game.UserID, game.Bet); err != nil {
			return fmt.Errorf("failed to refund bet: %w", err)
		}
	case domain.ResultWin:
		if err := users.AddBalance(ctx, game.UserID, game.Bet.Mul(decimal.NewFromInt(2))); err != nil {
			return fmt.Errorf("failed to pay owner: %w", err)
		}
		if err := users.AddBalance(ctx, opponentID, game.Bet.Neg()); err != nil {
			return fmt.Errorf("failed to charge opponent: %w", err)
		}
		if err := users.IncrementWins(ctx, game.UserID); err != nil {
			return fmt.Errorf("failed to count owner win: %w", err)
		}
	case domain.ResultLose:
		if err := users.AddBalance(ctx, opponentID, game.Bet); err != nil {
			return fmt.Errorf("failed to pay opponent: %w", err)
		}
		if err := users.IncrementWins(ctx, opponentID); err != nil {
			return fmt.Errorf("failed to count opponent win: %w", err)
		}
	default:
		return fmt.Errorf("unexpected result %q", result)
	}
	return nil
}

// DeleteGame removes a game by id without refunding its bet
func (s *GameService) DeleteGame(ctx context.Context, gameID int64) (*domain.Game, error) {
	unlock, err := s.locker.Lock(ctx, LockKeyGame(gameID))
	if err != nil {
		return nil, ErrGameLocked
	}
	defer unlock()

	var game *domain.Game
	err = s.store.Atomic(ctx, func(r Repositories) error {
		var err error
		game, err = r.Games().Delete(ctx, gameID)
		if err != nil {
			return fmt.Errorf("failed to delete game: %w", err)
		}
		if game == nil {
			return ErrGameNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := logrus.WithFields(logrus.Fields{
		"game_id": game.ID,
		"user_id": game.UserID,
		"bet":     game.Bet.StringFixed(2),
	})
	if game.Settled() {
		entry.Info("Game deleted")
	} else {
		// TODO: refund or keep the stake once product decides; today the debited bet is lost
		entry.Warn("Unsettled game deleted, stake forfeited")
	}

	return game, nil
}

// ListOpenGames returns every unsettled game with its owner's name
func (s *GameService) ListOpenGames(ctx context.Context) ([]domain.OpenGame, error) {
	games, err := s.store.Games().ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open games: %w", err)
	}
	return games, nil
}

// ListUserGames returns all games owned by a user
func (s *GameService) ListUserGames(ctx context.Context, userID int64) ([]domain.Game, error) {
	games, err := s.store.Games().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games of user %d: %w", userID, err)
	}
	return games, nil
}

