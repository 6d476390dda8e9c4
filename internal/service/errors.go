package service

import "errors" // Sentinel errors

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrUserExists        = errors.New("user already registered")
	ErrInsufficientFunds = errors.New("not enough balance")
	ErrAlreadyFinished   = errors.New("game already finished")
	ErrNoRepeatsLeft     = errors.New("task has no more repeats")
	ErrGameLocked        = errors.New("game is being settled")
	ErrInvalidSymbol     = errors.New("symbol must be rock, paper or scissors")
	ErrInvalidBet        = errors.New("bet must be positive")
	ErrInvalidTask       = errors.New("invalid task")
	ErrAmountOutOfRange  = errors.New("amount out of range")
)

// IsNotFound reports whether err means a user, game or task is absent
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrGameNotFound) || errors.Is(err, ErrTaskNotFound)
}
