package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
)

// CreateGameRequest represents a new wager
type CreateGameRequest struct {
	UserID int64           `json:"user_id" binding:"required"` // Game owner
	Bet    decimal.Decimal `json:"bet"`                        // Stake, rounded to cents
	Symbol string          `json:"symbol" binding:"required"`  // rock, paper or scissors
}

// FinishGameRequest represents the opponent's move
type FinishGameRequest struct {
	EnemyID     int64  `json:"enemy_id" binding:"required"`     // Opponent user
	EnemySymbol string `json:"enemy_symbol" binding:"required"` // Opponent's symbol
}

// ListGamesHandler returns every unsettled game with its owner's name
func ListGamesHandler(games GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := games.ListOpenGames(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateGameHandler debits the bet and opens a game
func CreateGameHandler(games GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		game, err := games.CreateGame(c.Request.Context(), req.UserID, req.Bet, req.Symbol)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, game)
	}
}

// FinishGameHandler settles a game against the opponent's symbol
func FinishGameHandler(games GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := pathID(c, "game_id")
		if !ok {
			return
		}
		var req FinishGameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		result, err := games.FinishGame(c.Request.Context(), gameID, req.EnemyID, req.EnemySymbol)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": result}) // Result from the owner's side
	}
}

// DeleteGameHandler removes a game and returns it
func DeleteGameHandler(games GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID, ok := pathID(c, "game_id")
		if !ok {
			return
		}
		game, err := games.DeleteGame(c.Request.Context(), gameID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, game)
	}
}
