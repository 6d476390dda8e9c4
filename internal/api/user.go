package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	UserName   string `json:"user_name" binding:"required"`   // Display name
	TelegramID int64  `json:"telegram_id" binding:"required"` // Telegram user id, used as the user id
	ReferrerID *int64 `json:"referrer_id"`                    // Optional referring user
}

// BalanceRequest represents a direct balance adjustment
type BalanceRequest struct {
	TelegramID int64           `json:"telegram_id" binding:"required"` // Target user
	Reward     decimal.Decimal `json:"reward"`                         // Amount to add, may be negative
}

// FinishTaskRequest represents a task completion
type FinishTaskRequest struct {
	UserID int64 `json:"user_id" binding:"required"` // Completing user
	TaskID int64 `json:"task_id" binding:"required"` // Completed task
}

// ListUsersHandler returns all users
func ListUsersHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetUserHandler returns a single user
func GetUserHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		user, err := users.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err) // 404 when the user is unknown
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// RegisterHandler creates a user, crediting referral bonuses when the referrer exists
func RegisterHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.Register(c.Request.Context(), req.UserName, req.TelegramID, req.ReferrerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// UserGamesHandler returns the games a user owns
func UserGamesHandler(games GameService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		list, err := games.ListUserGames(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// FriendsHandler returns the users referred by a user
func FriendsHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		friends, err := users.Friends(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, friends)
	}
}

// UserTasksHandler returns the tasks still available to a user
func UserTasksHandler(tasks TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		list, err := tasks.ListAvailable(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// TopPlaceHandler returns the user's leaderboard place as a bare number
func TopPlaceHandler(board LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathID(c, "user_id")
		if !ok {
			return
		}
		place, err := board.RankOf(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, place)
	}
}

// AdjustBalanceHandler adds a reward (or penalty) to a user's balance
func AdjustBalanceHandler(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BalanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := users.AdjustBalance(c.Request.Context(), req.TelegramID, req.Reward); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// FinishTaskHandler completes a task for a user and pays its reward
func FinishTaskHandler(tasks TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FinishTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := tasks.FinishTask(c.Request.Context(), req.UserID, req.TaskID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
