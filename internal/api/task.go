package api

import (
	"net/http" // HTTP status codes
	"time"     // Task expiry

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
)

// CreateTaskRequest represents a new reward task
type CreateTaskRequest struct {
	Name        string          `json:"name" binding:"required"`       // Task title
	ExpiredAt   time.Time       `json:"expired_at" binding:"required"` // Hidden from users after this instant
	Reward      decimal.Decimal `json:"reward"`                        // Paid per completion
	RepeatCount *int            `json:"repeat_count"`                  // Completions left, defaults to 1
}

// ListTasksHandler returns every task, expired or exhausted ones included
func ListTasksHandler(tasks TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := tasks.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateTaskHandler adds a reward task
func CreateTaskHandler(tasks TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		task, err := tasks.Create(c.Request.Context(), req.Name, req.ExpiredAt, req.Reward, req.RepeatCount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, task)
	}
}

// DeleteTaskHandler removes a task; completion records stay
func DeleteTaskHandler(tasks TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, ok := pathID(c, "task_id")
		if !ok {
			return
		}
		if err := tasks.Delete(c.Request.Context(), taskID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
