package api

import (
	"context"  // Health check deadline
	"net/http" // HTTP status codes
	"time"     // Health check timeout

	"github.com/gin-gonic/gin" // Gin web framework
)

// TopTenHandler returns the ten users with the most won games
func TopTenHandler(board LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		top, err := board.Top10(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, top)
	}
}

// HealthHandler pings every dependency and answers 503 if any of them is down
func HealthHandler(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		report := gin.H{}
		for name, ping := range checks {
			if err := ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		c.JSON(status, report)
	}
}
