package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // Header formatting

	"github.com/gin-gonic/gin"           // Gin web framework
	"github.com/go-redis/redis_rate/v10" // Redis rate limiter
	"github.com/sirupsen/logrus"         // Logging library
)

// RateLimit allows perMinute requests per client IP. A limiter error lets the request through
func RateLimit(limiter *redis_rate.Limiter, perMinute int) gin.HandlerFunc {
	limit := redis_rate.PerMinute(perMinute)
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		res, err := limiter.Allow(c.Request.Context(), key, limit)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("Rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if res.Allowed == 0 {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
