package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimit caps requests per client IP per minute using a redis
// counter. When redis is unavailable the limiter fails open: dropping
// requests because the cache is down would hurt more than the extra
// traffic.
func RateLimit(client *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), time.Now().Format("200601021504"))

		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logrus.Errorf("Rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		if count == 1 {
			client.Expire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
