package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

// RateLimiter is a fixed-window counter per client IP kept in Redis, so all
// instances share the budget. A nil client disables it.
type RateLimiter struct {
	client *redis.Client
	scope  string
	limit  int
	window time.Duration
	logger logger.Interface
}

func NewRateLimiter(client *redis.Client, scope string, limit int, window time.Duration, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		client: client,
		scope:  scope,
		limit:  limit,
		window: window,
		logger: log,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.client == nil || rl.limit <= 0 {
			c.Next()
			return
		}

		bucket := time.Now().Unix() / int64(rl.window.Seconds())
		key := fmt.Sprintf("procureflow:ratelimit:%s:%s:%d", rl.scope, c.ClientIP(), bucket)
		ctx := c.Request.Context()

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down must not lock everyone out.
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "too many requests, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
