package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tracker/internal/shared/biztime"
	"tracker/internal/shared/logger"
	"tracker/internal/shared/utils"
)

// RateLimiter is a Redis fixed-window counter keyed by client IP and scope,
// so every instance behind a load balancer shares the same budget.
type RateLimiter struct {
	client *redis.Client
	scope  string
	limit  int
	window time.Duration
	clock  biztime.Clock
	logger logger.Interface
}

func NewRateLimiter(client *redis.Client, scope string, limit int, window time.Duration, clock biztime.Clock, logger logger.Interface) *RateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RateLimiter{
		client: client,
		scope:  scope,
		limit:  limit,
		window: window,
		clock:  clock,
		logger: logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := rl.clock.Now().Unix() / int64(rl.window/time.Second)
		key := fmt.Sprintf("tracker:ratelimit:%s:%s:%d", rl.scope, c.ClientIP(), bucket)
		ctx := c.Request.Context()

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window+time.Second)
		}

		if count > int64(rl.limit) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
