package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/openblogdev/blogapi/pkg/apperror"
	"github.com/openblogdev/blogapi/pkg/response"
)

type RateLimiter struct {
	client *redis.Client
	scope  string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter builds a fixed-window limiter over redis. A nil client
// disables limiting, which keeps local development free of a redis
// dependency.
func NewRateLimiter(client *redis.Client, scope string, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		scope:  scope,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *RateLimiter) key(userID string, at time.Time) string {
	windowStart := at.Unix() / int64(l.window.Seconds())
	return fmt.Sprintf("throttle:%s:%s:%d", l.scope, userID, windowStart)
}

// Limit counts requests per authenticated user within the current window
// and rejects everything past the configured limit. Anonymous requests are
// not throttled.
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.client == nil {
			c.Next()
			return
		}

		actor := Actor(c)
		if actor == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := l.key(actor.ID.String(), l.now())

		count, err := l.client.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take the API with it.
			log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
			c.Next()
			return
		}
		if count == 1 {
			if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to set throttle window expiry")
			}
		}

		if count > l.limit {
			response.Error(c, apperror.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}
