package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/openblogdev/blogapi/internal/model"

	"github.com/google/uuid"
)

func limiterRouter(t *testing.T, limiter *RateLimiter, user *model.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(actorKey, user)
		}
		c.Next()
	})
	router.GET("/posts", limiter.Limit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func get(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterEnforcesWindowLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := NewRateLimiter(client, "posts", 50, time.Minute)
	frozen := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return frozen }

	user := &model.User{ID: uuid.New()}
	router := limiterRouter(t, limiter, user)

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, get(router), "request %d should pass", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, get(router))
}

func TestRateLimiterCountsUsersSeparately(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := NewRateLimiter(client, "posts", 2, time.Minute)
	frozen := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return frozen }

	alice := &model.User{ID: uuid.New()}
	bob := &model.User{ID: uuid.New()}
	aliceRouter := limiterRouter(t, limiter, alice)
	bobRouter := limiterRouter(t, limiter, bob)

	assert.Equal(t, http.StatusOK, get(aliceRouter))
	assert.Equal(t, http.StatusOK, get(aliceRouter))
	assert.Equal(t, http.StatusTooManyRequests, get(aliceRouter))

	// Alice being throttled leaves Bob untouched.
	assert.Equal(t, http.StatusOK, get(bobRouter))
}

func TestRateLimiterResetsOnNextWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := NewRateLimiter(client, "posts", 1, time.Minute)
	now := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return now }

	user := &model.User{ID: uuid.New()}
	router := limiterRouter(t, limiter, user)

	assert.Equal(t, http.StatusOK, get(router))
	assert.Equal(t, http.StatusTooManyRequests, get(router))

	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, get(router))
}

func TestRateLimiterSkipsAnonymous(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := NewRateLimiter(client, "posts", 1, time.Minute)
	router := limiterRouter(t, limiter, nil)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(router))
	}
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(nil, "posts", 1, time.Minute)
	user := &model.User{ID: uuid.New()}
	router := limiterRouter(t, limiter, user)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(router))
	}
}
