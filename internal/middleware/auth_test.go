package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/repository/memory"
)

const testSecret = "test-secret"

func signToken(t *testing.T, subject string, secret string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authRouter(t *testing.T) (*gin.Engine, *model.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	user := &model.User{Username: "authed", Email: "authed@example.com"}
	require.NoError(t, store.Users().Create(context.Background(), user))

	auth := NewAuthMiddleware(store.Users(), testSecret)

	router := gin.New()
	router.Use(auth.Authenticate())
	router.GET("/whoami", func(c *gin.Context) {
		actor := Actor(c)
		if actor == nil {
			c.JSON(http.StatusOK, gin.H{"username": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": actor.Username})
	})
	return router, user
}

func authGet(router *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticateResolvesActor(t *testing.T) {
	router, user := authRouter(t)

	w := authGet(router, signToken(t, user.ID.String(), testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "authed")
}

func TestAuthenticateAnonymousPassesThrough(t *testing.T) {
	router, _ := authRouter(t)

	w := authGet(router, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestAuthenticateRejectsBadSignature(t *testing.T) {
	router, user := authRouter(t)

	w := authGet(router, signToken(t, user.ID.String(), "wrong-secret"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateRejectsUnknownUser(t *testing.T) {
	router, _ := authRouter(t)

	w := authGet(router, signToken(t, "0193b6a1-0000-7000-8000-000000000000", testSecret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
