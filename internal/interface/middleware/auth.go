package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/drewhq/drew/pkg/helpers"
	"github.com/drewhq/drew/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth validates the bearer access token and ensures an active session
// exists in Redis. It sets userID and userEmail in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}

		// A logged-out user may still hold an unexpired token; the session
		// hash is the source of truth.
		data, err := rdb.HGetAll(c.Request.Context(), helpers.KeySession(claims.UserID)).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
