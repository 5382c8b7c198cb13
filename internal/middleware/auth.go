package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"points-board-api/internal/response"
	"points-board-api/internal/service"
)

const (
	// ContextUserIDKey holds the authenticated user's id (uint)
	ContextUserIDKey = "user_id"
	// ContextClaimsKey holds the verified *service.Claims
	ContextClaimsKey = "claims"

	validationTimeout = 5 * time.Second
)

// TokenValidator verifies a raw token, including the revocation check
type TokenValidator interface {
	ValidateToken(ctx context.Context, raw string) (*service.Claims, error)
}

// Auth returns a middleware that requires a valid Bearer token
func Auth(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, false)
}

// AuthWithQueryToken also accepts the token in the "token" query parameter,
// for websocket clients that cannot set headers
func AuthWithQueryToken(validator TokenValidator) gin.HandlerFunc {
	return authenticate(validator, true)
}

func authenticate(validator TokenValidator, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, message := extractToken(c, allowQuery)
		if tokenString == "" {
			response.AbortWithError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), validationTimeout)
		defer cancel()

		claims, err := validator.ValidateToken(ctx, tokenString)
		if err != nil {
			message := "Invalid or expired token"
			var appErr *response.AppError
			if errors.As(err, &appErr) {
				message = appErr.Message
			}
			response.AbortWithError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, message)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextClaimsKey, claims)

		c.Next()
	}
}

// extractToken returns the raw token, or an empty string and the reason
func extractToken(c *gin.Context, allowQuery bool) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if allowQuery {
			if token := c.Query("token"); token != "" {
				return token, ""
			}
		}
		return "", "Authorization header is required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "Invalid authorization header format"
	}
	return strings.TrimSpace(parts[1]), ""
}

// UserID returns the authenticated user's id
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Claims returns the verified token claims
func Claims(c *gin.Context) (*service.Claims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*service.Claims)
	return claims, ok
}
