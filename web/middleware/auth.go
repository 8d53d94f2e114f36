// Package middleware provides the cross-cutting request filters: bearer-token
// authentication, role checks and rate limiting.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/yukkurinet/hyakki-portal/database/model"
	"github.com/yukkurinet/hyakki-portal/web/service"
	"github.com/yukkurinet/hyakki-portal/web/token"

	"github.com/gin-gonic/gin"
)

const authUserKey = "AUTH_USER"

// TokenAuth authenticates the request from the Authorization header. The
// identity inside a valid token is re-resolved against the database so
// deleted users are caught, and the fresh user row is attached to the context
// for downstream handlers.
//
// Missing token: 401. Expired or invalid token: 403, with distinct messages.
// Token for a vanished user: 404.
func TokenAuth(issuer *token.Issuer) gin.HandlerFunc {
	userService := service.UserService{}

	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := issuer.Verify(raw)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			}
			return
		}

		user, err := userService.GetByID(claims.Id)
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			}
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetAuthUser returns the user attached by TokenAuth, or nil outside an
// authenticated route.
func GetAuthUser(c *gin.Context) *model.User {
	if obj, exists := c.Get(authUserKey); exists {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}
