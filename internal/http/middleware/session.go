package middleware

import (
	"context"
	"errors"
	"net/http"

	"tasktracker/internal/domain"
	"tasktracker/internal/logger"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

type IdentityResolver interface {
	Resolve(ctx context.Context, cookie string) (*domain.User, error)
}

// Session resolves the session cookie once per request. Anonymous requests
// pass through; store failures abort with 500.
func Session(resolver IdentityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		u, err := resolver.Resolve(c.Request.Context(), raw)
		if errors.Is(err, service.ErrUnauthenticated) {
			c.Next()
			return
		}
		if err != nil {
			logger.WithContext(c.Request.Context()).Error("resolve session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.Set(userContextKey, u)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Session, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// RequireUser redirects anonymous requests to the login page.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
