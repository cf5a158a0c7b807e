package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	usermodels "streamraiser-backend/internal/features/user/models"
	userrepo "streamraiser-backend/internal/features/user/repository"
)

const userContextKey = "user"

// Auth resolves a Bearer session token to a user and stores it in the gin
// context. Requests without a token pass through anonymously; guarding
// happens in RequireAuth/RequireAdmin.
func Auth(users userrepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			user, err := users.GetByToken(c.Request.Context(), token)
			if err == nil {
				c.Set(userContextKey, user)
			}
		}
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(userContextKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFromContext(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(c *gin.Context) *usermodels.User {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := v.(*usermodels.User)
	if !ok {
		return nil
	}
	return user
}
