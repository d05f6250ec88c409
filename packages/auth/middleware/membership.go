package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"tennis-stats-api/packages/auth/models"

	"github.com/gin-gonic/gin"
)

const authContextKey = "auth_context"

// TeamHeader optionally selects which of the caller's teams a request acts on.
const TeamHeader = "X-Team-ID"

type MembershipResolver interface {
	ResolveAuthContext(ctx context.Context, profileID, email string, teamID uint) (models.AuthContext, error)
}

// RequireMembership re-derives the caller's approved team membership on every
// request. Must run after JWTMiddleware.
func RequireMembership(resolver MembershipResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := GetProfileID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		email, _ := GetUserEmail(c)

		var teamID uint
		if header := c.GetHeader(TeamHeader); header != "" {
			id, err := strconv.ParseUint(header, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
				c.Abort()
				return
			}
			teamID = uint(id)
		}

		auth, err := resolver.ResolveAuthContext(c.Request.Context(), profileID, email, teamID)
		if err != nil {
			if errors.Is(err, models.ErrNoMembership) {
				c.JSON(http.StatusForbidden, gin.H{"error": "No approved team membership"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve team membership"})
			}
			c.Abort()
			return
		}

		c.Set(authContextKey, auth)
		c.Next()
	}
}

// RequireRole checks the role of the membership resolved by RequireMembership.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := GetAuthContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !auth.HasRole(requiredRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":         "Insufficient permissions",
				"required_role": requiredRole,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetAuthContext(c *gin.Context) (models.AuthContext, bool) {
	value, exists := c.Get(authContextKey)
	if !exists {
		return models.AuthContext{}, false
	}
	auth, ok := value.(models.AuthContext)
	return auth, ok
}

// SetAuthContext is used by tests that bypass token validation.
func SetAuthContext(c *gin.Context, auth models.AuthContext) {
	c.Set(authContextKey, auth)
}
