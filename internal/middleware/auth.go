package middleware

import (
	"net/http"
	"strings"

	"shopadmin/internal/model"
	"shopadmin/internal/service"
	"shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by RequireAuth.
const (
	ContextUserKey    = "currentUser"
	ContextTokenIDKey = "tokenID"
)

// RequireAuth validates the bearer token on the Authorization header and
// stores the authenticated user and the presenting token's id in the request
// context. Absent or invalid tokens end the request with 401 before any
// business logic runs.
func RequireAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail("Unauthenticated."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail("Unauthenticated."))
			return
		}

		user, token, err := tokens.Validate(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail("Unauthenticated."))
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenIDKey, token.ID)
		c.Next()
	}
}

// RequireRole permits the request only when the authenticated user's role is
// in the allow-list. Role comparison is case-insensitive. A missing identity
// is denied even though RequireAuth should have run first.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Fail("Unauthorized access. You do not have the required permissions."))
			return
		}

		for _, role := range allowedRoles {
			if strings.EqualFold(user.Role, role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, response.Fail("Unauthorized access. You do not have the required permissions."))
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentTokenID returns the id of the token that authenticated this request.
func CurrentTokenID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextTokenIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
