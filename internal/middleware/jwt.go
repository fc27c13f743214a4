package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calm-lily/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for user role in gin context.
	ContextUserRole = "user_role"
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
)

// TokenValidator resolves a bearer token into a caller identity.
type TokenValidator func(token string) (userID uuid.UUID, email, role string, err error)

// JWT returns a middleware that validates the bearer token and sets the
// caller identity in context. Requests without a valid token are rejected.
func JWT(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing or invalid authorization header")
			c.Abort()
			return
		}
		userID, email, role, err := validate(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		c.Set(ContextUserEmail, email)
		c.Next()
	}
}

// OptionalJWT sets the caller identity when a valid token is present but
// lets anonymous requests through. Used by public endpoints that behave
// differently for signed-in users (AI chat rate keys, premium resources).
func OptionalJWT(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if userID, email, role, err := validate(token); err == nil {
				c.Set(ContextUserID, userID)
				c.Set(ContextUserRole, role)
				c.Set(ContextUserEmail, email)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID from gin context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// UserRole returns the authenticated user role from gin context.
func UserRole(c *gin.Context) string {
	v, ok := c.Get(ContextUserRole)
	if !ok {
		return ""
	}
	role, _ := v.(string)
	return role
}

// IsAdmin reports whether the caller holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return UserRole(c) == "admin"
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
