package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

const (
	ContextKeyTenantID = "tenant_id"
	ContextKeyUserID   = "user_id"
	ContextKeyEmail    = "email"
	ContextKeyRole     = "role"
	ContextKeyClaims   = "claims"
)

const bearerScheme = "Bearer "

// bearerToken pulls the token out of the Authorization header. The empty
// string means the header was absent or not a bearer credential.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerScheme) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerScheme):])
}

func abortWithAuthError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// AuthMiddleware validates the access token on every protected route and
// seeds the context with the caller's tenant, user, and role.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortWithAuthError(c, http.StatusUnauthorized, "UNAUTHORIZED",
				"missing or invalid authorization header")
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			abortWithAuthError(c, http.StatusUnauthorized, "UNAUTHORIZED",
				"invalid or expired token")
			return
		}

		c.Set(ContextKeyTenantID, claims.TenantID)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, string(claims.Role))
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. It must run after
// AuthMiddleware, which is what populates the role key.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole := domain.UserRole(GetRole(c))
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		abortWithAuthError(c, http.StatusForbidden, "FORBIDDEN",
			"insufficient permissions")
	}
}

// GetTenantID extracts the tenant ID from the Gin context.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyTenantID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}

// GetUserID extracts the user ID from the Gin context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}

// GetRole extracts the user role string from the Gin context.
func GetRole(c *gin.Context) string {
	val, exists := c.Get(ContextKeyRole)
	if !exists {
		return ""
	}
	return val.(string)
}
