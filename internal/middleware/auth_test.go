package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/middleware"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(authSvc service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	group := r.Group("/", middleware.AuthMiddleware(authSvc))
	group.Use(extra...)
	group.GET("/whoami", func(c *gin.Context) {
		tenantID, err := middleware.GetTenantID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"tenant_id": tenantID.String(),
			"role":      middleware.GetRole(c),
		})
	})
	return r
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	r := protectedRouter(authSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	authSvc.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestAuthMiddleware_NonBearerScheme(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	r := protectedRouter(authSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("ValidateToken", "bad-token").Return(nil, domain.ErrUnauthorized)
	r := protectedRouter(authSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}

func TestAuthMiddleware_ValidTokenSeedsContext(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	tenantID := uuid.New()
	authSvc.On("ValidateToken", "good-token").Return(&service.Claims{
		TenantID: tenantID,
		UserID:   uuid.New(),
		Email:    "owner@sharma.example",
		Role:     domain.RoleAdmin,
	}, nil)
	r := protectedRouter(authSvc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tenantID.String())
	assert.Contains(t, w.Body.String(), string(domain.RoleAdmin))
}

func TestRequireRole(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	authSvc.On("ValidateToken", "member-token").Return(&service.Claims{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Role:     domain.RoleMember,
	}, nil)
	r := protectedRouter(authSvc, middleware.RequireRole(domain.RoleAdmin))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer member-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}
