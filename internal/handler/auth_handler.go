package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/auth/register
// @Summary Register a tenant
// @Description Create a new tenant with its first admin user and return tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration details"
// @Success 201 {object} Response{data=TokenResponse} "Tenant registered"
// @Failure 400 {object} ErrorResponseBody "Invalid request or slug taken"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tokenPair)
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Authenticate against a tenant and return access and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} Response{data=TokenResponse} "Authenticated"
// @Failure 401 {object} ErrorResponseBody "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RefreshInput true "Refresh token"
// @Success 200 {object} Response{data=TokenResponse} "New token pair"
// @Failure 401 {object} ErrorResponseBody "Invalid or expired token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input service.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}
