package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

// maxBrandingUploadBytes caps branding uploads before decoding.
const maxBrandingUploadBytes = 5 << 20

// ProfileHandler handles seller profile and branding endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get handles GET /api/v1/profile
// @Summary Get the seller profile
// @Tags profile
// @Produce json
// @Success 200 {object} Response{data=domain.SellerProfile} "Profile details"
// @Failure 400 {object} ErrorResponseBody "Profile not configured"
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}

// Update handles PUT /api/v1/profile
// @Summary Update the seller profile
// @Description Create or replace the tenant's business identity used on documents
// @Tags profile
// @Accept json
// @Produce json
// @Param request body service.UpdateProfileInput true "Profile details"
// @Success 200 {object} Response{data=domain.SellerProfile} "Updated profile"
// @Security BearerAuth
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}

// UploadBranding handles POST /api/v1/profile/branding/:asset
// @Summary Upload a branding image
// @Description Upload the logo or signature image (multipart field "file"); stored normalized as JPEG
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param asset path string true "Asset kind" Enums(logo, signature)
// @Param file formData file true "Image file (jpg or png)"
// @Success 200 {object} Response{data=domain.SellerProfile} "Updated profile"
// @Failure 400 {object} ErrorResponseBody "Unsupported image"
// @Security BearerAuth
// @Router /profile/branding/{asset} [post]
func (h *ProfileHandler) UploadBranding(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	asset := domain.BrandingAsset(c.Param("asset"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "multipart file field is required")
		return
	}
	if fileHeader.Size > maxBrandingUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "branding image exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read uploaded file")
		return
	}

	profile, err := h.profileService.UploadBranding(c.Request.Context(), tenantID, asset, data)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}
