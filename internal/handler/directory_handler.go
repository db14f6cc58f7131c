package handler

import (
	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// DirectoryHandler serves the autofill directories.
type DirectoryHandler struct {
	directoryService service.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directoryService service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// ListClients handles GET /api/v1/clients
// @Summary List known buyers
// @Description List past buyers for form autofill, alphabetically
// @Tags directories
// @Produce json
// @Success 200 {object} Response{data=[]domain.Client} "Buyer directory"
// @Security BearerAuth
// @Router /clients [get]
func (h *DirectoryHandler) ListClients(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	clients, err := h.directoryService.ListClients(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, clients)
}

// ListParticulars handles GET /api/v1/particulars
// @Summary List known line-item descriptions
// @Description List past particulars with their usual HSN code and tax rate
// @Tags directories
// @Produce json
// @Success 200 {object} Response{data=[]domain.Particular} "Particular directory"
// @Security BearerAuth
// @Router /particulars [get]
func (h *DirectoryHandler) ListParticulars(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	particulars, err := h.directoryService.ListParticulars(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, particulars)
}
