package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// InvoiceHandler handles document issue, archive and delivery endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	exportService  service.ExportService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, exportService service.ExportService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, exportService: exportService}
}

// Create handles POST /api/v1/invoices
// @Summary Issue an invoice
// @Description Issue a tax invoice or bill of supply, computing the GST split and assigning a number
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.CreateInvoiceInput true "Invoice details"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice issued"
// @Failure 400 {object} ErrorResponseBody "Invalid input or missing number"
// @Failure 409 {object} ErrorResponseBody "Duplicate invoice number"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, invoice)
}

// CreateCreditNote handles POST /api/v1/invoices/credit-note
// @Summary Issue a credit note
// @Description Derive a credit note from an issued invoice; repeated calls return the existing note
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.CreditNoteInput true "Original bill number"
// @Success 201 {object} Response{data=domain.Invoice} "Credit note issued (or already existed)"
// @Failure 404 {object} ErrorResponseBody "Original invoice not found"
// @Security BearerAuth
// @Router /invoices/credit-note [post]
func (h *InvoiceHandler) CreateCreditNote(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreditNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	note, err := h.invoiceService.CreateCreditNote(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, note)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List issued documents for the tenant, newest first
// @Tags invoices
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Invoice} "Invoice archive page"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	output, err := h.invoiceService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, output.Invoices, PagMeta{
		Total:  output.Total,
		Offset: output.Offset,
		Limit:  output.Limit,
	})
}

// Get handles GET /api/v1/invoices/detail?bill_no=...
// Bill numbers contain slashes, so they travel as a query parameter
// rather than a path segment.
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param bill_no query string true "Bill number"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice details"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/detail [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	billNo := c.Query("bill_no")
	if billNo == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "bill_no query parameter is required")
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), tenantID, billNo)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, invoice)
}

// Download handles GET /api/v1/invoices/download?bill_no=...
// @Summary Download an invoice PDF
// @Description Re-render the stored document and return the PDF
// @Tags invoices
// @Produce application/pdf
// @Param bill_no query string true "Bill number"
// @Success 200 {file} binary "PDF document"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/download [get]
func (h *InvoiceHandler) Download(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	billNo := c.Query("bill_no")
	if billNo == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "bill_no query parameter is required")
		return
	}

	pdf, filename, err := h.invoiceService.Download(c.Request.Context(), tenantID, billNo)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Email handles POST /api/v1/invoices/email
// @Summary Email an invoice
// @Description Send the rendered PDF to the buyer or an explicit address
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body EmailInvoiceRequest true "Bill number and optional recipient"
// @Success 200 {object} Response{data=MessageResponse} "Email sent"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/email [post]
func (h *InvoiceHandler) Email(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input EmailInvoiceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.invoiceService.Email(c.Request.Context(), tenantID, input.BillNo, input.ToEmail); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice emailed successfully"})
}

// Export handles GET /api/v1/invoices/export
// @Summary Export the archive as XLSX
// @Description Flatten every issued document into a spreadsheet, one row per line item
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "XLSX export"
// @Security BearerAuth
// @Router /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportXLSX(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
