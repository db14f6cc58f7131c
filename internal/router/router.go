package router

import (
	"github.com/gin-gonic/gin"

	"invoicegen/internal/domain"
	"invoicegen/internal/handler"
	"invoicegen/internal/middleware"
	"invoicegen/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	profileH *handler.ProfileHandler,
	directoryH *handler.DirectoryHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Invoice routes. Bill numbers carry slashes, so lookups use query
	// parameters instead of path segments.
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.POST("/credit-note", invoiceH.CreateCreditNote)
	invoices.GET("", invoiceH.List)
	invoices.GET("/detail", invoiceH.Get)
	invoices.GET("/download", invoiceH.Download)
	invoices.GET("/export", invoiceH.Export)
	invoices.POST("/email", invoiceH.Email)

	// Seller profile and branding
	profile := protected.Group("/profile")
	profile.GET("", profileH.Get)
	profile.PUT("", middleware.RequireRole(domain.RoleAdmin), profileH.Update)
	profile.POST("/branding/:asset", middleware.RequireRole(domain.RoleAdmin), profileH.UploadBranding)

	// Autofill directories
	protected.GET("/clients", directoryH.ListClients)
	protected.GET("/particulars", directoryH.ListParticulars)

	return r
}
