package main

import (
	"fmt"
	"log"

	"invoicegen/internal/config"
	"invoicegen/internal/email/noop"
	"invoicegen/internal/email/ses"
	"invoicegen/internal/handler"
	"invoicegen/internal/port"
	"invoicegen/internal/repository/postgres"
	"invoicegen/internal/router"
	"invoicegen/internal/service"
	s3storage "invoicegen/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	profileRepo := postgres.NewSellerProfileRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	counterRepo := postgres.NewCounterRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	particularRepo := postgres.NewParticularRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	invoiceSvc := service.NewInvoiceService(
		invoiceRepo, counterRepo, profileRepo, clientRepo, particularRepo,
		s3Client, emailSender, cfg.S3, cfg.Billing,
	)
	profileSvc := service.NewProfileService(profileRepo, s3Client, cfg.S3)
	directorySvc := service.NewDirectoryService(clientRepo, particularRepo)
	exportSvc := service.NewExportService(invoiceRepo, tenantRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, exportSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	directoryH := handler.NewDirectoryHandler(directorySvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, invoiceH, profileH, directoryH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
