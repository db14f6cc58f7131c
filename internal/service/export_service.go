package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"invoicegen/internal/port"
	"invoicegen/internal/xlsxexport"
)

// ExportService flattens a tenant's full document archive into a
// spreadsheet for accountants.
type ExportService interface {
	ExportXLSX(ctx context.Context, tenantID uuid.UUID) ([]byte, string, error)
}

type exportService struct {
	invoiceRepo port.InvoiceRepository
	tenantRepo  port.TenantRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(invoiceRepo port.InvoiceRepository, tenantRepo port.TenantRepository) ExportService {
	return &exportService{invoiceRepo: invoiceRepo, tenantRepo: tenantRepo}
}

func (s *exportService) ExportXLSX(ctx context.Context, tenantID uuid.UUID) ([]byte, string, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, "", fmt.Errorf("export.ExportXLSX: %w", err)
	}

	invoices, err := s.invoiceRepo.ListAllByTenant(ctx, tenantID)
	if err != nil {
		return nil, "", fmt.Errorf("export.ExportXLSX: %w", err)
	}

	data, err := xlsxexport.Build(invoices)
	if err != nil {
		return nil, "", fmt.Errorf("export.ExportXLSX: %w", err)
	}
	return data, xlsxexport.FileName(tenant.Slug), nil
}
