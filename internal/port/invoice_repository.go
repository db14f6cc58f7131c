package port

import (
	"context"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
)

// InvoiceRepository defines the contract for issued-document persistence.
// Documents are append-only; the core never updates or deletes them.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByBillNo(ctx context.Context, tenantID uuid.UUID, billNo string) (*domain.Invoice, error)
	// GetByOriginalBillNo looks up the credit note referencing billNo,
	// which is how "already credited" is detected.
	GetByOriginalBillNo(ctx context.Context, tenantID uuid.UUID, billNo string) (*domain.Invoice, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ListAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Invoice, error)
}

// CounterRepository is the numbering authority's atomic store. Next must
// initialize a missing counter and increment it in one atomic unit so two
// concurrent callers for the same tenant and series can never observe the
// same value.
type CounterRepository interface {
	Next(ctx context.Context, tenantID uuid.UUID, series domain.Series) (int64, error)
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.Counter, error)
}
