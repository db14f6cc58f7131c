package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = uuid.New()
	invoice.CreatedAt = time.Now().UTC()

	query := `INSERT INTO invoices (
			id, tenant_id, bill_no, invoice_date, is_credit_note, is_non_gst,
			original_bill_no, po_ref, seller, buyer, ship_to, items,
			sub_total, igst, cgst, sgst, grand_total, created_by, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19
		)`

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID, invoice.TenantID, invoice.BillNo, invoice.InvoiceDate,
		invoice.IsCreditNote, invoice.IsNonGST, invoice.OriginalBillNo, invoice.PORef,
		invoice.Seller, invoice.Buyer, invoice.ShipTo, invoice.Items,
		invoice.SubTotal, invoice.IGST, invoice.CGST, invoice.SGST, invoice.GrandTotal,
		invoice.CreatedBy, invoice.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByBillNo(ctx context.Context, tenantID uuid.UUID, billNo string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM invoices WHERE tenant_id = $1 AND bill_no = $2", tenantID, billNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByBillNo: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) GetByOriginalBillNo(ctx context.Context, tenantID uuid.UUID, billNo string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM invoices WHERE tenant_id = $1 AND original_bill_no = $2 AND is_credit_note", tenantID, billNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByOriginalBillNo: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE tenant_id = $1", tenantID); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByTenant count: %w", err)
	}

	invoices := []domain.Invoice{}
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByTenant: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListAllByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices WHERE tenant_id = $1 ORDER BY created_at ASC", tenantID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAllByTenant: %w", err)
	}
	return invoices, nil
}
