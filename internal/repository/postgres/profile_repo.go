package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type profileRepo struct {
	db *sqlx.DB
}

// NewSellerProfileRepo creates a new PostgreSQL-backed SellerProfileRepository.
func NewSellerProfileRepo(db *sqlx.DB) port.SellerProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.SellerProfile, error) {
	var profile domain.SellerProfile
	err := r.db.GetContext(ctx, &profile,
		"SELECT * FROM seller_profiles WHERE tenant_id = $1", tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("profileRepo.GetByTenant: %w", err)
	}
	return &profile, nil
}

func (r *profileRepo) Upsert(ctx context.Context, profile *domain.SellerProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
		profile.CreatedAt = time.Now().UTC()
	}
	profile.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO seller_profiles (
			id, tenant_id, company_name, address_line1, address_line2, phone, email,
			gstin, bank_name, account_holder, account_number, ifsc_code,
			invoice_prefix, logo_key, signature_key, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		ON CONFLICT (tenant_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			address_line1 = EXCLUDED.address_line1,
			address_line2 = EXCLUDED.address_line2,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			gstin = EXCLUDED.gstin,
			bank_name = EXCLUDED.bank_name,
			account_holder = EXCLUDED.account_holder,
			account_number = EXCLUDED.account_number,
			ifsc_code = EXCLUDED.ifsc_code,
			invoice_prefix = EXCLUDED.invoice_prefix,
			logo_key = EXCLUDED.logo_key,
			signature_key = EXCLUDED.signature_key,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.TenantID, profile.CompanyName,
		profile.AddressLine1, profile.AddressLine2, profile.Phone, profile.Email,
		profile.GSTIN, profile.BankName, profile.AccountHolder, profile.AccountNumber,
		profile.IFSCCode, profile.InvoicePrefix, profile.LogoKey, profile.SignatureKey,
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("profileRepo.Upsert: %w", err)
	}
	return nil
}
