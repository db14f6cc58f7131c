package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type particularRepo struct {
	db *sqlx.DB
}

// NewParticularRepo creates a new PostgreSQL-backed ParticularRepository.
func NewParticularRepo(db *sqlx.DB) port.ParticularRepository {
	return &particularRepo{db: db}
}

func (r *particularRepo) UpsertByDescription(ctx context.Context, particular *domain.Particular) error {
	if particular.ID == uuid.Nil {
		particular.ID = uuid.New()
		particular.CreatedAt = time.Now().UTC()
	}
	particular.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO particulars (
			id, tenant_id, description, hsn_code, tax_rate, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, description) DO UPDATE SET
			hsn_code = EXCLUDED.hsn_code,
			tax_rate = EXCLUDED.tax_rate,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		particular.ID, particular.TenantID, particular.Description,
		particular.HSNCode, particular.TaxRate, particular.CreatedAt, particular.UpdatedAt)
	if err != nil {
		return fmt.Errorf("particularRepo.UpsertByDescription: %w", err)
	}
	return nil
}

func (r *particularRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Particular, error) {
	particulars := []domain.Particular{}
	err := r.db.SelectContext(ctx, &particulars,
		"SELECT * FROM particulars WHERE tenant_id = $1 ORDER BY description ASC", tenantID)
	if err != nil {
		return nil, fmt.Errorf("particularRepo.ListByTenant: %w", err)
	}
	return particulars, nil
}
