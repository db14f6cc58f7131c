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

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

// UpsertByName refreshes the autofill directory with the latest details
// seen for a buyer name. Last write wins.
func (r *clientRepo) UpsertByName(ctx context.Context, client *domain.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
		client.CreatedAt = time.Now().UTC()
	}
	client.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO clients (
			id, tenant_id, name, address_line1, address_line2, gstin, email, mobile,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (tenant_id, name) DO UPDATE SET
			address_line1 = EXCLUDED.address_line1,
			address_line2 = EXCLUDED.address_line2,
			gstin = EXCLUDED.gstin,
			email = EXCLUDED.email,
			mobile = EXCLUDED.mobile,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		client.ID, client.TenantID, client.Name,
		client.AddressLine1, client.AddressLine2, client.GSTIN,
		client.Email, client.Mobile, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.UpsertByName: %w", err)
	}
	return nil
}

func (r *clientRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Client, error) {
	clients := []domain.Client{}
	err := r.db.SelectContext(ctx, &clients,
		"SELECT * FROM clients WHERE tenant_id = $1 ORDER BY name ASC", tenantID)
	if err != nil {
		return nil, fmt.Errorf("clientRepo.ListByTenant: %w", err)
	}
	return clients, nil
}
