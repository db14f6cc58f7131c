package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type counterRepo struct {
	db *sqlx.DB
}

// NewCounterRepo creates a new PostgreSQL-backed CounterRepository.
func NewCounterRepo(db *sqlx.DB) port.CounterRepository {
	return &counterRepo{db: db}
}

// Next initializes and increments the requested series in a single
// statement. The upsert makes first-use and subsequent increments the
// same atomic unit, so two concurrent callers for the same tenant can
// never be handed the same value, including on the very first call.
func (r *counterRepo) Next(ctx context.Context, tenantID uuid.UUID, series domain.Series) (int64, error) {
	var query string
	switch series {
	case domain.SeriesCreditNote:
		query = `INSERT INTO invoice_counters (tenant_id, invoice_seq, credit_note_seq, updated_at)
			VALUES ($1, 0, 1, now())
			ON CONFLICT (tenant_id) DO UPDATE
			SET credit_note_seq = invoice_counters.credit_note_seq + 1, updated_at = now()
			RETURNING credit_note_seq`
	default:
		query = `INSERT INTO invoice_counters (tenant_id, invoice_seq, credit_note_seq, updated_at)
			VALUES ($1, 1, 0, now())
			ON CONFLICT (tenant_id) DO UPDATE
			SET invoice_seq = invoice_counters.invoice_seq + 1, updated_at = now()
			RETURNING invoice_seq`
	}

	var seq int64
	if err := r.db.GetContext(ctx, &seq, query, tenantID); err != nil {
		return 0, fmt.Errorf("counterRepo.Next: %w", err)
	}
	return seq, nil
}

func (r *counterRepo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.Counter, error) {
	var counter domain.Counter
	err := r.db.GetContext(ctx, &counter, "SELECT * FROM invoice_counters WHERE tenant_id = $1", tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("counterRepo.Get: %w", err)
	}
	return &counter, nil
}
