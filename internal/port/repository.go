package port

import (
	"context"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
)

// TenantRepository defines the contract for tenant persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

// UserRepository defines the contract for user persistence.
// Query methods include tenantID to enforce tenant isolation at the data layer.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error)
}

// SellerProfileRepository defines the contract for the per-tenant profile.
type SellerProfileRepository interface {
	GetByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.SellerProfile, error)
	Upsert(ctx context.Context, profile *domain.SellerProfile) error
}

// ClientRepository is the denormalized buyer directory used for autofill.
type ClientRepository interface {
	UpsertByName(ctx context.Context, client *domain.Client) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Client, error)
}

// ParticularRepository is the line-item description directory.
type ParticularRepository interface {
	UpsertByDescription(ctx context.Context, particular *domain.Particular) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Particular, error)
}
