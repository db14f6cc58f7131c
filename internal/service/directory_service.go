package service

import (
	"context"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

// DirectoryService serves the autofill directories built up as documents
// are issued: past buyers and past line-item descriptions.
type DirectoryService interface {
	ListClients(ctx context.Context, tenantID uuid.UUID) ([]domain.Client, error)
	ListParticulars(ctx context.Context, tenantID uuid.UUID) ([]domain.Particular, error)
}

type directoryService struct {
	clientRepo     port.ClientRepository
	particularRepo port.ParticularRepository
}

// NewDirectoryService creates a new DirectoryService implementation.
func NewDirectoryService(
	clientRepo port.ClientRepository,
	particularRepo port.ParticularRepository,
) DirectoryService {
	return &directoryService{
		clientRepo:     clientRepo,
		particularRepo: particularRepo,
	}
}

func (s *directoryService) ListClients(ctx context.Context, tenantID uuid.UUID) ([]domain.Client, error) {
	return s.clientRepo.ListByTenant(ctx, tenantID)
}

func (s *directoryService) ListParticulars(ctx context.Context, tenantID uuid.UUID) ([]domain.Particular, error) {
	return s.particularRepo.ListByTenant(ctx, tenantID)
}
