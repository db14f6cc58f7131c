package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockParticularRepo is a mock implementation of port.ParticularRepository.
type MockParticularRepo struct {
	mock.Mock
}

func (m *MockParticularRepo) UpsertByDescription(ctx context.Context, particular *domain.Particular) error {
	args := m.Called(ctx, particular)
	return args.Error(0)
}

func (m *MockParticularRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Particular, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Particular), args.Error(1)
}
