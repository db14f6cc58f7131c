package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockCounterRepo is a mock implementation of port.CounterRepository.
type MockCounterRepo struct {
	mock.Mock
}

func (m *MockCounterRepo) Next(ctx context.Context, tenantID uuid.UUID, series domain.Series) (int64, error) {
	args := m.Called(ctx, tenantID, series)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCounterRepo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.Counter, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Counter), args.Error(1)
}
