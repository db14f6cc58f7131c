package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoice(ctx context.Context, toEmail string, invoice *domain.Invoice, pdf []byte, filename string) error {
	args := m.Called(ctx, toEmail, invoice, pdf, filename)
	return args.Error(0)
}
