package noop

import (
	"context"
	"log"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoice(_ context.Context, toEmail string, invoice *domain.Invoice, pdf []byte, filename string) error {
	log.Printf("[NOOP EMAIL] %s %s to %s (%s, %d bytes)",
		invoice.Kind().Label(), invoice.BillNo, toEmail, filename, len(pdf))
	return nil
}
