package port

import (
	"context"

	"invoicegen/internal/domain"
)

// EmailSender delivers a rendered document as a PDF attachment.
type EmailSender interface {
	SendInvoice(ctx context.Context, toEmail string, invoice *domain.Invoice, pdf []byte, filename string) error
}
