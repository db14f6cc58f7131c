package ses

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

// SendInvoice delivers the rendered document as a PDF attachment. SES
// simple messages cannot carry attachments, so the message is assembled
// as raw MIME.
func (s *sesSender) SendInvoice(ctx context.Context, toEmail string, invoice *domain.Invoice, pdf []byte, filename string) error {
	subject := fmt.Sprintf("%s %s from %s", invoice.Kind().Label(), invoice.BillNo, invoice.Seller.CompanyName)
	body := fmt.Sprintf(
		"Dear %s,\n\nPlease find attached %s %s dated %s for Rs. %.2f.\n\nRegards,\n%s",
		invoice.Buyer.Name, invoice.Kind().Label(), invoice.BillNo,
		invoice.InvoiceDate, invoice.GrandTotal, invoice.Seller.CompanyName,
	)

	raw, err := s.buildRawMessage(toEmail, subject, body, pdf, filename)
	if err != nil {
		return fmt.Errorf("building MIME message: %w", err)
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func (s *sesSender) buildRawMessage(toEmail, subject, body string, pdf []byte, filename string) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.fromName, s.fromAddress)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	textPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	pdfPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/pdf"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", filename)},
	})
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(pdf)
	// RFC 2045 caps encoded lines at 76 characters.
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := fmt.Fprintf(pdfPart, "%s\r\n", encoded[:n]); err != nil {
			return nil, err
		}
		encoded = encoded[n:]
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
