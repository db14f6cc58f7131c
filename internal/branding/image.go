// Package branding normalizes uploaded logo and signature images before
// they are stored: decode, cap the width, re-encode as JPEG.
package branding

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"invoicegen/internal/domain"
)

// maxWidth caps stored branding assets; invoices render them at most a few
// centimeters wide, so anything larger only bloats storage.
const maxWidth = 600

const jpegQuality = 85

// ContentType of every normalized asset.
const ContentType = "image/jpeg"

// Normalize decodes an uploaded image, shrinks it to at most maxWidth
// (preserving aspect ratio) and re-encodes it as JPEG. Returns
// domain.ErrUnsupportedImage when the payload does not decode.
func Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.ErrUnsupportedImage
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("branding.Normalize: %w", err)
	}
	return buf.Bytes(), nil
}
