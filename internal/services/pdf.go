package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrInvalidDocument covers every way a CV upload can fail: bad base64,
// unreadable PDF, or a PDF with no extractable text (image-only scans).
var ErrInvalidDocument = errors.New("invalid document")

// ExtractPDFText decodes a base64 PDF (optionally carrying a data-URI prefix)
// and returns the concatenated text of all pages.
func ExtractPDFText(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(stripDataURIPrefix(encoded))
	if err != nil {
		return "", fmt.Errorf("%w: decoding base64: %v", ErrInvalidDocument, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: reading pdf: %v", ErrInvalidDocument, err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	extracted := strings.TrimSpace(b.String())
	if extracted == "" {
		return "", fmt.Errorf("%w: no extractable text, the file might be an image-based PDF", ErrInvalidDocument)
	}
	return extracted, nil
}

// stripDataURIPrefix removes a leading "data:application/pdf;base64," marker.
func stripDataURIPrefix(s string) string {
	if strings.HasPrefix(s, "data:") {
		if _, rest, found := strings.Cut(s, ","); found {
			return rest
		}
	}
	return s
}
