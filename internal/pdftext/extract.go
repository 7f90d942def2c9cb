// Package pdftext extracts plain text from uploaded PDF study guides.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// Extractor implements domain.TextExtractor for PDF payloads.
type Extractor struct{}

// NewExtractor creates a new PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// IsPDF sniffs the %PDF magic header. More reliable than trusting the
// declared content type.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && bytes.HasPrefix(data, []byte("%PDF-"))
}

// Extract parses data as a PDF and returns its concatenated page text with
// whitespace collapsed. Returns an error for non-PDF bytes or corrupt files;
// an image-only PDF yields an empty string, which callers must treat as an
// unusable upload.
func (e *Extractor) Extract(data []byte) (string, error) {
	if !IsPDF(data) {
		head := data
		if len(head) > 8 {
			head = head[:8]
		}
		return "", fmt.Errorf("not a PDF: missing %%PDF header (head=%x)", head)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf open: %w", err)
	}

	var sb strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest of
			// the document.
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return collapseWhitespace(sb.String()), nil
}

// collapseWhitespace squeezes runs of blanks and blank lines left behind by
// PDF layout.
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
