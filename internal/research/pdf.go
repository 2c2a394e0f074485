// Package research turns an uploaded financial report into an LLM-written
// research note.
package research

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxTextChars caps the extracted text handed to chunking.
const MaxTextChars = 200_000

var (
	// ErrNoText is returned when a document yields no extractable text.
	ErrNoText = errors.New("no extractable text")
	// ErrInvalidPDF is returned when the upload cannot be parsed as a PDF.
	ErrInvalidPDF = errors.New("invalid PDF")
)

// ExtractText reads the plain text of every page in order, stopping once
// MaxTextChars characters have been collected.
func ExtractText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	var sb strings.Builder
	n := 0
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		n += utf8.RuneCountInString(text) + 1
		if n >= MaxTextChars {
			break
		}
	}

	out := truncateRunes(sb.String(), MaxTextChars)
	if strings.TrimSpace(out) == "" {
		return "", ErrNoText
	}
	return out, nil
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
