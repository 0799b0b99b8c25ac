package rendering

import (
	"strings"

	"github.com/go-pdf/fpdf"
)

// textEncoder converts UTF-8 text to the cp1252 bytes the core Helvetica
// font expects. Runes with no cp1252 equivalent become '.'.
// An encoder is not safe for concurrent use.
type textEncoder struct {
	translate func(string) string
}

func newTextEncoder(pdf *fpdf.Fpdf) *textEncoder {
	return &textEncoder{translate: pdf.UnicodeTranslatorFromDescriptor("")}
}

// Encode normalizes whitespace and typographic punctuation, then translates to cp1252.
func (e *textEncoder) Encode(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '\t', '\r', '\u00a0', '\u2007', '\u202f':
			result.WriteByte(' ')
		case '\u2010', '\u2011':
			result.WriteByte('-')
		default:
			result.WriteRune(r)
		}
	}

	return e.translate(result.String())
}
