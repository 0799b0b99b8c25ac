// Package ingestion turns pasted text, target gigs and posting URLs into a
// cleaned job description ready for alignment.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpace  = regexp.MustCompile(`[ \t\f\v]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	bulletRunes = []string{"\u2022 ", "\u00b7 ", "\u25aa ", "\u25e6 "}
)

// CleanText normalizes line endings and spacing while keeping headings,
// bullets and paragraph breaks. At most one blank line separates blocks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses inner whitespace and rewrites typographic bullets as "- ".
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	for _, b := range bulletRunes {
		if strings.HasPrefix(trimmed, b) {
			trimmed = "- " + strings.TrimPrefix(trimmed, b)
			break
		}
	}
	trimmed = innerSpace.ReplaceAllString(trimmed, " ")

	if strings.HasPrefix(trimmed, "#") || indent == 0 {
		return trimmed
	}
	return strings.Repeat(" ", indent) + trimmed
}
