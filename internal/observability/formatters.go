// Package observability provides prometheus metrics and formatted CLI output.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/blkdmnd/visual-thesis/internal/types"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Score bands used to color the match score.
const (
	StrongMatch  = 75.0
	PartialMatch = 50.0
)

// Printer handles formatted output for the CLI.
type Printer struct {
	out          io.Writer
	colorEnabled bool
}

// NewPrinter creates a new Printer that writes to the given writer.
// Color is used only when enabled and the color package has not been disabled globally.
func NewPrinter(out io.Writer, colorEnabled bool) *Printer {
	return &Printer{out: out, colorEnabled: colorEnabled}
}

func (p *Printer) colorize(text string, attributes ...color.Attribute) string {
	if !p.colorEnabled {
		return text
	}
	return color.New(attributes...).Sprint(text)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to exactly width runes.
func pad(line string, width int) string {
	n := utf8.RuneCountInString(line)
	if n > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-n)
}

// ScoreBand names the band a match score falls in.
func ScoreBand(score float64) string {
	switch {
	case score >= StrongMatch:
		return "strong"
	case score >= PartialMatch:
		return "partial"
	default:
		return "weak"
	}
}

// FormatScore renders the match score, colored by band.
func (p *Printer) FormatScore(score float64) string {
	text := fmt.Sprintf("%.0f%% (%s match)", score, ScoreBand(score))
	switch ScoreBand(score) {
	case "strong":
		return p.colorize(text, color.FgGreen, color.Bold)
	case "partial":
		return p.colorize(text, color.FgYellow, color.Bold)
	default:
		return p.colorize(text, color.FgRed, color.Bold)
	}
}

// PrintAnalysis outputs a human-readable summary of an alignment analysis.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAnalysis(analysis *types.AlignmentAnalysis) {
	if analysis == nil {
		return
	}

	fmt.Fprintf(p.out, "Match score: %s\n\n", p.FormatScore(analysis.MatchScore))

	var sb strings.Builder
	if len(analysis.GapAnalysis) == 0 {
		sb.WriteString("No gaps identified")
	}
	writeList(&sb, analysis.GapAnalysis)
	p.printBox("GAP ANALYSIS", strings.TrimRight(sb.String(), "\n"))

	sb.Reset()
	for i, exp := range analysis.OptimizedExperience {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(exp.Company + "\n")
		writeList(&sb, exp.Bullets)
	}
	if len(analysis.OptimizedExperience) > 0 {
		p.printBox("OPTIMIZED EXPERIENCE", strings.TrimRight(sb.String(), "\n"))
	}

	s := analysis.LinkedInSuggestions
	if s.Headline != "" || s.About != "" {
		p.printBox("PROFILE SUGGESTIONS", fmt.Sprintf("Headline: %s\n\n%s", s.Headline, wrap(s.About, boxWidth-4)))
	}
}

func writeList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// wrap breaks text on word boundaries at width runes.
func wrap(text string, width int) string {
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// SummaryDiff is a word-level comparison between the profile summary and the optimized one.
type SummaryDiff struct {
	Diffs   []diffmatchpatch.Diff
	Added   int
	Removed int
}

// DiffSummary compares two summaries word by word.
func DiffSummary(original, optimized string) *SummaryDiff {
	dmp := diffmatchpatch.New()
	a, b, words := dmp.DiffLinesToChars(toLines(original), toLines(optimized))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), words)

	result := &SummaryDiff{Diffs: diffs}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			result.Added += strings.Count(d.Text, "\n")
		case diffmatchpatch.DiffDelete:
			result.Removed += strings.Count(d.Text, "\n")
		}
	}
	return result
}

// toLines puts one word per line so the line diff works on words.
func toLines(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, "\n") + "\n"
}

// PrintSummaryDiff prints removed words in red brackets and added words in green braces.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummaryDiff(original, optimized string) {
	diff := DiffSummary(original, optimized)

	var parts []string
	for _, d := range diff.Diffs {
		words := strings.Join(strings.Fields(d.Text), " ")
		if words == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			parts = append(parts, p.colorize("{+"+words+"+}", color.FgGreen))
		case diffmatchpatch.DiffDelete:
			parts = append(parts, p.colorize("[-"+words+"-]", color.FgRed))
		default:
			parts = append(parts, words)
		}
	}

	fmt.Fprintln(p.out, p.colorize("Summary changes:", color.FgCyan))
	fmt.Fprintln(p.out, strings.Join(parts, " "))
	fmt.Fprintf(p.out, "(%d words added, %d removed)\n", diff.Added, diff.Removed)
}
