package rendering

import (
	"bytes"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/blkdmnd/visual-thesis/internal/types"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth    = 210.0
	headerHeight = 40.0
	marginLeft   = 20.0
	marginRight  = 190.0
	bulletIndent = 25.0

	summaryWidth = 170.0
	bulletWidth  = 160.0

	// lineAdvance is the cursor step per wrapped line.
	lineAdvance = 5.0

	skillSeparator = "  •  "
)

// Section headings.
const (
	HeadingSummary    = "PROFESSIONAL SUMMARY"
	HeadingExperience = "RELEVANT EXPERIENCE"
	HeadingSkills     = "CORE COMPETENCIES"
)

type rgb struct{ r, g, b int }

var (
	brandColor = rgb{236, 157, 52} // #EC9D34
	white      = rgb{255, 255, 255}
	bodyColor  = rgb{40, 40, 40}
	mutedColor = rgb{100, 100, 100}
)

// documentDate is stamped as creation and modification date so identical
// input produces identical bytes.
var documentDate = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// ExportPDF renders the tailored resume. The content is laid out on a single
// page; text past the bottom edge is not paginated.
func ExportPDF(profile *types.Profile, analysis *types.AlignmentAnalysis) ([]byte, error) {
	doc, err := BuildDocument(profile, analysis)
	if err != nil {
		return nil, err
	}
	return RenderPDF(doc)
}

// RenderPDF draws a prepared document.
func RenderPDF(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Name+" Tailored Resume", true)
	pdf.SetCreator("visual-thesis", true)

	w := &writer{pdf: pdf, enc: newTextEncoder(pdf)}
	pdf.AddPage()

	w.header(doc)
	y := w.summary(doc.Summary)
	y = w.experience(doc.Experience, y)
	w.skills(doc.Skills, y)

	if pdf.Err() {
		return nil, &RenderError{Message: "failed to draw document", Cause: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Message: "failed to write PDF", Cause: err}
	}
	return buf.Bytes(), nil
}

type writer struct {
	pdf *fpdf.Fpdf
	enc *textEncoder
}

func (w *writer) font(style string, size float64, color rgb) {
	w.pdf.SetFont("Helvetica", style, size)
	w.pdf.SetTextColor(color.r, color.g, color.b)
}

func (w *writer) text(x, y float64, s string) {
	w.pdf.Text(x, y, w.enc.Encode(s))
}

func (w *writer) textRight(x, y float64, s string) {
	encoded := w.enc.Encode(s)
	w.pdf.Text(x-w.pdf.GetStringWidth(encoded), y, encoded)
}

// wrapped draws s split to width starting at baseline y and returns the line count.
func (w *writer) wrapped(x, y, width float64, s string) int {
	lines := w.pdf.SplitLines([]byte(w.enc.Encode(s)), width)
	_, fontSize := w.pdf.GetFontSize()
	leading := fontSize * 1.15
	for i, line := range lines {
		w.pdf.Text(x, y+float64(i)*leading, strings.TrimRight(string(line), " "))
	}
	return len(lines)
}

func (w *writer) heading(title string, y float64) {
	w.font("B", 14, bodyColor)
	w.text(marginLeft, y, title)
	w.pdf.Line(marginLeft, y+3, marginRight, y+3)
}

func (w *writer) header(doc *Document) {
	w.pdf.SetFillColor(brandColor.r, brandColor.g, brandColor.b)
	w.pdf.Rect(0, 0, pageWidth, headerHeight, "F")

	w.font("B", 28, white)
	w.text(marginLeft, 25, doc.Name)

	w.font("", 10, white)
	w.text(marginLeft, 32, doc.Contact)

	w.pdf.SetDrawColor(brandColor.r, brandColor.g, brandColor.b)
	w.pdf.SetLineWidth(0.5)
}

func (w *writer) summary(summary string) float64 {
	w.heading(HeadingSummary, 55)

	w.font("", 10, bodyColor)
	n := w.wrapped(marginLeft, 65, summaryWidth, summary)
	return 65 + float64(n)*lineAdvance + 10
}

func (w *writer) experience(sections []ExperienceSection, y float64) float64 {
	w.heading(HeadingExperience, y)
	y += 12

	for _, section := range sections {
		w.font("B", 12, bodyColor)
		w.text(marginLeft, y, section.Title)
		w.font("", 12, bodyColor)
		w.textRight(marginRight, y, section.Company)
		y += 5

		w.font("", 9, mutedColor)
		w.text(marginLeft, y, section.Period)
		w.pdf.SetTextColor(bodyColor.r, bodyColor.g, bodyColor.b)
		y += 6

		for _, bullet := range section.Bullets {
			n := w.wrapped(bulletIndent, y, bulletWidth, "• "+bullet)
			y += float64(n) * lineAdvance
		}
		y += 5
	}
	return y
}

func (w *writer) skills(skills []string, y float64) {
	w.heading(HeadingSkills, y)
	y += 10

	w.font("", 10, bodyColor)
	w.text(marginLeft, y, strings.Join(skills, skillSeparator))
}
