// Package web renders the server-side HTML shell of the portfolio page.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/blkdmnd/visual-thesis/internal/types"
)

//go:embed templates/*.html
var templateFiles embed.FS

// PageData is everything the page template reads.
type PageData struct {
	Site                types.SiteMetadata
	Identity            types.Identity
	Theme               string
	HiringSteps         []types.HiringStep
	Certifications      []types.Certification
	TargetGigs          []types.TargetGig
	ExplainerPhases     []types.ExplainerPhase
	Toolkit             []types.ToolkitItem
	CloudArchitecture   []types.CloudService
	Competencies        []types.Competency
	Projects            []types.Project
	EnterpriseReadiness []types.ReadinessItem
}

// Page is the parsed page template. It is safe for concurrent use.
type Page struct {
	tmpl *template.Template
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"join":  strings.Join,
}

// NewPage parses the embedded templates.
func NewPage() (*Page, error) {
	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &Page{tmpl: tmpl}, nil
}

// Render writes the page for data to w.
func (p *Page) Render(w io.Writer, data PageData) error {
	if err := p.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
