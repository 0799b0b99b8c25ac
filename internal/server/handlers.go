package server

import (
	"bytes"
	"log"
	"mime"
	"net/http"

	"github.com/blkdmnd/visual-thesis/internal/theme"
	"github.com/blkdmnd/visual-thesis/internal/types"
	"github.com/blkdmnd/visual-thesis/internal/web"
)

// handleIndex renders the page shell in the visitor's theme.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	mode := theme.NewContext(&theme.CookiePersistence{Request: r, Writer: w}).Mode()

	data := web.PageData{
		Site:                s.content.Site(),
		Identity:            s.content.Identity(),
		Theme:               string(mode),
		HiringSteps:         s.content.HiringSteps(),
		Certifications:      s.content.Certifications(),
		TargetGigs:          s.content.TargetGigs(),
		ExplainerPhases:     s.content.ExplainerPhases(),
		Toolkit:             s.content.Toolkit(),
		CloudArchitecture:   s.content.CloudArchitecture(),
		Competencies:        s.content.Competencies(),
		Projects:            s.content.Projects(),
		EnterpriseReadiness: s.content.EnterpriseReadiness(),
	}

	// Render to a buffer so a template failure can still produce a 500.
	var buf bytes.Buffer
	if err := s.page.Render(&buf, data); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("[server] error writing page: %v", err)
	}
}

// handleContent returns every content section.
func (s *Server) handleContent(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.content.All())
}

// handleContentSection returns one named section.
func (s *Server) handleContentSection(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("section")
	section, ok := s.content.Section(name)
	if !ok {
		s.handleError(w, r, &ErrNotFound{Resource: "section", ID: name})
		return
	}
	s.jsonResponse(w, http.StatusOK, section)
}

// handleGetTheme reports the theme stored in the visitor's cookie.
func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	mode := theme.NewContext(&theme.CookiePersistence{Request: r, Writer: w}).Mode()
	s.jsonResponse(w, http.StatusOK, types.ThemeResponse{Theme: string(mode)})
}

// handleToggleTheme flips the theme cookie. Form posts from the page are
// redirected back to it; API callers get JSON.
func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	mode, err := theme.NewContext(&theme.CookiePersistence{Request: r, Writer: w}).Toggle()
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if isFormPost(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ThemeResponse{Theme: string(mode)})
}

func isFormPost(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data"
}
