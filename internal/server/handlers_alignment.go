package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/blkdmnd/visual-thesis/internal/alignment"
	"github.com/blkdmnd/visual-thesis/internal/ingestion"
	"github.com/blkdmnd/visual-thesis/internal/observability"
	"github.com/blkdmnd/visual-thesis/internal/rendering"
	"github.com/blkdmnd/visual-thesis/internal/types"
)

// handleAlignment analyzes the candidate profile against a job description
// given as text, a target gig id or a posting URL.
func (s *Server) handleAlignment(w http.ResponseWriter, r *http.Request) {
	var req types.AlignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, &alignment.ValidationError{Field: "job_description", Message: err.Error()})
		return
	}

	jd, err := s.resolveJobDescription(r.Context(), req)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), s.profile, jd.Text)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// resolveJobDescription picks the first source present, in the order text, gig, URL.
func (s *Server) resolveJobDescription(ctx context.Context, req types.AlignmentRequest) (*ingestion.JobDescription, error) {
	switch {
	case req.JobDescription != "":
		jd, err := ingestion.FromText(req.JobDescription)
		if errors.Is(err, ingestion.ErrEmptyDescription) {
			return nil, &alignment.ValidationError{Field: "job_description", Message: "missing job description"}
		}
		return jd, err
	case req.GigID != "":
		gig, ok := s.content.Gig(req.GigID)
		if !ok {
			return nil, &ErrNotFound{Resource: "gig", ID: req.GigID}
		}
		return ingestion.FromGig(gig)
	default:
		return s.ingester.FromURL(ctx, req.JobURL)
	}
}

// handleExport renders a posted analysis as a PDF attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req types.ExportRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "analysis", Message: "analysis is required"})
		return
	}

	pdf, err := rendering.ExportPDF(s.profile, req.Analysis)
	if err != nil {
		s.metrics.IncPDFExport(observability.OutcomeError)
		s.handleError(w, r, err)
		return
	}
	s.metrics.IncPDFExport(observability.OutcomeOK)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+rendering.FileName(s.profile.Name)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
