package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// AlignmentAnalysis is the structured output of one alignment request.
type AlignmentAnalysis struct {
	MatchScore          float64               `json:"matchScore"`
	GapAnalysis         []string              `json:"gapAnalysis"`
	OptimizedSummary    string                `json:"optimizedSummary"`
	OptimizedExperience []OptimizedExperience `json:"optimizedExperience"`
	LinkedInSuggestions ProfileSuggestions    `json:"linkedinSuggestions"`
}

// OptimizedExperience holds rewritten bullets for one employer of the profile.
type OptimizedExperience struct {
	Company string   `json:"company"`
	Bullets []string `json:"bullets"`
}

// ProfileSuggestions is the suggested professional-network headline and about text.
type ProfileSuggestions struct {
	Headline string `json:"headline"`
	About    string `json:"about"`
}

// AlignmentRequest is the request body for an alignment analysis.
// Exactly one source of the job description is used, in order: JobDescription, GigID, JobURL.
type AlignmentRequest struct {
	JobDescription string `json:"job_description,omitempty"`
	GigID          string `json:"gig_id,omitempty"`
	JobURL         string `json:"job_url,omitempty" validate:"omitempty,url"`
}

// Validate validates the AlignmentRequest using the validator.
func (r *AlignmentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.JobDescription == "" && r.GigID == "" && r.JobURL == "" {
		return errors.New("one of job_description, gig_id or job_url is required")
	}
	return nil
}

// ExportRequest is the request body for rendering an analysis as a PDF.
type ExportRequest struct {
	Analysis *AlignmentAnalysis `json:"analysis" validate:"required"`
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	return validate.Struct(r)
}
