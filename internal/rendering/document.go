// Package rendering turns an alignment analysis into a downloadable resume PDF.
package rendering

import (
	"fmt"
	"strings"

	"github.com/blkdmnd/visual-thesis/internal/types"
)

// Document is the resume content in drawing order.
type Document struct {
	Name       string
	Contact    string
	Summary    string
	Experience []ExperienceSection
	Skills     []string
}

// ExperienceSection is one employer block.
type ExperienceSection struct {
	Title   string
	Company string
	Period  string
	Bullets []string
}

// BuildDocument merges the analysis with the profile. Experience follows the
// analysis order; title and period come from the profile entry with the same
// company name and are left blank when there is none. Bullets come only from
// the analysis.
func BuildDocument(profile *types.Profile, analysis *types.AlignmentAnalysis) (*Document, error) {
	if profile == nil {
		return nil, &RenderError{Message: "profile is required"}
	}
	if analysis == nil {
		return nil, &RenderError{Message: "analysis is required"}
	}

	doc := &Document{
		Name:       strings.ToUpper(profile.Name),
		Contact:    fmt.Sprintf("%s | %s | %s", profile.Email, profile.Phone, profile.Location),
		Summary:    analysis.OptimizedSummary,
		Experience: make([]ExperienceSection, 0, len(analysis.OptimizedExperience)),
		Skills:     append([]string(nil), profile.Skills...),
	}

	for _, exp := range analysis.OptimizedExperience {
		section := ExperienceSection{
			Company: exp.Company,
			Bullets: append([]string(nil), exp.Bullets...),
		}
		if original, ok := profile.FindExperience(exp.Company); ok {
			section.Title = original.Title
			section.Period = original.Period
		}
		doc.Experience = append(doc.Experience, section)
	}

	return doc, nil
}

// FileName returns the download name for a tailored resume.
func FileName(name string) string {
	return name + "_Tailored_Resume.pdf"
}
