// Package content provides the read-only content store for the portfolio.
// Content is stored as YAML and embedded at compile time.
package content

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"github.com/blkdmnd/visual-thesis/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embedded []byte

// Document mirrors the layout of content.yaml.
type Document struct {
	Site                types.SiteMetadata       `yaml:"site"`
	Identity            types.Identity           `yaml:"identity"`
	Resume              types.Resume             `yaml:"resume"`
	HiringSteps         []types.HiringStep       `yaml:"hiring_steps"`
	Certifications      []types.Certification    `yaml:"certifications" validate:"dive"`
	TargetGigs          []types.TargetGig        `yaml:"target_gigs" validate:"dive"`
	ExplainerPhases     []types.ExplainerPhase   `yaml:"explainer_phases" validate:"min=1,dive"`
	Toolkit             []types.ToolkitItem      `yaml:"toolkit"`
	CloudArchitecture   []types.CloudService     `yaml:"cloud_architecture"`
	Competencies        []types.Competency       `yaml:"competencies"`
	Projects            []types.Project          `yaml:"projects"`
	ArchitectureSpecs   []types.ArchitectureSpec `yaml:"architecture_specs"`
	EnterpriseReadiness []types.ReadinessItem    `yaml:"enterprise_readiness"`
}

// Store is an immutable view over a parsed content Document.
type Store struct {
	doc Document
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// Default returns the store built from the embedded content, parsing it once.
func Default() (*Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = Parse(embedded)
	})
	return defaultStore, defaultErr
}

// MustDefault returns the embedded store, panicking if the embedded content is invalid.
func MustDefault() *Store {
	s, err := Default()
	if err != nil {
		panic(fmt.Sprintf("failed to load embedded content: %v", err))
	}
	return s
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Store, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Message: "failed to parse content YAML", Cause: err}
	}
	if err := types.ValidateStruct(&doc); err != nil {
		return nil, &Error{Message: "content failed validation", Cause: err}
	}
	return &Store{doc: doc}, nil
}

// Site returns the site metadata.
func (s *Store) Site() types.SiteMetadata { return s.doc.Site }

// Identity returns the public biography.
func (s *Store) Identity() types.Identity {
	id := s.doc.Identity
	id.Roles = slices.Clone(id.Roles)
	return id
}

// CandidateProfile builds the Profile used as the source of truth for generation requests.
func (s *Store) CandidateProfile() *types.Profile {
	p := &types.Profile{
		Name:       s.doc.Identity.Name,
		Email:      s.doc.Identity.Contact.Email,
		Phone:      s.doc.Identity.Contact.Phone,
		Location:   s.doc.Identity.Location,
		Summary:    s.doc.Identity.Bio,
		Experience: s.doc.Resume.Experience,
		Skills:     s.doc.Resume.Skills,
	}
	return p.Clone()
}

// HiringSteps returns the hiring walkthrough steps.
func (s *Store) HiringSteps() []types.HiringStep { return slices.Clone(s.doc.HiringSteps) }

// Certifications returns the credentials gallery.
func (s *Store) Certifications() []types.Certification { return slices.Clone(s.doc.Certifications) }

// Certification returns the certification at index i.
func (s *Store) Certification(i int) (types.Certification, bool) {
	if i < 0 || i >= len(s.doc.Certifications) {
		return types.Certification{}, false
	}
	return s.doc.Certifications[i], true
}

// TargetGigs returns the job description templates.
func (s *Store) TargetGigs() []types.TargetGig { return slices.Clone(s.doc.TargetGigs) }

// Gig returns the target gig with the given id.
func (s *Store) Gig(id string) (types.TargetGig, bool) {
	for _, g := range s.doc.TargetGigs {
		if g.ID == id {
			return g, true
		}
	}
	return types.TargetGig{}, false
}

// ExplainerPhases returns the explainer slideshow phases in order.
func (s *Store) ExplainerPhases() []types.ExplainerPhase { return slices.Clone(s.doc.ExplainerPhases) }

// Toolkit returns the toolkit grid.
func (s *Store) Toolkit() []types.ToolkitItem { return slices.Clone(s.doc.Toolkit) }

// CloudArchitecture returns the hosting architecture narrative.
func (s *Store) CloudArchitecture() []types.CloudService {
	return slices.Clone(s.doc.CloudArchitecture)
}

// Competencies returns the competency groups.
func (s *Store) Competencies() []types.Competency { return slices.Clone(s.doc.Competencies) }

// Projects returns the showcased projects.
func (s *Store) Projects() []types.Project { return slices.Clone(s.doc.Projects) }

// FeaturedProjects returns only the featured projects.
func (s *Store) FeaturedProjects() []types.Project {
	var out []types.Project
	for _, p := range s.doc.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// ArchitectureSpecs returns the architecture notes.
func (s *Store) ArchitectureSpecs() []types.ArchitectureSpec {
	return slices.Clone(s.doc.ArchitectureSpecs)
}

// EnterpriseReadiness returns the readiness pillars.
func (s *Store) EnterpriseReadiness() []types.ReadinessItem {
	return slices.Clone(s.doc.EnterpriseReadiness)
}

// SectionNames lists the names accepted by Section, in page order.
var SectionNames = []string{
	"site",
	"identity",
	"hiring-steps",
	"certifications",
	"gigs",
	"explainer",
	"toolkit",
	"cloud-architecture",
	"competencies",
	"projects",
	"architecture-specs",
	"enterprise-readiness",
}

// Section returns a named section of the content for API consumers.
func (s *Store) Section(name string) (any, bool) {
	switch name {
	case "site":
		return s.Site(), true
	case "identity":
		return s.Identity(), true
	case "hiring-steps":
		return s.HiringSteps(), true
	case "certifications":
		return s.Certifications(), true
	case "gigs":
		return s.TargetGigs(), true
	case "explainer":
		return s.ExplainerPhases(), true
	case "toolkit":
		return s.Toolkit(), true
	case "cloud-architecture":
		return s.CloudArchitecture(), true
	case "competencies":
		return s.Competencies(), true
	case "projects":
		return s.Projects(), true
	case "architecture-specs":
		return s.ArchitectureSpecs(), true
	case "enterprise-readiness":
		return s.EnterpriseReadiness(), true
	default:
		return nil, false
	}
}

// All returns every section keyed by name.
func (s *Store) All() map[string]any {
	out := make(map[string]any, len(SectionNames))
	for _, name := range SectionNames {
		v, _ := s.Section(name)
		out[name] = v
	}
	return out
}
