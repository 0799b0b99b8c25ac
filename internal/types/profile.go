// Package types provides type definitions for structured data used throughout the portfolio service.
package types

// Profile is the candidate's ground-truth identity used as the source of truth
// for both the chat assistant and the resume alignment pipeline.
type Profile struct {
	Name       string       `json:"name" yaml:"name" validate:"required"`
	Email      string       `json:"email" yaml:"email" validate:"required,email"`
	Phone      string       `json:"phone" yaml:"phone"`
	Location   string       `json:"location" yaml:"location"`
	Summary    string       `json:"summary" yaml:"summary"`
	Experience []Experience `json:"experience" yaml:"experience" validate:"dive"`
	Skills     []string     `json:"skills" yaml:"skills"`
}

// Experience is one employment entry of a Profile.
type Experience struct {
	Title   string   `json:"title" yaml:"title" validate:"required"`
	Company string   `json:"company" yaml:"company" validate:"required"`
	Period  string   `json:"period" yaml:"period"`
	Bullets []string `json:"bullets" yaml:"bullets"`
}

// FindExperience returns the experience entry whose company equals the given name.
// The comparison is exact; the second return value reports whether a match was found.
func (p *Profile) FindExperience(company string) (Experience, bool) {
	for _, exp := range p.Experience {
		if exp.Company == company {
			return exp, true
		}
	}
	return Experience{}, false
}

// Clone returns a deep copy so callers can never mutate shared profile data.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Skills = append([]string(nil), p.Skills...)
	out.Experience = make([]Experience, len(p.Experience))
	for i, exp := range p.Experience {
		exp.Bullets = append([]string(nil), exp.Bullets...)
		out.Experience[i] = exp
	}
	return &out
}
