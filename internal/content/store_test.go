package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedContent(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "#EC9D34", s.Site().BrandAccent)
	assert.Equal(t, "Greg Dukes", s.Identity().Name)
	assert.Len(t, s.Certifications(), 5)
	assert.Len(t, s.TargetGigs(), 3)
	assert.Len(t, s.ExplainerPhases(), 5)
	assert.NotEmpty(t, s.Competencies())
	assert.NotEmpty(t, s.ArchitectureSpecs())
}

func TestCandidateProfile(t *testing.T) {
	s := MustDefault()
	p := s.CandidateProfile()

	assert.Equal(t, "Greg Dukes", p.Name)
	assert.Equal(t, "g.dukes1@gmail.com", p.Email)
	assert.Equal(t, "Charlotte, NC", p.Location)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "BLKDMND Digital", p.Experience[0].Company)
	assert.Equal(t, "Tech Systems Inc", p.Experience[1].Company)
	assert.Contains(t, p.Skills, "System Design")
}

func TestCandidateProfile_IsACopy(t *testing.T) {
	s := MustDefault()
	p := s.CandidateProfile()
	p.Experience[0].Bullets[0] = "mutated"
	p.Skills[0] = "mutated"

	again := s.CandidateProfile()
	assert.NotEqual(t, "mutated", again.Experience[0].Bullets[0])
	assert.NotEqual(t, "mutated", again.Skills[0])
}

func TestGig(t *testing.T) {
	s := MustDefault()

	g, ok := s.Gig("ai_systems")
	require.True(t, ok)
	assert.Equal(t, "AI Systems Design Lead", g.Title)
	assert.Contains(t, g.Description, "zero-fabrication")

	_, ok = s.Gig("missing")
	assert.False(t, ok)
}

func TestCertification_Bounds(t *testing.T) {
	s := MustDefault()

	c, ok := s.Certification(0)
	require.True(t, ok)
	assert.Equal(t, "Amazon Web Services", c.Issuer)

	_, ok = s.Certification(-1)
	assert.False(t, ok)
	_, ok = s.Certification(99)
	assert.False(t, ok)
}

func TestExplainerPhases_Durations(t *testing.T) {
	for _, phase := range MustDefault().ExplainerPhases() {
		assert.Equal(t, 6000, phase.DurationMS, phase.Title)
		assert.NotEmpty(t, phase.Tags, phase.Title)
	}
}

func TestFeaturedProjects(t *testing.T) {
	featured := MustDefault().FeaturedProjects()
	require.Len(t, featured, 2)
	require.Len(t, featured[1].Actions, 1)
	assert.Equal(t, "fasttrack_demo", featured[1].Actions[0].Target)
}

func TestSection(t *testing.T) {
	s := MustDefault()
	for _, name := range SectionNames {
		v, ok := s.Section(name)
		assert.True(t, ok, name)
		assert.NotNil(t, v, name)
	}

	_, ok := s.Section("unknown")
	assert.False(t, ok)

	assert.Len(t, s.All(), len(SectionNames))
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("site: [unclosed"))
	require.Error(t, err)

	var contentErr *Error
	assert.ErrorAs(t, err, &contentErr)
	assert.Contains(t, err.Error(), "failed to parse content YAML")
}

func TestParse_FailsValidation(t *testing.T) {
	doc := `
site:
  title: "t"
  owner: "o"
  brand_accent: "not-a-color"
identity:
  name: "n"
  contact:
    email: "n@example.com"
explainer_phases:
  - title: "only"
    duration_ms: 100
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content failed validation")
}

func TestParse_RequiresExplainerPhases(t *testing.T) {
	doc := `
site:
  title: "t"
  owner: "o"
  brand_accent: "#000000"
identity:
  name: "n"
  contact:
    email: "n@example.com"
`
	_, err := Parse([]byte(doc))
	assert.Error(t, err)
}
