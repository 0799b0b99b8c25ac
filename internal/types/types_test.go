//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *Profile {
	return &Profile{
		Name:  "Ada Example",
		Email: "ada@example.com",
		Experience: []Experience{
			{Title: "Architect", Company: "Acme", Period: "2023 - Present", Bullets: []string{"Built things"}},
			{Title: "Engineer", Company: "Globex", Period: "2020 - 2023", Bullets: []string{"Shipped things"}},
		},
		Skills: []string{"Go", "Python"},
	}
}

func TestProfile_FindExperience(t *testing.T) {
	p := sampleProfile()

	exp, ok := p.FindExperience("Globex")
	require.True(t, ok)
	assert.Equal(t, "Engineer", exp.Title)
	assert.Equal(t, "2020 - 2023", exp.Period)

	_, ok = p.FindExperience("globex")
	assert.False(t, ok, "lookup is exact, not case-insensitive")

	exp, ok = p.FindExperience("Initech")
	assert.False(t, ok)
	assert.Empty(t, exp.Title)
	assert.Empty(t, exp.Period)
}

func TestProfile_CloneIsDeep(t *testing.T) {
	p := sampleProfile()
	c := p.Clone()

	c.Skills[0] = "Rust"
	c.Experience[0].Bullets[0] = "changed"
	c.Experience[1].Title = "changed"

	assert.Equal(t, "Go", p.Skills[0])
	assert.Equal(t, "Built things", p.Experience[0].Bullets[0])
	assert.Equal(t, "Engineer", p.Experience[1].Title)

	var nilProfile *Profile
	assert.Nil(t, nilProfile.Clone())
}

func TestProfile_Validation(t *testing.T) {
	p := sampleProfile()
	require.NoError(t, ValidateStruct(p))

	p.Email = "not-an-email"
	assert.Error(t, ValidateStruct(p))

	p = sampleProfile()
	p.Experience[1].Company = ""
	err := ValidateStruct(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Company")
}

func TestAlignmentRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request AlignmentRequest
		wantErr bool
	}{
		{name: "job description", request: AlignmentRequest{JobDescription: "Senior Go engineer"}},
		{name: "gig id", request: AlignmentRequest{GigID: "genai_arch"}},
		{name: "job url", request: AlignmentRequest{JobURL: "https://example.com/jobs/1"}},
		{name: "nothing", request: AlignmentRequest{}, wantErr: true},
		{name: "bad url", request: AlignmentRequest{JobURL: "not a url"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContactRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request ContactRequest
		wantErr bool
		errMsg  string
	}{
		{name: "valid", request: ContactRequest{Email: "r@example.com", Message: "Hello"}},
		{name: "missing email", request: ContactRequest{Message: "Hello"}, wantErr: true, errMsg: "required"},
		{name: "invalid email", request: ContactRequest{Email: "nope", Message: "Hello"}, wantErr: true, errMsg: "email"},
		{name: "missing message", request: ContactRequest{Email: "r@example.com"}, wantErr: true, errMsg: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChatTurnRequest_Validation(t *testing.T) {
	assert.NoError(t, (&ChatTurnRequest{Text: "hi"}).Validate())
	assert.Error(t, (&ChatTurnRequest{}).Validate())
}

func TestExportRequest_Validation(t *testing.T) {
	assert.Error(t, (&ExportRequest{}).Validate())
	assert.NoError(t, (&ExportRequest{Analysis: &AlignmentAnalysis{}}).Validate())
}
