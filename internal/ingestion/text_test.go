package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blkdmnd/visual-thesis/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	result := CleanText("# Title\n## Subtitle\nContent here")
	assert.Equal(t, "# Title\n## Subtitle\nContent here", result)
}

func TestCleanText_Bullets(t *testing.T) {
	result := CleanText("- Item 1\n• Item 2\n* Item 3")
	assert.Equal(t, "- Item 1\n- Item 2\n* Item 3", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "Line with multiple spaces", CleanText("Line    with \t multiple  spaces"))
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	assert.Equal(t, "Line 1\n\nLine 2", CleanText("Line 1\n\n\n\n\nLine 2"))
	assert.Equal(t, "A\n\nB", CleanText("A\n   \n \t \n\nB"))
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", CleanText("Line 1\r\nLine 2\rLine 3\nLine 4"))
}

func TestCleanText_EmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"
	assert.Equal(t, input, CleanText(input))
}

func TestCleanText_PreserveNestedIndentation(t *testing.T) {
	result := CleanText("Requirements\n  - Go\n    - generics")
	assert.Equal(t, "Requirements\n  - Go\n    - generics", result)
}

func TestCleanText_Deterministic(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	assert.Equal(t, CleanText(input), CleanText(CleanText(input)))
}

func TestFromText(t *testing.T) {
	jd, err := FromText("  Staff AI Engineer \r\n\r\n\r\nBuild agents.  ")
	require.NoError(t, err)

	assert.Equal(t, "Staff AI Engineer\n\nBuild agents.", jd.Text)
	assert.Equal(t, SourceText, jd.Source)
	assert.Len(t, jd.Hash, 64)
	assert.False(t, jd.Retrieved.IsZero())
}

func TestFromText_Empty(t *testing.T) {
	_, err := FromText(" \n\t ")
	assert.ErrorIs(t, err, ErrEmptyDescription)
}

func TestFromText_HashTracksContent(t *testing.T) {
	a, err := FromText("Role A")
	require.NoError(t, err)
	b, err := FromText("Role   A")
	require.NoError(t, err)
	c, err := FromText("Role B")
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("# Job Title\n\nDescription here\n"), 0o600))

	jd, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Job Title\n\nDescription here", jd.Text)
	assert.Equal(t, SourceFile, jd.Source)
}

func TestFromFile_NotFound(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestFromGig(t *testing.T) {
	jd, err := FromGig(types.TargetGig{ID: "staff-ai", Title: " Staff AI Engineer ", Description: "Own the agent platform."})
	require.NoError(t, err)

	assert.Equal(t, "Staff AI Engineer", jd.Title)
	assert.Equal(t, "Own the agent platform.", jd.Text)
	assert.Equal(t, SourceGig, jd.Source)
}

func TestFromGig_EmptyDescription(t *testing.T) {
	_, err := FromGig(types.TargetGig{ID: "empty"})
	assert.ErrorIs(t, err, ErrEmptyDescription)
}
