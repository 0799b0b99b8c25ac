package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blkdmnd/visual-thesis/internal/types"
)

// ErrEmptyDescription is returned when a source yields no text.
var ErrEmptyDescription = errors.New("job description is empty")

// Source names where a job description came from.
type Source string

// Job description sources.
const (
	SourceText Source = "text"
	SourceFile Source = "file"
	SourceGig  Source = "gig"
	SourceURL  Source = "url"
)

// JobDescription is cleaned posting text plus provenance.
type JobDescription struct {
	Text      string    `json:"text"`
	Title     string    `json:"title,omitempty"`
	Source    Source    `json:"source"`
	URL       string    `json:"url,omitempty"`
	Platform  string    `json:"platform,omitempty"`
	Hash      string    `json:"hash"`
	Retrieved time.Time `json:"retrieved"`
}

func newDescription(text string, source Source) (*JobDescription, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, ErrEmptyDescription
	}
	return &JobDescription{
		Text:      cleaned,
		Source:    source,
		Hash:      computeHash(cleaned),
		Retrieved: time.Now().UTC(),
	}, nil
}

// FromText cleans pasted text.
func FromText(text string) (*JobDescription, error) {
	return newDescription(text, SourceText)
}

// FromFile reads and cleans a text file.
func FromFile(path string) (*JobDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return newDescription(string(data), SourceFile)
}

// FromGig uses a target gig's description as the job description.
func FromGig(gig types.TargetGig) (*JobDescription, error) {
	jd, err := newDescription(gig.Description, SourceGig)
	if err != nil {
		return nil, err
	}
	jd.Title = strings.TrimSpace(gig.Title)
	return jd, nil
}

// computeHash returns the SHA-256 hex digest of content.
func computeHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
