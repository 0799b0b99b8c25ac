package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/blkdmnd/visual-thesis/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the posting cannot be downloaded.
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled from the page.
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLIngester downloads job postings and extracts their description text.
// Renderer is optional; when set it is used for pages whose static HTML
// yields too little text.
type URLIngester struct {
	Fetcher  *fetch.Fetcher
	Renderer fetch.Renderer
	Verbose  bool
}

// NewURLIngester returns an ingester with a default fetcher and no browser fallback.
func NewURLIngester() *URLIngester {
	return &URLIngester{Fetcher: fetch.New()}
}

// FromURL fetches rawURL and returns its cleaned description text.
func (u *URLIngester) FromURL(ctx context.Context, rawURL string) (*JobDescription, error) {
	fetcher := u.Fetcher
	if fetcher == nil {
		fetcher = fetch.New()
	}

	if err := fetch.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	platform := fetch.DetectPlatform(rawURL)
	u.logf("URL: %s (platform %s)", rawURL, platform)

	page, err := fetcher.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	u.logf("fetched HTML: %d bytes", len(page.HTML))

	content := fetch.ContentSelectors(platform)
	noise := fetch.NoiseSelectors(platform)

	text, err := fetch.ExtractMainText(page.HTML, content, noise...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	html := page.HTML

	if u.Renderer != nil && fetch.ShouldUseBrowser(text) {
		u.logf("content too short (%d chars < %d), rendering in browser", len(text), fetch.MinContentLength)
		rendered, renderErr := u.Renderer.Render(ctx, rawURL)
		switch {
		case renderErr != nil:
			log.Printf("[ingestion] browser rendering failed, keeping static content: %v", renderErr)
		default:
			if renderedText, extractErr := fetch.ExtractMainText(rendered, content, noise...); extractErr == nil && len(renderedText) > len(text) {
				text = renderedText
				html = rendered
			}
		}
	}

	jd, err := newDescription(text, SourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	jd.URL = rawURL
	jd.Platform = string(platform)
	jd.Title = fetch.Title(html)
	return jd, nil
}

func (u *URLIngester) logf(format string, args ...any) {
	if u.Verbose {
		log.Printf("[VERBOSE] "+format, args...)
	}
}
