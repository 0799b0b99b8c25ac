package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known job board.
type Platform string

// Recognized job boards.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformUnknown    Platform = "unknown"
)

type boardProfile struct {
	hosts   []string
	content []string
	noise   []string
}

var boards = map[Platform]boardProfile{
	PlatformGreenhouse: {
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description"},
		noise:   []string{".apply-section", ".posting-apply"},
	},
	PlatformWorkday: {
		hosts:   []string{"myworkdayjobs.com", "workday.com"},
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']"},
		noise:   []string{"[data-automation-id='applyButton']"},
	},
	PlatformAshby: {
		hosts:   []string{"ashbyhq.com"},
		content: []string{"[class*='descriptionText']", "main"},
	},
	PlatformLinkedIn: {
		hosts:   []string{"linkedin.com"},
		content: []string{".show-more-less-html__markup", ".description__text", ".jobs-description"},
		noise:   []string{".show-more-less-html__button", ".similar-jobs"},
	},
}

// commonNoise is removed on every board.
var commonNoise = []string{
	"#application-form", ".application-form", ".apply-button-container",
	".eeo-statement", ".eeo-section", ".legal-disclosure",
	".social-share", ".share-buttons", ".gdpr-notice",
}

// genericContent is tried on pages from unrecognized hosts.
var genericContent = []string{
	".job-description", "#job-description", ".job-content", ".job-details",
	"[data-testid='job-description']", "main", "article", ".content", "#content",
}

// DetectPlatform identifies the job board serving rawURL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for platform, profile := range boards {
		for _, h := range profile.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return platform
			}
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns the description selectors for a platform, most specific first.
func ContentSelectors(platform Platform) []string {
	profile, ok := boards[platform]
	if !ok {
		return append([]string(nil), genericContent...)
	}
	return append(append([]string(nil), profile.content...), genericContent...)
}

// NoiseSelectors returns elements to strip for a platform.
func NoiseSelectors(platform Platform) []string {
	return append(append([]string(nil), commonNoise...), boards[platform].noise...)
}
