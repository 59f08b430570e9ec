package models

import "strings"

// DefaultMaxDocuments applies when a request omits max_documents.
const DefaultMaxDocuments = 5

// RequiredFieldsMessage is returned when url or webhook_url is missing.
const RequiredFieldsMessage = "Both 'url' (Indian Kanoon search) and 'webhook_url' (n8n) are required."

// Output formats for the delivered judgment text.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// ScrapeRequest is the payload for POST /scrape.
type ScrapeRequest struct {
	// URL is the search-results page listing judgments. Required.
	URL string `json:"url"`

	// WebhookURL receives one POST per scraped judgment. Required.
	WebhookURL string `json:"webhook_url"`

	// MaxDocuments caps how many results are processed, in page order.
	// Default: 5. Zero or negative disables the cap.
	MaxDocuments *int `json:"max_documents,omitempty"`

	// Format selects how the judgment container is turned into text.
	// Allowed: "text" (default), "markdown".
	Format string `json:"format,omitempty"`
}

// Defaults applies default values to unset fields.
func (r *ScrapeRequest) Defaults() {
	r.URL = strings.TrimSpace(r.URL)
	r.WebhookURL = strings.TrimSpace(r.WebhookURL)
	if r.MaxDocuments == nil {
		n := DefaultMaxDocuments
		r.MaxDocuments = &n
	}
	if r.Format == "" {
		r.Format = FormatText
	}
}

// Validate reports the first problem that makes the request unusable.
func (r *ScrapeRequest) Validate() *ScrapeError {
	if strings.TrimSpace(r.URL) == "" || strings.TrimSpace(r.WebhookURL) == "" {
		return NewScrapeError(ErrCodeInvalidInput, RequiredFieldsMessage, nil)
	}
	switch r.Format {
	case "", FormatText, FormatMarkdown:
	default:
		return NewScrapeError(ErrCodeInvalidInput, "'format' must be 'text' or 'markdown'.", nil)
	}
	return nil
}

// Limit returns the effective document cap; 0 means unlimited.
func (r *ScrapeRequest) Limit() int {
	if r.MaxDocuments == nil {
		return DefaultMaxDocuments
	}
	if *r.MaxDocuments < 0 {
		return 0
	}
	return *r.MaxDocuments
}
