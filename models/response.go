package models

import (
	"errors"
	"fmt"
)

// ItemStatus is the per-URL outcome reported back to the caller.
type ItemStatus string

const (
	ItemSent          ItemStatus = "SENT"
	ItemWebhookFailed ItemStatus = "WEBHOOK_FAILED"
	ItemScrapeFailed  ItemStatus = "SCRAPE_FAILED"
)

// NoURLsMessage is the summary message when the search page lists nothing.
const NoURLsMessage = "No judgment URLs found on the search page."

// CriticalErrorMessage accompanies every 500 response from /scrape.
const CriticalErrorMessage = "Critical server error"

// ItemOutcome records what happened to one discovered URL.
type ItemOutcome struct {
	URL    string     `json:"url"`
	Status ItemStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// RunSummary is the response for a completed POST /scrape run.
type RunSummary struct {
	Success           bool          `json:"success"`
	TotalURLsFound    int           `json:"total_urls_found"`
	TotalWebhooksSent int           `json:"total_webhooks_sent"`
	Results           []ItemOutcome `json:"n8n_results"`
	Message           string        `json:"message"`
}

// NewRunSummary returns an empty summary for a run over found URLs.
func NewRunSummary(found int) *RunSummary {
	return &RunSummary{
		TotalURLsFound: found,
		Results:        make([]ItemOutcome, 0, found),
	}
}

// RecordSent marks url as delivered.
func (s *RunSummary) RecordSent(url string) {
	s.TotalWebhooksSent++
	s.Results = append(s.Results, ItemOutcome{URL: url, Status: ItemSent})
}

// RecordWebhookFailed marks url as scraped but not delivered.
func (s *RunSummary) RecordWebhookFailed(url string, err error) {
	o := ItemOutcome{URL: url, Status: ItemWebhookFailed}
	var se *ScrapeError
	if errors.As(err, &se) {
		o.Error = se.Description()
	} else if err != nil {
		o.Error = err.Error()
	}
	s.Results = append(s.Results, o)
}

// RecordScrapeFailed marks url as not extracted.
func (s *RunSummary) RecordScrapeFailed(url, reason string) {
	s.Results = append(s.Results, ItemOutcome{URL: url, Status: ItemScrapeFailed, Error: reason})
}

// Finish sets the final success flag and message.
func (s *RunSummary) Finish() {
	s.Success = true
	if s.TotalURLsFound == 0 {
		s.Message = NoURLsMessage
		return
	}
	s.Message = fmt.Sprintf("Successfully scraped and posted %d judgments to n8n.", s.TotalWebhooksSent)
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ErrorResponse is the body of a request rejected before a run starts.
// Code is only set by the auth and rate limit middleware.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// FailureResponse is the body for a run that could not complete.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
