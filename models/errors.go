package models

import "fmt"

// Error codes used in API responses and internal error handling.
// Each code is one failure kind a run can hit.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeSession      = "SESSION_FAILED"
	ErrCodeDiscovery    = "DISCOVERY_FAILED"
	ErrCodeTimeout      = "SCRAPE_TIMEOUT"
	ErrCodeNotDocument  = "NOT_A_DOCUMENT"
	ErrCodeExtraction   = "EXTRACTION_FAILED"
	ErrCodeWebhook      = "WEBHOOK_FAILED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ScrapeError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ScrapeError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// Description is the human-readable cause without the code prefix.
func (e *ScrapeError) Description() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// NewScrapeError creates a new ScrapeError.
func NewScrapeError(code, message string, err error) *ScrapeError {
	return &ScrapeError{Code: code, Message: message, Err: err}
}
