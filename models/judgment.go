package models

// JudgmentStatus is the outcome of extracting one document.
type JudgmentStatus string

const (
	JudgmentSuccess JudgmentStatus = "success"
	JudgmentFailed  JudgmentStatus = "failed"
)

// TimeoutMessage is recorded when a document page or its content
// container does not show up in time.
const TimeoutMessage = "Timeout waiting for judgment content"

// NotDocumentMessage is recorded when a document link bounces back to search.
const NotDocumentMessage = "Link redirected to a search page or was not a document."

// JudgmentResult is the extracted text of a single judgment.
// It is built once per document and not modified afterwards.
type JudgmentResult struct {
	URL      string         `json:"url"`
	FullText string         `json:"full_text,omitempty"`
	Status   JudgmentStatus `json:"status"`
	Error    string         `json:"error,omitempty"`

	// Code tags the failure kind; empty on success.
	Code string `json:"-"`
}

// NewJudgment returns a successful result.
func NewJudgment(url, text string) *JudgmentResult {
	return &JudgmentResult{URL: url, FullText: text, Status: JudgmentSuccess}
}

// FailedJudgment returns a failed result for url described by err.
func FailedJudgment(url string, err *ScrapeError) *JudgmentResult {
	msg := err.Description()
	switch err.Code {
	case ErrCodeTimeout:
		msg = TimeoutMessage
	case ErrCodeNotDocument:
		msg = NotDocumentMessage
	}
	return &JudgmentResult{
		URL:    url,
		Status: JudgmentFailed,
		Error:  msg,
		Code:   err.Code,
	}
}

// OK reports whether the judgment text was extracted.
func (j *JudgmentResult) OK() bool {
	return j.Status == JudgmentSuccess
}
