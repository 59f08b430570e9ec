package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestScrapeRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ScrapeRequest
		wantErr string
	}{
		{"both present", ScrapeRequest{URL: "https://s", WebhookURL: "https://h"}, ""},
		{"missing url", ScrapeRequest{WebhookURL: "https://h"}, RequiredFieldsMessage},
		{"missing webhook", ScrapeRequest{URL: "https://s"}, RequiredFieldsMessage},
		{"blank url", ScrapeRequest{URL: "   ", WebhookURL: "https://h"}, RequiredFieldsMessage},
		{"markdown", ScrapeRequest{URL: "https://s", WebhookURL: "https://h", Format: FormatMarkdown}, ""},
		{"bad format", ScrapeRequest{URL: "https://s", WebhookURL: "https://h", Format: "pdf"}, "'format' must be 'text' or 'markdown'."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, ErrCodeInvalidInput, err.Code)
			assert.Equal(t, tt.wantErr, err.Message)
		})
	}
}

func TestScrapeRequestDefaultsAndLimit(t *testing.T) {
	req := ScrapeRequest{URL: " https://s ", WebhookURL: "https://h"}
	req.Defaults()

	assert.Equal(t, "https://s", req.URL)
	assert.Equal(t, FormatText, req.Format)
	assert.Equal(t, DefaultMaxDocuments, req.Limit())

	assert.Equal(t, 2, (&ScrapeRequest{MaxDocuments: intPtr(2)}).Limit())
	assert.Equal(t, 0, (&ScrapeRequest{MaxDocuments: intPtr(0)}).Limit())
	assert.Equal(t, 0, (&ScrapeRequest{MaxDocuments: intPtr(-3)}).Limit())
}

func TestFailedJudgmentMessages(t *testing.T) {
	timeout := FailedJudgment("u", NewScrapeError(ErrCodeTimeout, "wait", errors.New("deadline")))
	assert.Equal(t, TimeoutMessage, timeout.Error)
	assert.Equal(t, JudgmentFailed, timeout.Status)
	assert.Empty(t, timeout.FullText)

	redirect := FailedJudgment("u", NewScrapeError(ErrCodeNotDocument, "bounced", nil))
	assert.Equal(t, NotDocumentMessage, redirect.Error)

	other := FailedJudgment("u", NewScrapeError(ErrCodeExtraction, "read container", errors.New("boom")))
	assert.Equal(t, "read container: boom", other.Error)
	assert.Equal(t, ErrCodeExtraction, other.Code)
}

func TestRunSummary(t *testing.T) {
	s := NewRunSummary(3)
	s.RecordSent("a")
	s.RecordWebhookFailed("b", NewScrapeError(ErrCodeWebhook, "endpoint returned status 500", nil))
	s.RecordScrapeFailed("c", TimeoutMessage)
	s.Finish()

	assert.True(t, s.Success)
	assert.Equal(t, 1, s.TotalWebhooksSent)
	assert.Equal(t, "Successfully scraped and posted 1 judgments to n8n.", s.Message)
	require.Len(t, s.Results, 3)
	assert.Equal(t, ItemOutcome{URL: "a", Status: ItemSent}, s.Results[0])
	assert.Equal(t, "endpoint returned status 500", s.Results[1].Error)
	assert.Equal(t, ItemScrapeFailed, s.Results[2].Status)

	empty := NewRunSummary(0)
	empty.Finish()
	assert.Equal(t, NoURLsMessage, empty.Message)
	assert.NotNil(t, empty.Results)
}
