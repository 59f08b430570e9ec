package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/kanoon/config"
	"github.com/use-agent/kanoon/models"
)

const hookURL = "https://hooks.example.test/webhook/kanoon"

func testConfig() config.WebhookConfig {
	return config.WebhookConfig{Timeout: 5 * time.Second, UserAgent: "Kanoon-Scraper/1.0"}
}

func judgment() *models.JudgmentResult {
	return models.NewJudgment("https://indiankanoon.org/doc/1/", "Judgment text")
}

func TestDeliverPostsPayload(t *testing.T) {
	var (
		gotBody    Payload
		gotHeaders http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewDispatcher(testConfig()).Deliver(context.Background(), srv.URL, judgment())
	require.NoError(t, err)

	assert.Equal(t, Payload{
		Source:           "KanoonScraper",
		CaseURL:          "https://indiankanoon.org/doc/1/",
		FullJudgmentText: "Judgment text",
	}, gotBody)
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "Kanoon-Scraper/1.0", gotHeaders.Get("User-Agent"))
	assert.Empty(t, gotHeaders.Get(SignatureHeader))
}

func TestDeliverOnlyAcceptsStatusOK(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusAccepted, http.StatusNoContent, http.StatusBadRequest, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			transport := httpmock.NewMockTransport()
			transport.RegisterResponder(http.MethodPost, hookURL, httpmock.NewStringResponder(status, ""))

			d := NewDispatcher(testConfig(), WithHTTPClient(&http.Client{Transport: transport}))
			err := d.Deliver(context.Background(), hookURL, judgment())

			var se *models.ScrapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, models.ErrCodeWebhook, se.Code)
			assert.Contains(t, se.Message, "endpoint returned status")
			assert.Equal(t, 1, transport.GetTotalCallCount(), "a failed delivery is never retried")
		})
	}
}

func TestDeliverTransportError(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodPost, hookURL, httpmock.NewErrorResponder(errors.New("connection refused")))

	d := NewDispatcher(testConfig(), WithHTTPClient(&http.Client{Transport: transport}))
	err := d.Deliver(context.Background(), hookURL, judgment())

	var se *models.ScrapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.ErrCodeWebhook, se.Code)
	assert.Contains(t, se.Description(), "connection refused")
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestDeliverTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond

	err := NewDispatcher(cfg).Deliver(context.Background(), srv.URL, judgment())

	var se *models.ScrapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, models.ErrCodeTimeout, se.Code)
}

func TestDeliverRefusesFailedJudgment(t *testing.T) {
	transport := httpmock.NewMockTransport()
	d := NewDispatcher(testConfig(), WithHTTPClient(&http.Client{Transport: transport}))

	failed := models.FailedJudgment("https://indiankanoon.org/doc/1/",
		models.NewScrapeError(models.ErrCodeTimeout, "wait", nil))
	err := d.Deliver(context.Background(), hookURL, failed)

	assert.Error(t, err)
	assert.Zero(t, transport.GetTotalCallCount())
}

func TestDeliverSignsBody(t *testing.T) {
	transport := httpmock.NewMockTransport()
	var sig, body string
	transport.RegisterResponder(http.MethodPost, hookURL, func(req *http.Request) (*http.Response, error) {
		sig = req.Header.Get(SignatureHeader)
		b, _ := io.ReadAll(req.Body)
		body = string(b)
		return httpmock.NewStringResponse(http.StatusOK, "ok"), nil
	})

	cfg := testConfig()
	cfg.Secret = "s3cret"
	d := NewDispatcher(cfg, WithHTTPClient(&http.Client{Transport: transport}))

	require.NoError(t, d.Deliver(context.Background(), hookURL, judgment()))
	assert.Equal(t, "sha256="+Sign("s3cret", []byte(body)), sig)
}
