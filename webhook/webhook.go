package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/use-agent/kanoon/config"
	"github.com/use-agent/kanoon/models"
)

// Source identifies this service in every payload.
const Source = "KanoonScraper"

// SignatureHeader carries the HMAC-SHA256 of the body when a secret is set.
const SignatureHeader = "X-Kanoon-Signature"

// Payload is the JSON body posted for one judgment.
type Payload struct {
	Source           string `json:"source"`
	CaseURL          string `json:"case_url"`
	FullJudgmentText string `json:"full_judgment_text"`
}

// Dispatcher posts judgments to caller-supplied endpoints. It is safe for
// concurrent use.
type Dispatcher struct {
	client    *http.Client
	userAgent string
	secret    string
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient replaces the default client. The client's Timeout is
// left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Dispatcher) { d.client = c }
}

// NewDispatcher creates a Dispatcher whose requests time out after cfg.Timeout.
func NewDispatcher(cfg config.WebhookConfig, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		secret:    cfg.Secret,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deliver posts one successfully extracted judgment to endpoint.
//
// Only HTTP 200 counts as delivered. There is a single attempt; every
// failure is logged and returned as a *models.ScrapeError so the caller can
// record it.
func (d *Dispatcher) Deliver(ctx context.Context, endpoint string, j *models.JudgmentResult) error {
	if !j.OK() {
		return models.NewScrapeError(models.ErrCodeWebhook, "refusing to deliver a failed judgment", nil)
	}

	body, err := json.Marshal(Payload{
		Source:           Source,
		CaseURL:          j.URL,
		FullJudgmentText: j.FullText,
	})
	if err != nil {
		return models.NewScrapeError(models.ErrCodeWebhook, "marshal payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("webhook request could not be built", "endpoint", endpoint, "error", err)
		return models.NewScrapeError(models.ErrCodeWebhook, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}
	if d.secret != "" {
		req.Header.Set(SignatureHeader, "sha256="+Sign(d.secret, body))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			slog.Error("webhook request timed out", "endpoint", endpoint, "case_url", j.URL)
			return models.NewScrapeError(models.ErrCodeTimeout, "webhook request timed out", err)
		}
		slog.Error("webhook delivery failed", "endpoint", endpoint, "case_url", j.URL, "error", err)
		return models.NewScrapeError(models.ErrCodeWebhook, "deliver", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusOK {
		slog.Error("webhook rejected judgment",
			"endpoint", endpoint,
			"case_url", j.URL,
			"status", resp.StatusCode,
		)
		return models.NewScrapeError(models.ErrCodeWebhook,
			fmt.Sprintf("endpoint returned status %d", resp.StatusCode), nil)
	}

	slog.Info("webhook delivered", "case_url", j.URL, "status", resp.StatusCode)
	return nil
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
