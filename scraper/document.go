package scraper

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/use-agent/kanoon/engine"
	"github.com/use-agent/kanoon/models"
)

// ExtractJudgment loads one judgment page and returns its text.
//
// It never returns an error: every failure is folded into a failed
// JudgmentResult so the caller can move on to the next document.
func (s *Scraper) ExtractJudgment(ctx context.Context, sess engine.Session, docURL, format string) *models.JudgmentResult {
	if err := sess.Navigate(ctx, docURL, s.cfg.PageLoadTimeout); err != nil {
		return s.failed(docURL, categorizeError(err, "load judgment page"))
	}

	// A missing or removed document bounces back to the search page
	// instead of returning an error status.
	loc, err := sess.Location(ctx)
	if err != nil {
		return s.failed(docURL, categorizeError(err, "read page address"))
	}
	if s.cfg.SearchMarker != "" && strings.Contains(loc, s.cfg.SearchMarker) {
		slog.Warn("judgment link redirected to a search page, skipping", "url", docURL, "location", loc)
		return s.failed(docURL, models.NewScrapeError(models.ErrCodeNotDocument, "redirected to "+loc, nil))
	}

	inner, err := sess.WaitInnerHTML(ctx, s.cfg.ContentSelector, s.cfg.ContentTimeout)
	if err != nil {
		return s.failed(docURL, categorizeError(err, "wait for judgment content"))
	}

	text, err := s.cleaner.Clean(inner, docURL, format)
	if err != nil {
		return s.failed(docURL, models.NewScrapeError(models.ErrCodeExtraction, "convert judgment content", err))
	}

	slog.Info("scraped judgment", "url", docURL, "chars", len(text))
	return models.NewJudgment(docURL, text)
}

func (s *Scraper) failed(docURL string, err *models.ScrapeError) *models.JudgmentResult {
	slog.Error("error scraping judgment", "url", docURL, "code", err.Code, "error", err.Description())
	return models.FailedJudgment(docURL, err)
}

// categorizeError wraps raw session errors into typed ScrapeErrors.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, engine.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	default:
		return models.NewScrapeError(models.ErrCodeExtraction, msg, err)
	}
}
