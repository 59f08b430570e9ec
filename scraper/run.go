package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/kanoon/engine"
	"github.com/use-agent/kanoon/models"
)

// Run outcomes used as metric labels.
const (
	outcomeCompleted = "completed"
	outcomeEmpty     = "empty"
	outcomeFailed    = "failed"
	outcomeRejected  = "rejected"
)

// Run executes one scrape-and-deliver job.
//
// Lifecycle:
//
//  1. Validate            – reject before any browser is started
//  2. Acquire session     – one browser per run
//  3. DEFER: release      – runs on every exit path, panics included
//  4. Discover            – failures count as "no links"
//  5. Per link, in order  – extract → deliver → record, ItemDelay between links
//  6. Finish              – counts + message
//
// Per-item failures never fail the run. The returned error is a
// *models.ScrapeError for invalid input, a session that could not start,
// or anything that aborted the loop.
func (s *Scraper) Run(ctx context.Context, req *models.ScrapeRequest) (summary *models.RunSummary, err error) {
	req.Defaults()
	if verr := req.Validate(); verr != nil {
		s.metrics.IncRun(outcomeRejected)
		return nil, verr
	}

	start := time.Now()
	sess, lerr := s.launcher.Launch(ctx)
	if lerr != nil {
		slog.Error("failed to start browser session", "error", lerr)
		s.metrics.ObserveRun(outcomeFailed, time.Since(start))
		return nil, models.NewScrapeError(models.ErrCodeSession, "failed to start browser session", lerr)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			slog.Warn("browser session close failed", "error", cerr)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("critical execution error", "url", req.URL, "panic", r)
			summary = nil
			err = models.NewScrapeError(models.ErrCodeInternal, fmt.Sprint(r), nil)
		}
		outcome := outcomeCompleted
		switch {
		case err != nil:
			outcome = outcomeFailed
		case summary.TotalURLsFound == 0:
			outcome = outcomeEmpty
		}
		s.metrics.ObserveRun(outcome, time.Since(start))
	}()

	return s.run(ctx, sess, req)
}

func (s *Scraper) run(ctx context.Context, sess engine.Session, req *models.ScrapeRequest) (*models.RunSummary, error) {
	links, err := s.DiscoverLinks(ctx, sess, req.URL, req.Limit())
	if err != nil {
		slog.Error("judgment discovery failed, treating as no results", "url", req.URL, "error", err)
		links = nil
	}

	summary := models.NewRunSummary(len(links))
	for i, link := range links {
		slog.Info("processing judgment", "index", i+1, "total", len(links), "url", link)

		j := s.ExtractJudgment(ctx, sess, link, req.Format)
		if !j.OK() {
			summary.RecordScrapeFailed(link, j.Error)
			s.metrics.IncItem(models.ItemScrapeFailed)
		} else if derr := s.deliverer.Deliver(ctx, req.WebhookURL, j); derr != nil {
			summary.RecordWebhookFailed(link, derr)
			s.metrics.IncItem(models.ItemWebhookFailed)
		} else {
			summary.RecordSent(link)
			s.metrics.IncItem(models.ItemSent)
		}

		if i < len(links)-1 {
			if err := sleep(ctx, s.cfg.ItemDelay); err != nil {
				return nil, models.NewScrapeError(models.ErrCodeInternal, "run interrupted", err)
			}
		}
	}

	summary.Finish()
	slog.Info("run finished",
		"url", req.URL,
		"urls_found", summary.TotalURLsFound,
		"webhooks_sent", summary.TotalWebhooksSent,
	)
	return summary, nil
}
