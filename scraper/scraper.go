package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/use-agent/kanoon/cleaner"
	"github.com/use-agent/kanoon/config"
	"github.com/use-agent/kanoon/engine"
	"github.com/use-agent/kanoon/models"
)

// Deliverer sends one extracted judgment to a webhook endpoint.
type Deliverer interface {
	Deliver(ctx context.Context, endpoint string, j *models.JudgmentResult) error
}

// Scraper runs scrape-and-deliver jobs. It holds no per-run state: every
// call to Run launches, uses and releases its own browser session, so a
// single Scraper is safe for concurrent use.
type Scraper struct {
	launcher  engine.Launcher
	deliverer Deliverer
	cleaner   *cleaner.Cleaner
	cfg       config.ScraperConfig
	metrics   *Metrics

	resultSel cascadia.Selector
}

// New creates a Scraper. It fails only when the configured result selector
// does not parse. metrics may be nil.
func New(l engine.Launcher, d Deliverer, cl *cleaner.Cleaner, cfg config.ScraperConfig, metrics *Metrics) (*Scraper, error) {
	sel, err := cleaner.CompileSelector(cfg.ResultSelector)
	if err != nil {
		return nil, fmt.Errorf("scraper: %w", err)
	}
	if _, err := cleaner.CompileSelector(cfg.ContentSelector); err != nil {
		return nil, fmt.Errorf("scraper: %w", err)
	}
	return &Scraper{
		launcher:  l,
		deliverer: d,
		cleaner:   cl,
		cfg:       cfg,
		metrics:   metrics,
		resultSel: sel,
	}, nil
}

// sleep blocks for d unless ctx ends first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
