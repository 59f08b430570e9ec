package scraper

import (
	"context"
	"log/slog"

	"github.com/use-agent/kanoon/cleaner"
	"github.com/use-agent/kanoon/engine"
	"github.com/use-agent/kanoon/models"
)

// DiscoverLinks loads searchURL and returns the judgment links it lists,
// in page order, capped to limit when limit > 0.
//
// The search page is given SettleDelay after the load event before its DOM
// is read; result lists on the target site fill in after load.
func (s *Scraper) DiscoverLinks(ctx context.Context, sess engine.Session, searchURL string, limit int) ([]string, error) {
	slog.Info("finding judgment links", "url", searchURL)

	if err := sess.Navigate(ctx, searchURL, s.cfg.PageLoadTimeout); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeDiscovery, "load search page", err)
	}
	if err := sleep(ctx, s.cfg.SettleDelay); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeDiscovery, "wait for search page to settle", err)
	}

	rawHTML, err := sess.HTML(ctx)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeDiscovery, "read search page", err)
	}

	base, err := sess.Location(ctx)
	if err != nil || base == "" {
		base = searchURL
	}

	links, err := cleaner.ResultLinks(rawHTML, base, s.resultSel, limit)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeDiscovery, "parse search page", err)
	}

	slog.Info("extracted judgment links", "url", searchURL, "count", len(links), "limit", limit)
	return links, nil
}
