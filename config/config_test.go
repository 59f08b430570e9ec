package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RAILWAY_ENVIRONMENT", "")
	t.Setenv("KANOON_PRODUCTION", "")
	t.Setenv("PORT", "")

	cfg := Load()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.False(t, cfg.Server.Production)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 2*time.Minute, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.Scraper.SettleDelay)
	assert.Equal(t, 2*time.Second, cfg.Scraper.ItemDelay)
	assert.Equal(t, 40*time.Second, cfg.Scraper.PageLoadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Scraper.ContentTimeout)
	assert.Equal(t, "div.result_title a", cfg.Scraper.ResultSelector)
	assert.Equal(t, ".judgments", cfg.Scraper.ContentSelector)
	assert.Equal(t, 30*time.Second, cfg.Webhook.Timeout)
	assert.Equal(t, []string{"Image", "Font", "Media"}, cfg.Browser.BlockedResourceTypes)
	assert.Empty(t, cfg.Auth.APIKeys)
	assert.Zero(t, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadProductionFromRailway(t *testing.T) {
	t.Setenv("RAILWAY_ENVIRONMENT", "production")
	t.Setenv("KANOON_PRODUCTION", "")
	t.Setenv("KANOON_MODE", "")

	cfg := Load()

	assert.True(t, cfg.Server.Production)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("KANOON_PRODUCTION", "true")
	t.Setenv("KANOON_MODE", "test")
	t.Setenv("KANOON_ITEM_DELAY", "500ms")
	t.Setenv("KANOON_API_KEYS", " a , b ,,")
	t.Setenv("KANOON_RATE_RPS", "1.5")
	t.Setenv("KANOON_NO_SANDBOX", "false")
	t.Setenv("KANOON_STRIP_SELECTORS", ".ad_doc, .doc_citations")

	cfg := Load()

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.True(t, cfg.Server.Production)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, 500*time.Millisecond, cfg.Scraper.ItemDelay)
	assert.Equal(t, []string{"a", "b"}, cfg.Auth.APIKeys)
	assert.InDelta(t, 1.5, cfg.RateLimit.RequestsPerSecond, 0.0001)
	assert.False(t, cfg.Browser.NoSandbox)
	assert.Equal(t, []string{".ad_doc", ".doc_citations"}, cfg.Scraper.StripSelectors)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("KANOON_SETTLE_DELAY", "soon")

	cfg := Load()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Scraper.SettleDelay)
}
