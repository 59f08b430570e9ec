package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Webhook   WebhookConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 5000

	// Production is set on hosted deployments (e.g. Railway).
	Production bool

	// Mode is the gin mode: "debug", "release" or "test".
	// Defaults to "release" in production and "debug" otherwise.
	Mode string

	// ShutdownTimeout bounds how long in-flight runs may finish after
	// SIGINT/SIGTERM.
	ShutdownTimeout time.Duration // default: 2m
}

// BrowserConfig controls the per-run Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in containers).
	NoSandbox bool // default: true

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// DefaultProxy is the proxy URL used for all navigation.
	DefaultProxy string

	// UserAgent replaces the headless user agent.
	UserAgent string

	// AcceptLanguage is sent as an extra header on every request.
	AcceptLanguage string

	// WindowSize is passed to --window-size.
	WindowSize string // default: "1920,1080"

	// Stealth injects go-rod/stealth evasions before each navigation.
	Stealth bool // default: true

	// BlockedResourceTypes lists resource types to block.
	// default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string

	// BlockAds drops requests to known ad and tracking hosts.
	BlockAds bool
}

// ScraperConfig controls link discovery and document extraction.
type ScraperConfig struct {
	// SettleDelay is the pause after loading the search page before
	// reading its DOM.
	SettleDelay time.Duration // default: 3s

	// ItemDelay is the pause between two documents of the same run.
	ItemDelay time.Duration // default: 2s

	// PageLoadTimeout bounds a single navigation.
	PageLoadTimeout time.Duration // default: 40s

	// ContentTimeout bounds the wait for the judgment container.
	ContentTimeout time.Duration // default: 30s

	// ResultSelector matches result-title anchors on the search page.
	ResultSelector string // default: "div.result_title a"

	// ContentSelector matches the judgment container on a document page.
	ContentSelector string // default: ".judgments"

	// SearchMarker identifies a document URL that bounced back to search.
	SearchMarker string // default: "search"

	// StripSelectors are removed from the judgment container before its
	// text is extracted.
	StripSelectors []string
}

// WebhookConfig controls outbound webhook delivery.
type WebhookConfig struct {
	Timeout   time.Duration // default: 30s
	UserAgent string        // default: "Kanoon-Scraper/1.0"

	// Secret signs payloads with HMAC-SHA256 when non-empty.
	Secret string
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// APIKeys is the list of valid API keys. Empty disables auth.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting of /scrape.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the maximum burst size per identity.
	Burst int // default: 2
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	production := envBoolOr("KANOON_PRODUCTION", os.Getenv("RAILWAY_ENVIRONMENT") != "")
	mode := "debug"
	if production {
		mode = "release"
	}

	return &Config{
		Server: ServerConfig{
			Host:       envOr("KANOON_HOST", "0.0.0.0"),
			Port:       envIntOr("PORT", 5000),
			Production: production,
			Mode:       envOr("KANOON_MODE", mode),

			ShutdownTimeout: envDurationOr("KANOON_SHUTDOWN_TIMEOUT", 2*time.Minute),
		},
		Browser: BrowserConfig{
			Headless:       envBoolOr("KANOON_HEADLESS", true),
			NoSandbox:      envBoolOr("KANOON_NO_SANDBOX", true),
			BrowserBin:     os.Getenv("KANOON_BROWSER_BIN"),
			DefaultProxy:   os.Getenv("KANOON_PROXY"),
			UserAgent:      envOr("KANOON_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
			AcceptLanguage: envOr("KANOON_ACCEPT_LANGUAGE", "en-US,en;q=0.9"),
			WindowSize:     envOr("KANOON_WINDOW_SIZE", "1920,1080"),
			Stealth:        envBoolOr("KANOON_STEALTH", true),
			BlockedResourceTypes: envSliceOr("KANOON_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
			BlockAds: envBoolOr("KANOON_BLOCK_ADS", false),
		},
		Scraper: ScraperConfig{
			SettleDelay:     envDurationOr("KANOON_SETTLE_DELAY", 3*time.Second),
			ItemDelay:       envDurationOr("KANOON_ITEM_DELAY", 2*time.Second),
			PageLoadTimeout: envDurationOr("KANOON_PAGE_LOAD_TIMEOUT", 40*time.Second),
			ContentTimeout:  envDurationOr("KANOON_CONTENT_TIMEOUT", 30*time.Second),
			ResultSelector:  envOr("KANOON_RESULT_SELECTOR", "div.result_title a"),
			ContentSelector: envOr("KANOON_CONTENT_SELECTOR", ".judgments"),
			SearchMarker:    envOr("KANOON_SEARCH_MARKER", "search"),
			StripSelectors:  envSliceOr("KANOON_STRIP_SELECTORS", nil),
		},
		Webhook: WebhookConfig{
			Timeout:   envDurationOr("KANOON_WEBHOOK_TIMEOUT", 30*time.Second),
			UserAgent: envOr("KANOON_WEBHOOK_USER_AGENT", "Kanoon-Scraper/1.0"),
			Secret:    os.Getenv("KANOON_WEBHOOK_SECRET"),
		},
		Auth: AuthConfig{
			APIKeys: envSliceOr("KANOON_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("KANOON_RATE_RPS", 0),
			Burst:             envIntOr("KANOON_RATE_BURST", 2),
		},
		Log: LogConfig{
			Level:  envOr("KANOON_LOG_LEVEL", "info"),
			Format: envOr("KANOON_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
