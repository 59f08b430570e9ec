package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/kanoon/config"
	"github.com/ysmood/gson"
)

// RodLauncher starts one Chromium process per session via go-rod.
type RodLauncher struct {
	cfg config.BrowserConfig
}

// NewRodLauncher creates a RodLauncher.
func NewRodLauncher(cfg config.BrowserConfig) *RodLauncher {
	return &RodLauncher{cfg: cfg}
}

// Launch starts a browser, connects to it and prepares a single tab.
//
// Everything that shapes the outgoing traffic (stealth script, user agent,
// extra headers, resource blocking) is installed before the first
// navigation, otherwise it only applies to later page loads.
func (r *RodLauncher) Launch(ctx context.Context) (Session, error) {
	l := launcher.New().
		Headless(r.cfg.Headless).
		NoSandbox(r.cfg.NoSandbox)

	if r.cfg.BrowserBin != "" {
		l = l.Bin(r.cfg.BrowserBin)
	}
	if r.cfg.DefaultProxy != "" {
		l = l.Proxy(r.cfg.DefaultProxy)
	}

	// ── Fingerprint flags ────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-gpu"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-site-isolation-trials"))
	l.Set(flags.Flag("ignore-certificate-errors"))
	l.Set(flags.Flag("no-first-run"))
	if r.cfg.WindowSize != "" {
		l.Set(flags.Flag("window-size"), r.cfg.WindowSize)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	sess := &rodSession{launcher: l, browser: browser}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = sess.Close()
		return nil, fmt.Errorf("open tab: %w", err)
	}
	sess.page = page

	if err := r.preparePage(page); err != nil {
		_ = sess.Close()
		return nil, err
	}
	sess.router = setupHijack(page, r.cfg.BlockedResourceTypes, r.cfg.BlockAds)

	return sess, nil
}

func (r *RodLauncher) preparePage(page *rod.Page) error {
	if r.cfg.Stealth {
		if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
		}
	}
	if r.cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      r.cfg.UserAgent,
			AcceptLanguage: r.cfg.AcceptLanguage,
		}); err != nil {
			return fmt.Errorf("set user agent: %w", err)
		}
	}
	if r.cfg.AcceptLanguage != "" {
		if err := (proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{"Accept-Language": r.cfg.AcceptLanguage}),
		}).Call(page); err != nil {
			return fmt.Errorf("set extra headers: %w", err)
		}
	}
	return nil
}

// rodSession is the go-rod backed Session.
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	router   *rod.HijackRouter

	once     sync.Once
	closeErr error
}

func (s *rodSession) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	p := s.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return wrapErr("navigate", err)
	}
	if err := p.WaitLoad(); err != nil {
		return wrapErr("wait for load", err)
	}
	return nil
}

func (s *rodSession) Location(ctx context.Context) (string, error) {
	info, err := s.page.Context(ctx).Info()
	if err != nil {
		return "", wrapErr("page info", err)
	}
	return info.URL, nil
}

func (s *rodSession) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", wrapErr("read html", err)
	}
	return html, nil
}

func (s *rodSession) WaitInnerHTML(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	ctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	el, err := s.page.Context(ctx).Element(selector)
	if err != nil {
		return "", wrapErr(fmt.Sprintf("wait for %q", selector), err)
	}
	inner, err := el.Property("innerHTML")
	if err != nil {
		return "", wrapErr("read innerHTML", err)
	}
	return inner.Str(), nil
}

// Close stops request interception, closes the browser and removes its
// profile directory. Only the first call does any work.
func (s *rodSession) Close() error {
	s.once.Do(func() {
		if s.router != nil {
			_ = s.router.Stop()
		}
		if err := s.browser.Close(); err != nil {
			slog.Warn("browser close failed, killing process", "error", err)
			s.launcher.Kill()
			s.closeErr = fmt.Errorf("close browser: %w", err)
		}
		s.launcher.Cleanup()
		slog.Info("browser session closed")
	})
	return s.closeErr
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// wrapErr tags deadline errors with ErrTimeout so callers can tell them
// apart from other browser failures.
func wrapErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
