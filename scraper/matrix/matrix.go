package matrix

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"matrix-scraper/config"
	"matrix-scraper/extract"
	"matrix-scraper/models"
	"matrix-scraper/utils"
)

const source = "matrix"

// Session owns a single interactive browser page against the MLS portal.
// The browser window stays visible so a human operator can authenticate and
// configure a search; the driver only navigates, waits and snapshots.
type Session struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
	rows   *extract.Extractor

	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
	closeOnce   sync.Once
}

// New creates a ready-to-use Session. The browser process itself launches
// lazily on the first chromedp action.
func New(cfg *config.Config, logger *utils.Logger) *Session {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	logger.Info("[matrix] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("start-maximized", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &Session{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		rows:        extract.New(cfg.ResultRowSelector, source),
		ctx:         ctx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}
}

// Scrape drives the whole linear flow: open the portal, suspend for the
// operator to log in and run a search, then snapshot the results page and
// extract the listing rows.
func (s *Session) Scrape() ([]*models.PropertyListing, error) {
	if err := s.Open(); err != nil {
		return nil, err
	}
	if err := s.AwaitLogin(); err != nil {
		return nil, err
	}
	if err := s.AwaitResults(); err != nil {
		return nil, err
	}

	html, err := s.HTML()
	if err != nil {
		return nil, err
	}

	listings, err := s.rows.Rows(html)
	if err != nil {
		return nil, err
	}

	s.logger.Info("[matrix] Extracted %d listing rows", len(listings))
	return listings, nil
}

// Open navigates to the portal login page and waits for the body to render.
func (s *Session) Open() error {
	s.logger.Info("[matrix] Opening portal: %s", s.cfg.PortalURL)

	err := s.retry.Do("open-portal", func() error {
		ctx, cancel := context.WithTimeout(s.ctx, 60*time.Second)
		defer cancel()

		return chromedp.Run(ctx,
			chromedp.Navigate(s.cfg.PortalURL),
			chromedp.WaitReady("body"),
		)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	s.logger.Info("[matrix] Portal page loaded")
	return nil
}

// AwaitLogin suspends until the operator has authenticated in the browser
// window, detected by polling for the post-login marker.
func (s *Session) AwaitLogin() error {
	s.logger.Info("[matrix] Waiting for operator login — sign in using the browser window (deadline %ds)",
		s.cfg.LoginWaitSec)
	return s.awaitSelector("operator login", s.cfg.LoggedInSelector,
		time.Duration(s.cfg.LoginWaitSec)*time.Second)
}

// AwaitResults suspends until the operator has run a search and the results
// table is present, detected by polling for the result-row marker.
func (s *Session) AwaitResults() error {
	s.logger.Info("[matrix] Waiting for search results — run your search in the browser window (deadline %ds)",
		s.cfg.ResultsWaitSec)
	return s.awaitSelector("search results", s.cfg.ResultRowSelector,
		time.Duration(s.cfg.ResultsWaitSec)*time.Second)
}

// awaitSelector polls the page until the selector matches or the deadline
// lapses. Probe failures are tolerated; the page may be mid-navigation while
// the operator clicks through the portal.
func (s *Session) awaitSelector(step, selector string, deadline time.Duration) error {
	interval := time.Duration(s.cfg.PollIntervalMs) * time.Millisecond
	expr := fmt.Sprintf("document.querySelector(%q) !== null", selector)
	limit := time.Now().Add(deadline)

	for time.Now().Before(limit) {
		var found bool
		ctx, cancel := context.WithTimeout(s.ctx, 15*time.Second)
		err := chromedp.Run(ctx, chromedp.Evaluate(expr, &found))
		cancel()

		if err != nil {
			s.logger.Debug("[matrix] %s probe failed: %v", step, err)
		} else if found {
			s.logger.Info("[matrix] %s detected", step)
			return nil
		}

		time.Sleep(interval)
	}

	return fmt.Errorf("%w: %s not detected within %v (selector %q)",
		ErrOperatorTimeout, step, deadline, selector)
}

// HTML captures the outer HTML of the loaded results document.
func (s *Session) HTML() (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return html, nil
}

// Close releases the browser exactly once. Safe to call on every path.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.logger.Info("[matrix] Closing browser session")
		s.cancelCtx()
		s.cancelAlloc()
	})
}

// findChromeBinary locates the Chrome/Chromium binary, preferring the
// configured override.
func findChromeBinary(override string) string {
	if override != "" {
		return override
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
