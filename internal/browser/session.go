// Package browser owns the remote browser control channel: it launches a
// hardened Chromium via playwright, exposes it through the
// automation.Handle capability surface, and guarantees the session is
// released exactly once.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/playwright-community/playwright-go"

	"meetjoin/internal/locator"
	"meetjoin/internal/logging"
)

// Config controls session acquisition.
type Config struct {
	Headless bool
}

const (
	// launchTimeoutMillis bounds Chromium startup; container cold starts are
	// slow enough that the library default trips.
	launchTimeoutMillis = 30000
	// actionTimeoutMillis bounds individual clicks and keystrokes. The
	// resolver has already confirmed the element is interactable, so an
	// action that stalls this long is a real failure.
	actionTimeoutMillis = 5000
	// typeDelayMillis spaces out keystrokes; pasting whole credentials at
	// once trips the sign-in page's bot heuristics.
	typeDelayMillis = 50
)

// Session wraps the playwright runtime, browser, and page for one run.
// It implements automation.Handle.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	logger  *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Launch starts Chromium with automation hardening applied: automation
// fingerprint flags disabled, camera and microphone granted so Meet never
// blocks on a permission prompt, geolocation left ungranted.
func Launch(cfg Config, logger *slog.Logger) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browserHandle, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Timeout:  playwright.Float(launchTimeoutMillis),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--start-maximized",
			"--no-sandbox",
			"--disable-dev-shm-usage",
			"--use-fake-ui-for-media-stream",
		},
	})
	if err != nil {
		stopErr := pw.Stop()
		return nil, errors.Join(fmt.Errorf("launch chromium: %w", err), stopErr)
	}

	browserCtx, err := browserHandle.NewContext(playwright.BrowserNewContextOptions{
		Permissions: []string{"camera", "microphone"},
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create browser context: %w", err), browserHandle.Close(), pw.Stop())
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create page: %w", err), browserHandle.Close(), pw.Stop())
	}

	logger.Info("browser session started", logging.Bool("headless", cfg.Headless))
	return &Session{pw: pw, browser: browserHandle, page: page, logger: logger}, nil
}

// Navigate loads a URL and waits for the network to go idle so the
// asynchronous surfaces behind it have a chance to render.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Present reports whether an element matching the candidate is rendered.
func (s *Session) Present(c locator.Candidate) (bool, error) {
	return s.page.Locator(c.Query()).IsVisible()
}

// Interactable reports whether a matching element is rendered and enabled.
func (s *Session) Interactable(c locator.Candidate) (bool, error) {
	loc := s.page.Locator(c.Query())
	visible, err := loc.IsVisible()
	if err != nil || !visible {
		return false, err
	}
	return loc.IsEnabled()
}

func (s *Session) Click(c locator.Candidate) error {
	if err := s.page.Locator(c.Query()).Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(actionTimeoutMillis),
	}); err != nil {
		return fmt.Errorf("click %s: %w", c, err)
	}
	return nil
}

func (s *Session) Type(c locator.Candidate, text string) error {
	loc := s.page.Locator(c.Query())
	if err := loc.Clear(playwright.LocatorClearOptions{
		Timeout: playwright.Float(actionTimeoutMillis),
	}); err != nil {
		return fmt.Errorf("clear %s: %w", c, err)
	}
	if err := loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(typeDelayMillis),
	}); err != nil {
		return fmt.Errorf("type into %s: %w", c, err)
	}
	return nil
}

func (s *Session) Screenshot(path string) error {
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

func (s *Session) Markup() (string, error) {
	return s.page.Content()
}

func (s *Session) URL() string {
	return s.page.URL()
}

// Close releases the browser and the playwright runtime. Safe to call more
// than once; the release happens exactly once and later calls observe the
// first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close browser: %w", err))
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("stop playwright: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
		s.logger.Info("browser session closed")
	})
	return s.closeErr
}
