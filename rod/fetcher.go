// Package rod provides browser-based page fetching using Chrome automation.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mkowal/harvest"
)

// Ensure Fetcher implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Fetcher)(nil)

// Default scroll behavior for pages that load content incrementally.
const (
	DefaultScrollPause = time.Second
	DefaultMaxScrolls  = 50
)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser

	scroll      bool
	scrollPause time.Duration
	maxScrolls  int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithScroll enables scrolling to the bottom of the page before capturing
// HTML, so infinite-scroll pages surface their lazily loaded containers.
func WithScroll(pause time.Duration, maxScrolls int) Option {
	return func(f *Fetcher) {
		f.scroll = true
		if pause > 0 {
			f.scrollPause = pause
		}
		if maxScrolls > 0 {
			f.maxScrolls = maxScrolls
		}
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f := &Fetcher{
		browser:     browser,
		scrollPause: DefaultScrollPause,
		maxScrolls:  DefaultMaxScrolls,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Create a new page
	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	// Navigate to URL
	if err := page.Navigate(url); err != nil {
		return "", err
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if f.scroll {
		if err := f.scrollToBottom(ctx, page); err != nil {
			return "", err
		}
	}

	// Get rendered HTML
	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// scrollToBottom scrolls the page until its height stops growing, pausing
// between scrolls to let lazily loaded content render.
func (f *Fetcher) scrollToBottom(ctx context.Context, page *rod.Page) error {
	lastHeight, err := pageHeight(page)
	if err != nil {
		return err
	}

	for i := 0; i < f.maxScrolls; i++ {
		if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
			return err
		}

		if err := sleep(ctx, f.scrollPause); err != nil {
			return err
		}

		height, err := pageHeight(page)
		if err != nil {
			return err
		}
		if height == lastHeight {
			return nil
		}
		lastHeight = height
	}

	return nil
}

func pageHeight(page *rod.Page) (int, error) {
	res, err := page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
