// Package rod provides a browser-based implementation of pagelens.Fetcher
// using Chrome automation, for pages that require JavaScript rendering.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/pagelens/pagelens"
)

// DefaultFetchTimeout bounds a single page navigation and render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements pagelens.Fetcher at compile time.
var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// The underlying browser is recycled periodically to keep memory in check.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	timeout      time.Duration
	allowPrivate bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page navigation timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithAllowPrivateHosts disables the private-address guard so the
// fetcher will navigate to loopback and RFC 1918 hosts. Intended for
// tests and local development.
func WithAllowPrivateHosts() Option {
	return func(f *Fetcher) {
		f.allowPrivate = true
	}
}

// NewFetcher creates a new Fetcher backed by a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. The URL is
// validated before navigation; private and loopback hosts are rejected
// unless WithAllowPrivateHosts was set.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := url
	if !f.allowPrivate {
		normalized, err := pagelens.NormalizeURL(url)
		if err != nil {
			return "", err
		}
		target = normalized.String()
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(target); err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "navigating to %s: %v", target, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "waiting for %s to load: %v", target, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "reading HTML from %s: %v", target, err)
	}
	if html == "" {
		return "", pagelens.Errorf(pagelens.EEMPTY, "empty document at %s", target)
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
