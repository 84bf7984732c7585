// Package http provides HTTP-based implementations of pagelens.Fetcher,
// pagelens.RobotsFetcher and pagelens.SitemapDiscoverer for static sites
// that don't require JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pagelens/pagelens"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the extractor to origin servers.
const DefaultUserAgent = "pagelens/1.0 (+https://github.com/pagelens/pagelens)"

// Ensure Fetcher implements pagelens.Fetcher at compile time.
var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static sites only.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	allowPrivate bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithAllowPrivateHosts disables the private-address guard so the
// fetcher will talk to loopback and RFC 1918 hosts. Intended for tests
// and local development.
func WithAllowPrivateHosts() Option {
	return func(f *Fetcher) {
		f.allowPrivate = true
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. The URL is
// validated before any request goes out; private and loopback hosts are
// rejected unless WithAllowPrivateHosts was set.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	target := url
	if !f.allowPrivate {
		normalized, err := pagelens.NormalizeURL(url)
		if err != nil {
			return "", err
		}
		target = normalized.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EINVALID, "invalid fetch URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "fetching %s: %v", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", pagelens.Errorf(pagelens.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, target)
	}
	if resp.StatusCode != http.StatusOK {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, target)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "reading response from %s: %v", target, err)
	}
	if len(body) == 0 {
		return "", pagelens.Errorf(pagelens.EEMPTY, "empty response body from %s", target)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
