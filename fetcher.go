package pagelens

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content, and must run NormalizeURL validation before touching the network.
type Fetcher interface {
	// Fetch navigates to the URL and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetch resources (browser sessions, connections).
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// RobotsFetcher retrieves the raw /robots.txt for an origin. The call is
// best-effort: implementations bound it with a short timeout and callers
// treat any error as "field absent".
type RobotsFetcher interface {
	FetchRobots(ctx context.Context, origin string) (string, error)
}

// SitemapDiscoverer finds page URLs from a site's sitemap.
type SitemapDiscoverer interface {
	// DiscoverURLs returns URLs listed in the site's sitemaps.
	// Returns an empty slice (not nil) when no sitemap is found.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
