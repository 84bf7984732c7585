package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagelens.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ pagelens.RobotsFetcher = (*RobotsFetcher)(nil)

// RobotsFetcher is a mock implementation of pagelens.RobotsFetcher.
type RobotsFetcher struct {
	FetchRobotsFn func(ctx context.Context, origin string) (string, error)
}

func (f *RobotsFetcher) FetchRobots(ctx context.Context, origin string) (string, error) {
	return f.FetchRobotsFn(ctx, origin)
}

var _ pagelens.SitemapDiscoverer = (*SitemapDiscoverer)(nil)

// SitemapDiscoverer is a mock implementation of pagelens.SitemapDiscoverer.
type SitemapDiscoverer struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (d *SitemapDiscoverer) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return d.DiscoverURLsFn(ctx, baseURL)
}
