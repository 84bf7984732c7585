package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagelens/pagelens"
)

// Ensure LoggingSitemapDiscoverer implements pagelens.SitemapDiscoverer.
var _ pagelens.SitemapDiscoverer = (*LoggingSitemapDiscoverer)(nil)

// LoggingSitemapDiscoverer wraps a SitemapDiscoverer with debug logging.
type LoggingSitemapDiscoverer struct {
	next   pagelens.SitemapDiscoverer
	logger *slog.Logger
}

// NewLoggingSitemapDiscoverer creates a new LoggingSitemapDiscoverer.
func NewLoggingSitemapDiscoverer(next pagelens.SitemapDiscoverer, logger *slog.Logger) *LoggingSitemapDiscoverer {
	return &LoggingSitemapDiscoverer{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped discoverer and logs the operation.
func (s *LoggingSitemapDiscoverer) DiscoverURLs(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL)
}
