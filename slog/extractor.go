package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagelens/pagelens"
)

// Ensure LoggingExtractor implements pagelens.DocumentExtractor.
var _ pagelens.DocumentExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a DocumentExtractor with debug logging.
type LoggingExtractor struct {
	next   pagelens.DocumentExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagelens.DocumentExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(ctx context.Context, html string, sourceURL string) (doc *pagelens.Document, err error) {
	defer func(begin time.Time) {
		var headings, links, images int
		if doc != nil {
			headings = len(doc.Headings)
			links = len(doc.Links)
			images = len(doc.Images)
		}
		e.logger.Info("extract",
			"url", sourceURL,
			"bytes", len(html),
			"headings", headings,
			"links", links,
			"images", images,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, html, sourceURL)
}
