package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.DocumentExtractor = (*DocumentExtractor)(nil)

// DocumentExtractor is a mock implementation of pagelens.DocumentExtractor.
type DocumentExtractor struct {
	ExtractFn func(ctx context.Context, html string, sourceURL string) (*pagelens.Document, error)
}

func (e *DocumentExtractor) Extract(ctx context.Context, html string, sourceURL string) (*pagelens.Document, error) {
	return e.ExtractFn(ctx, html, sourceURL)
}

var _ pagelens.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of pagelens.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(html string) (*pagelens.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(html string) (*pagelens.Article, error) {
	return e.ExtractArticleFn(html)
}

var _ pagelens.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of pagelens.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(html string) (*pagelens.PageMetadata, error)
}

func (e *MetadataExtractor) ExtractMetadata(html string) (*pagelens.PageMetadata, error) {
	return e.ExtractMetadataFn(html)
}

var _ pagelens.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagelens.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
