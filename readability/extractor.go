// Package readability provides a pagelens.ArticleExtractor backed by
// go-readability, Mozilla's Readability algorithm ported to Go.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/pagelens/pagelens"
)

// Ensure Extractor implements pagelens.ArticleExtractor at compile time.
var _ pagelens.ArticleExtractor = (*Extractor)(nil)

// Extractor extracts main article content from HTML, removing boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractArticle processes raw HTML and returns the main content.
func (e *Extractor) ExtractArticle(rawHTML string) (*pagelens.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &pagelens.Article{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
