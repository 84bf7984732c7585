// Package trafilatura provides a pagelens.MetadataExtractor backed by
// go-trafilatura. The document assembler consults it when a page carries no
// usable title or description of its own.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/pagelens/pagelens"
)

// Ensure Extractor implements pagelens.MetadataExtractor at compile time.
var _ pagelens.MetadataExtractor = (*Extractor)(nil)

// Extractor recovers page metadata from raw HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMetadata returns the title, description, and lead image that
// trafilatura recovers from the page.
func (e *Extractor) ExtractMetadata(rawHTML string) (*pagelens.PageMetadata, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, err
	}

	return &pagelens.PageMetadata{
		Title:       result.Metadata.Title,
		Description: result.Metadata.Description,
		Image:       result.Metadata.Image,
	}, nil
}
