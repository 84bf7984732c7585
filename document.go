package pagelens

import (
	"context"
	"time"
)

// Document is the assembled result of one extraction request.
// It is built once and never mutated afterwards.
type Document struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	ContentHash string    `json:"contentHash"`
	ExtractedAt time.Time `json:"extractedAt"`

	Title       string `json:"title"`
	Description string `json:"description"`
	OGImage     string `json:"ogImage,omitempty"`
	Favicon     string `json:"favicon,omitempty"`

	Headings     []Heading         `json:"headings"`
	Links        []Link            `json:"links"`
	Images       []Image           `json:"images"`
	Videos       []Video           `json:"videos"`
	Fonts        []Font            `json:"fonts"`
	Colors       []Color           `json:"colors"`
	Emails       []string          `json:"emails"`
	PhoneNumbers []string          `json:"phoneNumbers"`
	MetaTags     map[string]string `json:"metaTags"`
	Scripts      []string          `json:"scripts"`
	Stylesheets  []string          `json:"stylesheets"`
	TextContent  string            `json:"textContent"`
	RobotsTxt    string            `json:"robotsTxt,omitempty"`
}

// Heading is a detected heading. The same visual heading can appear more
// than once when independent detection passes overlap; that duplication is
// kept rather than reconciled.
type Heading struct {
	Level string `json:"level"` // h1..h6
	Text  string `json:"text"`
}

// Link is a deduplicated anchor reference with an absolute href.
type Link struct {
	Text     string `json:"text"`
	Href     string `json:"href"`
	External bool   `json:"external"`
}

// Image is a deduplicated image reference with an absolute src.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Video is a detected video reference. Platform is set only for recognized
// hosts; Thumbnail only when derivable.
type Video struct {
	Src       string `json:"src"`
	Type      string `json:"type"`
	Platform  string `json:"platform,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Font is a detected font family, identified by its canonical first-family
// token. Source records which detection pass first produced it.
type Font struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Color is one entry of the ranked color palette. Hex is the canonical
// 6-digit lowercase form used as the dedup key.
type Color struct {
	Hex       string `json:"hex"`
	RGB       string `json:"rgb"`
	Usage     string `json:"usage"`
	Frequency int    `json:"frequency"`
}

// OutputFormat selects the rendering of extracted content.
type OutputFormat string

// Supported content output formats.
const (
	FormatText     OutputFormat = "text"
	FormatHTML     OutputFormat = "html"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
)

// ContentOptions configures the content selector/formatter pipeline.
type ContentOptions struct {
	OutputFormat    OutputFormat `json:"outputFormat"`
	TextOnly        bool         `json:"textOnly"`
	IgnoreLinks     bool         `json:"ignoreLinks"`
	IncludeElements []string     `json:"includeElements"`
	ExcludeElements []string     `json:"excludeElements"`
}

// Validate returns an error if the options contain an unknown format.
func (o *ContentOptions) Validate() error {
	switch o.OutputFormat {
	case FormatText, FormatHTML, FormatMarkdown, FormatJSON, "":
		return nil
	}
	return Errorf(EINVALID, "unknown output format %q", o.OutputFormat)
}

// DocumentExtractor turns rendered HTML plus its source URL into a Document.
type DocumentExtractor interface {
	// Extract walks the document tree and returns the assembled record.
	// The source URL is normalized and validated before any other work.
	Extract(ctx context.Context, html string, sourceURL string) (*Document, error)
}

// ContentExtractor narrows a document to a subtree and renders it.
type ContentExtractor interface {
	// ExtractContent applies the include/exclude selectors and renders the
	// result in the requested output format.
	ExtractContent(html string, sourceURL string, opts ContentOptions) (string, error)
}
