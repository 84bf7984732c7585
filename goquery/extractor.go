// Package goquery implements the extraction engine on top of
// PuerkitoBio/goquery. Each fact type (headings, links, media, fonts,
// colors, contact identifiers) is derived by an ordered list of independent
// detection passes over one parsed document, merged by a dedup-and-rank
// stage per type.
package goquery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pagelens/pagelens"
	"golang.org/x/sync/errgroup"
)

// DefaultRobotsTimeout bounds the best-effort robots.txt fetch.
const DefaultRobotsTimeout = 3 * time.Second

// Ensure Extractor implements pagelens.DocumentExtractor at compile time.
var _ pagelens.DocumentExtractor = (*Extractor)(nil)

// Extractor assembles a pagelens.Document from rendered HTML.
// All sub-extractors traverse the same immutable parsed tree; they share no
// mutable state and run concurrently.
type Extractor struct {
	phones   pagelens.PhoneDetector
	robots   pagelens.RobotsFetcher
	metadata pagelens.MetadataExtractor
	region   string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPhoneDetector injects the phone-candidate capability. Without it no
// phone numbers are extracted.
func WithPhoneDetector(d pagelens.PhoneDetector) Option {
	return func(e *Extractor) { e.phones = d }
}

// WithRobotsFetcher enables the best-effort robots.txt field.
func WithRobotsFetcher(r pagelens.RobotsFetcher) Option {
	return func(e *Extractor) { e.robots = r }
}

// WithMetadataFallback consults the given extractor for title, description,
// and lead image when the document's own metadata is absent.
func WithMetadataFallback(m pagelens.MetadataExtractor) Option {
	return func(e *Extractor) { e.metadata = m }
}

// WithRegion sets the default region hint for phone detection (e.g. "US").
func WithRegion(region string) Option {
	return func(e *Extractor) { e.region = region }
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{region: "US"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract walks the document tree and returns the assembled record.
func (e *Extractor) Extract(ctx context.Context, html string, sourceURL string) (*pagelens.Document, error) {
	base, err := pagelens.NormalizeURL(sourceURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(html) == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagelens.Errorf(pagelens.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &pagelens.Document{
		ID:          uuid.NewString(),
		SourceURL:   base.String(),
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(html)),
		ExtractedAt: time.Now().UTC(),
	}

	// Every pass reads the same parsed tree and writes only its own field.
	var g errgroup.Group
	g.Go(func() error {
		result.Headings = extractHeadings(doc)
		return nil
	})
	g.Go(func() error {
		result.Links = extractLinks(doc, base)
		return nil
	})
	g.Go(func() error {
		result.Images = extractImages(doc, base)
		result.Favicon = extractFavicon(doc, base)
		return nil
	})
	g.Go(func() error {
		result.Videos = extractVideos(doc, html, base)
		return nil
	})
	g.Go(func() error {
		result.MetaTags = extractMetaTags(doc)
		result.Scripts, result.Stylesheets = extractResources(doc, base)
		result.TextContent = extractTextContent(doc)
		return nil
	})
	g.Go(func() error {
		result.Emails = extractEmails(doc, html)
		return nil
	})
	g.Go(func() error {
		result.PhoneNumbers = extractPhones(doc, e.phones, e.region)
		return nil
	})
	g.Go(func() error {
		result.Fonts = extractFonts(doc, html)
		return nil
	})
	g.Go(func() error {
		result.Colors = extractColors(doc, html)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.fillMetadata(doc, base, result, html)

	if e.robots != nil {
		rctx, cancel := context.WithTimeout(ctx, DefaultRobotsTimeout)
		defer cancel()
		if robots, err := e.robots.FetchRobots(rctx, base.Origin()); err == nil {
			result.RobotsTxt = robots
		}
	}

	return result, nil
}

// fillMetadata sets title, description, and OG image from the document's
// own metadata, falling back to the injected metadata extractor.
func (e *Extractor) fillMetadata(doc *goquery.Document, base *pagelens.NormalizedURL, result *pagelens.Document, html string) {
	result.Title = collapseWhitespace(doc.Find("title").First().Text())
	result.Description = result.MetaTags["description"]
	if result.Description == "" {
		result.Description = result.MetaTags["og:description"]
	}
	if img := result.MetaTags["og:image"]; img != "" {
		result.OGImage = base.Resolve(img)
	}

	if e.metadata == nil {
		return
	}
	if result.Title != "" && result.Description != "" && result.OGImage != "" {
		return
	}
	meta, err := e.metadata.ExtractMetadata(html)
	if err != nil {
		return
	}
	if result.Title == "" {
		result.Title = meta.Title
	}
	if result.Description == "" {
		result.Description = meta.Description
	}
	if result.OGImage == "" && meta.Image != "" {
		result.OGImage = base.Resolve(meta.Image)
	}
}

// collapseWhitespace trims and folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
