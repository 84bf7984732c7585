package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// extractLinks iterates anchors, resolves hrefs against the base, classifies
// them by origin, and deduplicates by resolved href (first occurrence wins).
func extractLinks(doc *goquery.Document, base *pagelens.NormalizedURL) []pagelens.Link {
	seen := make(map[string]bool)
	var links []pagelens.Link

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := base.Resolve(href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		text := collapseWhitespace(s.Text())
		if text == "" {
			text = strings.TrimSpace(s.AttrOr("aria-label", ""))
		}
		if text == "" {
			text = strings.TrimSpace(s.AttrOr("title", ""))
		}
		if text == "" {
			text = href
		}

		links = append(links, pagelens.Link{
			Text:     text,
			Href:     resolved,
			External: base.IsExternal(resolved),
		})
	})

	return links
}

// isNonHTTPLink reports whether the href targets something other than a
// fetchable page.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:")
}

// extractMetaTags records every meta tag carrying a name or property plus
// content. Later occurrences overwrite earlier ones under the same key.
func extractMetaTags(doc *goquery.Document) map[string]string {
	tags := make(map[string]string)
	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		key := s.AttrOr("name", "")
		if key == "" {
			key = s.AttrOr("property", "")
		}
		content, hasContent := s.Attr("content")
		if key == "" || !hasContent {
			return
		}
		tags[key] = content
	})
	return tags
}

// extractResources returns script and stylesheet URLs in document order,
// resolved but not deduplicated.
func extractResources(doc *goquery.Document, base *pagelens.NormalizedURL) (scripts, stylesheets []string) {
	doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		if resolved := base.Resolve(s.AttrOr("src", "")); resolved != "" {
			scripts = append(scripts, resolved)
		}
	})
	doc.Find(`link[rel="stylesheet"][href]`).Each(func(_ int, s *goquery.Selection) {
		if resolved := base.Resolve(s.AttrOr("href", "")); resolved != "" {
			stylesheets = append(stylesheets, resolved)
		}
	})
	return scripts, stylesheets
}

// extractTextContent concatenates paragraph text.
func extractTextContent(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := collapseWhitespace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}
