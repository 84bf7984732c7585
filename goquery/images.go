package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// iconSelectors in priority order, shared by favicon and image synthesis.
var iconSelectors = []string{
	`link[rel="icon"]`,
	`link[rel="shortcut icon"]`,
	`link[rel="apple-touch-icon"]`,
	`link[rel="apple-touch-icon-precomposed"]`,
}

// extractImages collects img elements deduplicated by resolved src, then
// synthesizes icon entries from favicon links. When the document declares no
// icons at all, a default /favicon.ico guess is added.
func extractImages(doc *goquery.Document, base *pagelens.NormalizedURL) []pagelens.Image {
	seen := make(map[string]bool)
	var images []pagelens.Image

	add := func(src, alt string) {
		resolved := base.Resolve(src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		images = append(images, pagelens.Image{Src: resolved, Alt: alt})
	}

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		add(s.AttrOr("src", ""), s.AttrOr("alt", ""))
	})

	declared := false
	for _, selector := range iconSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			href := strings.TrimSpace(s.AttrOr("href", ""))
			if href == "" {
				return
			}
			declared = true
			add(href, "favicon")
		})
	}
	if !declared {
		add("/favicon.ico", "favicon")
	}

	return images
}

// extractFavicon returns the first declared icon by selector priority,
// falling back to the conventional /favicon.ico location.
func extractFavicon(doc *goquery.Document, base *pagelens.NormalizedURL) string {
	for _, selector := range iconSelectors {
		href := strings.TrimSpace(doc.Find(selector).First().AttrOr("href", ""))
		if href == "" {
			continue
		}
		if resolved := base.Resolve(href); resolved != "" {
			return resolved
		}
	}
	return base.Origin() + "/favicon.ico"
}
