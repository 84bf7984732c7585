package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// The four heading passes are independent and their results are appended,
// never merged: the same visual heading can legitimately appear under more
// than one level. This is accepted heuristic noise.

var (
	fontSizeH1 = regexp.MustCompile(`font-size\s*:\s*([3-9]\d|\d{3,})px`)
	fontSizeH2 = regexp.MustCompile(`font-size\s*:\s*[23]\dpx`)
	fontSizeH3 = regexp.MustCompile(`font-size\s*:\s*(1[89]|20)px`)

	classH1 = regexp.MustCompile(`(^|\s)(h1|hero-title|page-title|main-title)(\s|$)`)
	classH2 = regexp.MustCompile(`(^|\s)(h2|section-title)(\s|$)`)
	classH3 = regexp.MustCompile(`(^|\s)(h3|block-title)(\s|$)`)
)

func extractHeadings(doc *goquery.Document) []pagelens.Heading {
	var headings []pagelens.Heading

	add := func(level string, text string) {
		text = collapseWhitespace(text)
		if text == "" {
			return
		}
		headings = append(headings, pagelens.Heading{Level: level, Text: text})
	}

	// Pass 1: native heading elements.
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		add(goquery.NodeName(s), s.Text())
	})

	// Pass 2: ARIA heading roles, level from aria-level (default 2).
	doc.Find(`[role="heading"]`).Each(func(_ int, s *goquery.Selection) {
		level := "h2"
		switch s.AttrOr("aria-level", "") {
		case "1":
			level = "h1"
		case "3":
			level = "h3"
		case "4":
			level = "h4"
		case "5":
			level = "h5"
		case "6":
			level = "h6"
		}
		add(level, s.Text())
	})

	// Pass 3: inline font sizes bucketed by pattern. The patterns overlap
	// on purpose (a 30px element matches both the h1 and h2 buckets).
	doc.Find(`[style*="font-size"]`).Each(func(_ int, s *goquery.Selection) {
		style := s.AttrOr("style", "")
		if fontSizeH1.MatchString(style) {
			add("h1", s.Text())
		}
		if fontSizeH2.MatchString(style) {
			add("h2", s.Text())
		}
		if fontSizeH3.MatchString(style) {
			add("h3", s.Text())
		}
	})

	// Pass 4: heading-like class names.
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		class := s.AttrOr("class", "")
		if classH1.MatchString(class) {
			add("h1", s.Text())
		}
		if classH2.MatchString(class) {
			add("h2", s.Text())
		}
		if classH3.MatchString(class) {
			add("h3", s.Text())
		}
	})

	return headings
}
