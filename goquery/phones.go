package goquery

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// jsonLDPhoneKeys are the structured-data keys that carry phone numbers,
// including contactPoint.telephone reached by the recursive walk.
var jsonLDPhoneKeys = map[string]bool{
	"telephone":   true,
	"phone":       true,
	"phonenumber": true,
}

// extractPhones scans candidate sources in decreasing structural confidence,
// delegates validity detection to the injected capability, and filters known
// dummy/test patterns both per candidate and once more over the merged set.
func extractPhones(doc *goquery.Document, detector pagelens.PhoneDetector, region string) []string {
	if detector == nil {
		return nil
	}

	seen := make(map[string]bool)

	// scanText hands free text to the detector, which finds candidates
	// within it; each match is then cleaned and dummy-filtered.
	scanText := func(text string) {
		if len(strings.TrimSpace(text)) < 7 {
			return
		}
		for _, c := range detector.Detect(text, region) {
			if !c.Valid && !c.Possible {
				continue
			}
			cleaned, ok := pagelens.CleanPhoneCandidate(c.MatchedText)
			if !ok || pagelens.IsDummyNumber(cleaned) {
				continue
			}
			formatted := c.International
			if formatted == "" {
				formatted = c.E164
			}
			if formatted == "" || pagelens.IsDummyNumber(formatted) {
				continue
			}
			seen[formatted] = true
		}
	}

	// scanValue treats the input as one candidate: clean it, reject dummy
	// patterns, then delegate.
	scanValue := func(value string) {
		cleaned, ok := pagelens.CleanPhoneCandidate(value)
		if !ok || pagelens.IsDummyNumber(cleaned) {
			return
		}
		scanText(cleaned)
	}

	// tel: hrefs.
	doc.Find(`a[href^="tel:"]`).Each(func(_ int, s *goquery.Selection) {
		scanValue(s.AttrOr("href", ""))
	})

	// Whole-page text.
	scanText(doc.Text())

	// Per-element text, excluding script/style containers.
	doc.Find("body *").Not("script, style, noscript").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		scanText(s.Text())
	})

	// Phone-flavored attributes (content, phone, data-phone and friends).
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			for _, attr := range node.Attr {
				key := strings.ToLower(attr.Key)
				if key == "content" || strings.Contains(key, "phone") || strings.Contains(key, "tel") {
					scanValue(attr.Val)
				}
			}
		}
	})

	// JSON-LD structured data.
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		walkJSONLD(data, scanValue)
	})

	// Microdata.
	doc.Find(`[itemprop="telephone"]`).Each(func(_ int, s *goquery.Selection) {
		if content := s.AttrOr("content", ""); content != "" {
			scanValue(content)
			return
		}
		scanValue(s.Text())
	})

	// Phone-flavored hrefs and class/id selectors.
	doc.Find(`a[href*="phone"], a[href*="call"]`).Each(func(_ int, s *goquery.Selection) {
		scanText(s.Text())
	})
	doc.Find(`[class*="phone"], [class*="tel"], [id*="phone"], [id*="tel"]`).Each(func(_ int, s *goquery.Selection) {
		scanText(s.Text())
	})

	// Safety net: one more dummy-filter pass over the merged set.
	phones := make([]string, 0, len(seen))
	for phone := range seen {
		if pagelens.IsDummyNumber(phone) {
			continue
		}
		phones = append(phones, phone)
	}
	sort.Strings(phones)
	return phones
}

// walkJSONLD recursively visits parsed JSON-LD values and reports every
// phone-keyed string to the callback.
func walkJSONLD(data any, report func(string)) {
	switch v := data.(type) {
	case map[string]any:
		for key, value := range v {
			if s, ok := value.(string); ok && jsonLDPhoneKeys[strings.ToLower(key)] {
				report(s)
				continue
			}
			walkJSONLD(value, report)
		}
	case []any:
		for _, item := range v {
			walkJSONLD(item, report)
		}
	}
}
