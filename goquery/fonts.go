package goquery

import (
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// genericFontKeywords are CSS keywords, not font identities.
var genericFontKeywords = map[string]bool{
	"serif":      true,
	"sans-serif": true,
	"monospace":  true,
	"cursive":    true,
	"fantasy":    true,
	"inherit":    true,
	"initial":    true,
	"unset":      true,
}

var fontFileExtensions = map[string]bool{
	".woff":  true,
	".woff2": true,
	".ttf":   true,
	".otf":   true,
	".eot":   true,
	".svg":   true,
}

// wellKnownFonts is a closed list detected by substring match anywhere in
// the serialized document.
var wellKnownFonts = []string{
	"Arial", "Helvetica", "Times New Roman", "Georgia", "Verdana",
	"Roboto", "Open Sans", "Lato", "Montserrat", "Poppins", "Inter",
	"Raleway", "Oswald", "Merriweather", "Playfair Display", "Nunito",
	"Ubuntu", "Source Sans Pro", "PT Sans", "Courier New",
}

var fontFamilyPattern = regexp.MustCompile(`font-family\s*:\s*([^;}]+)`)

// extractFonts runs the ordered font detection passes and deduplicates by
// lower-cased first-family token, first occurrence winning. The result is
// sorted alphabetically by name.
func extractFonts(doc *goquery.Document, rawHTML string) []pagelens.Font {
	seen := make(map[string]bool)
	var fonts []pagelens.Font

	add := func(f pagelens.Font) {
		name := firstFamilyToken(f.Name)
		if name == "" || genericFontKeywords[strings.ToLower(name)] {
			return
		}
		key := strings.ToLower(name)
		if seen[key] {
			return
		}
		seen[key] = true
		f.Name = name
		fonts = append(fonts, f)
	}

	// Pass 1: Google Fonts links.
	doc.Find(`link[href*="fonts.googleapis.com"]`).Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		for _, family := range googleFontFamilies(href) {
			add(pagelens.Font{Name: family, Source: "Google Fonts", URL: href, Type: "google"})
		}
	})

	// Pass 2: other font-file links, named from the file name.
	doc.Find("link[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		rel := strings.ToLower(s.AttrOr("rel", ""))
		ext := strings.ToLower(path.Ext(stripQuery(href)))
		if !strings.Contains(rel, "font") && !fontFileExtensions[ext] {
			return
		}
		if strings.Contains(href, "fonts.googleapis.com") {
			return
		}
		add(pagelens.Font{
			Name:   fontNameFromFile(href),
			Source: "Font File",
			URL:    href,
			Type:   strings.TrimPrefix(ext, "."),
		})
	})

	// Pass 3: inline style attributes.
	doc.Find(`[style*="font-family"]`).Each(func(_ int, s *goquery.Selection) {
		for _, m := range fontFamilyPattern.FindAllStringSubmatch(s.AttrOr("style", ""), -1) {
			add(pagelens.Font{Name: m[1], Source: "Inline Style"})
		}
	})

	// Pass 4: @font-face and bare font-family rules in style blocks.
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		for _, m := range fontFamilyPattern.FindAllStringSubmatch(s.Text(), -1) {
			add(pagelens.Font{Name: m[1], Source: "Stylesheet"})
		}
	})

	// Pass 5: well-known font names anywhere in the markup.
	for _, name := range wellKnownFonts {
		if strings.Contains(rawHTML, name) {
			add(pagelens.Font{Name: name, Source: "Detected"})
		}
	}

	sort.Slice(fonts, func(i, j int) bool { return fonts[i].Name < fonts[j].Name })
	return fonts
}

// firstFamilyToken reduces a font-family declaration to its canonical
// identity: the first comma-separated family, unquoted and trimmed.
func firstFamilyToken(value string) string {
	first, _, _ := strings.Cut(value, ",")
	first = strings.TrimSpace(first)
	first = strings.Trim(first, `"'`)
	return strings.TrimSpace(first)
}

// googleFontFamilies decodes the family= parameter of a Google Fonts URL.
// Families are separated by | and carry :weight suffixes.
func googleFontFamilies(href string) []string {
	u, err := url.Parse(href)
	if err != nil {
		return nil
	}
	var families []string
	for _, family := range u.Query()["family"] {
		for _, part := range strings.Split(family, "|") {
			name, _, _ := strings.Cut(part, ":")
			name = strings.ReplaceAll(name, "+", " ")
			if name = strings.TrimSpace(name); name != "" {
				families = append(families, name)
			}
		}
	}
	return families
}

// fontNameFromFile derives a display name from a font file URL.
func fontNameFromFile(href string) string {
	base := path.Base(stripQuery(href))
	name := strings.TrimSuffix(base, path.Ext(base))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	if name = strings.TrimSpace(name); name == "" {
		return "Custom Font"
	}
	return name
}

func stripQuery(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		return href[:i]
	}
	return href
}
