package goquery

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// maxColors caps the ranked palette.
const maxColors = 50

var (
	backgroundPattern = regexp.MustCompile(`background(?:-color)?\s*:\s*([^;}]+)`)
	textColorPattern  = regexp.MustCompile(`(?:^|[;{\s])color\s*:\s*([^;}]+)`)
	borderPattern     = regexp.MustCompile(`border(?:-color)?\s*:\s*([^;}]+)`)

	hexLiteralPattern = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	rgbLiteralPattern = regexp.MustCompile(`rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(?:,\s*[\d.]+\s*)?\)`)
	rgbChannelPattern = regexp.MustCompile(`rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})`)
)

// namedColors maps common CSS color keywords to canonical hex.
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
	"grey":    "#808080",
	"brown":   "#a52a2a",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"navy":    "#000080",
	"teal":    "#008080",
	"olive":   "#808000",
	"maroon":  "#800000",
	"silver":  "#c0c0c0",
	"gold":    "#ffd700",
}

type colorTally struct {
	frequency int
	usages    []string
}

// extractColors scans inline styles, style blocks, and the raw markup for
// color values, canonicalizes each to 6-digit lowercase hex, and returns the
// palette ranked by frequency (ties broken by hex), capped at maxColors.
func extractColors(doc *goquery.Document, rawHTML string) []pagelens.Color {
	tallies := make(map[string]*colorTally)

	record := func(value string, usage string) {
		hex, ok := colorFromValue(value)
		if !ok {
			return
		}
		t := tallies[hex]
		if t == nil {
			t = &colorTally{}
			tallies[hex] = t
		}
		t.frequency++
		for _, u := range t.usages {
			if u == usage {
				return
			}
		}
		t.usages = append(t.usages, usage)
	}

	scanDeclarations := func(css string) {
		for _, m := range backgroundPattern.FindAllStringSubmatch(css, -1) {
			record(m[1], "Background")
		}
		for _, m := range textColorPattern.FindAllStringSubmatch(css, -1) {
			record(m[1], "Text")
		}
		for _, m := range borderPattern.FindAllStringSubmatch(css, -1) {
			record(m[1], "Border")
		}
	}

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		scanDeclarations(s.AttrOr("style", ""))
	})
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		scanDeclarations(s.Text())
	})

	for _, m := range hexLiteralPattern.FindAllString(rawHTML, -1) {
		record(m, "Detected")
	}
	for _, m := range rgbLiteralPattern.FindAllString(rawHTML, -1) {
		record(m, "Detected")
	}

	colors := make([]pagelens.Color, 0, len(tallies))
	for hex, t := range tallies {
		colors = append(colors, pagelens.Color{
			Hex:       hex,
			RGB:       hexToRGB(hex),
			Usage:     strings.Join(t.usages, ", "),
			Frequency: t.frequency,
		})
	}
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Frequency != colors[j].Frequency {
			return colors[i].Frequency > colors[j].Frequency
		}
		return colors[i].Hex < colors[j].Hex
	})
	if len(colors) > maxColors {
		colors = colors[:maxColors]
	}
	return colors
}

// colorFromValue canonicalizes a declaration value, falling back to the
// first color literal inside shorthand values (border: 1px solid #333).
func colorFromValue(value string) (string, bool) {
	if hex, ok := canonicalHex(value); ok {
		return hex, true
	}
	if m := hexLiteralPattern.FindString(value); m != "" {
		return canonicalHex(m)
	}
	if m := rgbLiteralPattern.FindString(value); m != "" {
		return canonicalHex(m)
	}
	return "", false
}

// canonicalHex converts a CSS color value to 6-digit lowercase hex.
// Transparent and unparseable values are dropped.
func canonicalHex(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimSuffix(v, "!important")
	v = strings.TrimSpace(v)

	if v == "" || v == "transparent" || v == "none" || v == "currentcolor" {
		return "", false
	}
	if hex, ok := namedColors[v]; ok {
		return hex, true
	}

	if strings.HasPrefix(v, "#") {
		digits := v[1:]
		switch len(digits) {
		case 3:
			if !isHexDigits(digits) {
				return "", false
			}
			return "#" + strings.Repeat(string(digits[0]), 2) +
				strings.Repeat(string(digits[1]), 2) +
				strings.Repeat(string(digits[2]), 2), true
		case 6:
			if !isHexDigits(digits) {
				return "", false
			}
			return "#" + digits, true
		}
		return "", false
	}

	if m := rgbChannelPattern.FindStringSubmatch(v); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return "", false
		}
		return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
	}

	return "", false
}

func isHexDigits(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// hexToRGB renders canonical hex as an rgb() triple.
func hexToRGB(hex string) string {
	r, _ := strconv.ParseInt(hex[1:3], 16, 32)
	g, _ := strconv.ParseInt(hex[3:5], 16, 32)
	b, _ := strconv.ParseInt(hex[5:7], 16, 32)
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}
