package goquery_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughDetector matches digit runs the way a real phone library finds
// candidates in free text, without implementing validity rules beyond shape.
func passthroughDetector(numbers map[string]string) *mock.PhoneDetector {
	return &mock.PhoneDetector{
		DetectFn: func(text string, region string) []pagelens.PhoneCandidate {
			var out []pagelens.PhoneCandidate
			for matched, international := range numbers {
				if strings.Contains(text, matched) {
					out = append(out, pagelens.PhoneCandidate{
						MatchedText:   matched,
						Valid:         true,
						International: international,
					})
				}
			}
			return out
		},
	}
}

func extractPhones(t *testing.T, html string, detector pagelens.PhoneDetector) []string {
	t.Helper()
	ext := goquery.NewExtractor(goquery.WithPhoneDetector(detector))
	doc, err := ext.Extract(context.Background(), html, "https://example.org")
	require.NoError(t, err)
	return doc.PhoneNumbers
}

func TestPhones_TelHref(t *testing.T) {
	t.Parallel()

	detector := passthroughDetector(map[string]string{
		"+14155550132": "+1 415-555-0132",
	})
	phones := extractPhones(t, `<html><body><a href="tel:+14155550132">Call</a></body></html>`, detector)

	assert.Equal(t, []string{"+1 415-555-0132"}, phones)
}

func TestPhones_PageText(t *testing.T) {
	t.Parallel()

	detector := passthroughDetector(map[string]string{
		"+1 415 555 0132": "+1 415-555-0132",
	})
	phones := extractPhones(t, `<html><body><p>Contact us at +1 415 555 0132</p></body></html>`, detector)

	assert.Equal(t, []string{"+1 415-555-0132"}, phones)
}

func TestPhones_DummyNumberSuppressed(t *testing.T) {
	t.Parallel()

	// Even when the detector happily reports the reserved 555-0100 range,
	// the dummy filter drops it.
	detector := passthroughDetector(map[string]string{
		"555-0100": "+1 555-0100",
	})
	phones := extractPhones(t, `<html><body><p>Call 555-0100 now</p></body></html>`, detector)

	assert.Empty(t, phones)
}

func TestPhones_JSONLD(t *testing.T) {
	t.Parallel()

	detector := passthroughDetector(map[string]string{
		"+14155550132": "+1 415-555-0132",
	})
	phones := extractPhones(t, `<html><head>
		<script type="application/ld+json">
		{"@type":"Organization","contactPoint":{"@type":"ContactPoint","telephone":"+14155550132"}}
		</script>
	</head><body></body></html>`, detector)

	assert.Equal(t, []string{"+1 415-555-0132"}, phones)
}

func TestPhones_MalformedJSONLDIsSkipped(t *testing.T) {
	t.Parallel()

	detector := passthroughDetector(nil)
	phones := extractPhones(t, `<html><head>
		<script type="application/ld+json">{not json</script>
	</head><body></body></html>`, detector)

	assert.Empty(t, phones)
}

func TestPhones_Microdata(t *testing.T) {
	t.Parallel()

	detector := passthroughDetector(map[string]string{
		"+14155550132": "+1 415-555-0132",
	})
	phones := extractPhones(t, `<html><body>
		<span itemprop="telephone" content="+14155550132"></span>
	</body></html>`, detector)

	assert.Equal(t, []string{"+1 415-555-0132"}, phones)
}

func TestPhones_DataAttributes(t *testing.T) {
	t.Parallel()

	detector := passthroughDetector(map[string]string{
		"+14155550132": "+1 415-555-0132",
	})
	phones := extractPhones(t, `<html><body>
		<div data-phone-number="+14155550132"></div>
	</body></html>`, detector)

	assert.Equal(t, []string{"+1 415-555-0132"}, phones)
}

func TestPhones_MergedSetIsSorted(t *testing.T) {
	t.Parallel()

	detector := passthroughDetector(map[string]string{
		"+14155550132": "+1 415-555-0132",
		"+14155552671": "+1 415-555-2671",
	})
	phones := extractPhones(t, `<html><body>
		<a href="tel:+14155552671">a</a>
		<a href="tel:+14155550132">b</a>
		<p>Also +14155550132 in text.</p>
	</body></html>`, detector)

	assert.Equal(t, []string{"+1 415-555-0132", "+1 415-555-2671"}, phones)
}

func TestPhones_NilDetector(t *testing.T) {
	t.Parallel()

	ext := goquery.NewExtractor()
	doc, err := ext.Extract(context.Background(), `<html><body><a href="tel:+14155550132">Call</a></body></html>`, "https://example.org")

	require.NoError(t, err)
	assert.Empty(t, doc.PhoneNumbers)
}
