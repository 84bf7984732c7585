package pagelens

import "strings"

// PhoneCandidate is one match reported by a PhoneDetector.
type PhoneCandidate struct {
	// MatchedText is the raw text the detector matched.
	MatchedText string

	// Valid reports whether the number is valid for its region.
	Valid bool

	// Possible reports whether the number has a plausible length/shape
	// even if full validation fails.
	Possible bool

	// International is the number in international format (+1 415-555-0132).
	International string

	// E164 is the number in E.164 format (+14155550132).
	E164 string
}

// PhoneDetector finds phone number candidates in free text.
// The region is an ISO 3166-1 alpha-2 hint (e.g. "US") applied to numbers
// written without a country code. Number validity rules live entirely behind
// this interface.
type PhoneDetector interface {
	Detect(text string, region string) []PhoneCandidate
}

// dummySequences are reserved or placeholder digit runs that never belong to
// a real subscriber.
var dummySequences = []string{
	"5550100",
	"5550199",
	"5551234",
	"1234567890",
	"0123456789",
	"0000000000",
}

// CleanPhoneCandidate strips scheme prefixes and characters that cannot
// appear in a written phone number. Returns false when the remainder is too
// short to be a number at all.
func CleanPhoneCandidate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	for _, prefix := range []string{"tel:", "call:", "phone:"} {
		if strings.HasPrefix(lower, prefix) {
			s = s[len(prefix):]
			break
		}
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.' || r == ' ':
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if len(cleaned) < 7 {
		return "", false
	}
	return cleaned, true
}

// IsDummyNumber reports whether a phone-like string matches a known
// placeholder or test pattern: a single repeated digit, sequential digit
// runs, reserved literal sequences, or the US 555 test ranges.
func IsDummyNumber(s string) bool {
	digits := digitsOf(s)
	if len(digits) < 7 {
		return false
	}

	if len(digits) >= 10 && allSameDigit(digits) {
		return true
	}
	if hasSequentialRun(digits, 7) {
		return true
	}
	for _, seq := range dummySequences {
		if strings.Contains(digits, seq) {
			return true
		}
	}

	// US test ranges: a bare 555 exchange (555-XXXX) or a 555 area code.
	national := digits
	if len(national) == 11 && national[0] == '1' {
		national = national[1:]
	}
	if strings.HasPrefix(national, "555") && (len(national) == 7 || len(national) == 10) {
		return true
	}

	return false
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// hasSequentialRun reports whether digits contains n consecutive ascending
// or descending digits (e.g. 1234567 or 9876543).
func hasSequentialRun(digits string, n int) bool {
	if len(digits) < n {
		return false
	}
	asc, desc := 1, 1
	for i := 1; i < len(digits); i++ {
		diff := int(digits[i]) - int(digits[i-1])
		if diff == 1 {
			asc++
		} else {
			asc = 1
		}
		if diff == -1 {
			desc++
		} else {
			desc = 1
		}
		if asc >= n || desc >= n {
			return true
		}
	}
	return false
}
