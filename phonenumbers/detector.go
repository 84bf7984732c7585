// Package phonenumbers provides a pagelens.PhoneDetector backed by the
// nyaruka port of libphonenumber. All number validity rules live in the
// library; this package only locates candidates in text and asks.
package phonenumbers

import (
	"regexp"

	"github.com/nyaruka/phonenumbers"
	"github.com/pagelens/pagelens"
)

// Ensure Detector implements pagelens.PhoneDetector at compile time.
var _ pagelens.PhoneDetector = (*Detector)(nil)

// candidatePattern locates phone-shaped digit runs in free text. The runs
// are then parsed and validated by libphonenumber.
var candidatePattern = regexp.MustCompile(`\+?\(?\d[\d()\-.\s]{5,16}\d`)

// Detector finds and validates phone numbers in free text.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the phone number candidates found in text. The region is
// applied to numbers written without a country code; it may be empty for
// numbers in international notation.
func (d *Detector) Detect(text string, region string) []pagelens.PhoneCandidate {
	var out []pagelens.PhoneCandidate
	for _, matched := range candidatePattern.FindAllString(text, -1) {
		num, err := phonenumbers.Parse(matched, region)
		if err != nil {
			continue
		}
		valid := phonenumbers.IsValidNumber(num)
		possible := phonenumbers.IsPossibleNumber(num)
		if !valid && !possible {
			continue
		}
		out = append(out, pagelens.PhoneCandidate{
			MatchedText:   matched,
			Valid:         valid,
			Possible:      possible,
			International: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
			E164:          phonenumbers.Format(num, phonenumbers.E164),
		})
	}
	return out
}
