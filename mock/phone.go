package mock

import "github.com/pagelens/pagelens"

var _ pagelens.PhoneDetector = (*PhoneDetector)(nil)

// PhoneDetector is a mock implementation of pagelens.PhoneDetector.
type PhoneDetector struct {
	DetectFn func(text string, region string) []pagelens.PhoneCandidate
}

func (d *PhoneDetector) Detect(text string, region string) []pagelens.PhoneCandidate {
	return d.DetectFn(text, region)
}
