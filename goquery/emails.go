package goquery

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// extractEmails unions candidates from mailto links, visible text, the raw
// markup, and email-flavored attributes, then validates and lower-cases them
// into a sorted set.
func extractEmails(doc *goquery.Document, rawHTML string) []string {
	seen := make(map[string]bool)

	add := func(candidate string) {
		email := strings.ToLower(strings.TrimSpace(candidate))
		if !isPlausibleEmail(email) {
			return
		}
		seen[email] = true
	}

	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimPrefix(s.AttrOr("href", ""), "mailto:")
		if i := strings.IndexByte(href, '?'); i >= 0 {
			href = href[:i]
		}
		add(href)
	})

	for _, match := range emailPattern.FindAllString(doc.Text(), -1) {
		add(match)
	}
	for _, match := range emailPattern.FindAllString(rawHTML, -1) {
		add(match)
	}

	doc.Find("[content], [data-email], [data-mail]").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range []string{"content", "data-email", "data-mail"} {
			if v := s.AttrOr(attr, ""); v != "" {
				for _, match := range emailPattern.FindAllString(v, -1) {
					add(match)
				}
			}
		}
	})

	emails := make([]string, 0, len(seen))
	for email := range seen {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

// isPlausibleEmail filters obvious placeholder and machine addresses.
func isPlausibleEmail(email string) bool {
	if email == "" || !emailPattern.MatchString(email) {
		return false
	}
	if strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return false
	}
	if strings.Count(email, "@") != 1 {
		return false
	}
	if strings.Contains(email, "example.com") ||
		strings.Contains(email, "test@") ||
		strings.Contains(email, "noreply") ||
		strings.Contains(email, "no-reply") {
		return false
	}
	return true
}
