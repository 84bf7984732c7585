package goquery_test

import (
	"context"
	"testing"

	"github.com/pagelens/pagelens/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractEmails(t *testing.T, html string) []string {
	t.Helper()
	ext := goquery.NewExtractor()
	doc, err := ext.Extract(context.Background(), html, "https://example.org")
	require.NoError(t, err)
	return doc.Emails
}

func TestEmails_Sources(t *testing.T) {
	t.Parallel()

	emails := extractEmails(t, `<html><body>
		<a href="mailto:Sales@acme.io?subject=hi">Mail</a>
		<p>Reach support at support@acme.io or visit us.</p>
		<div data-email="hidden@acme.io"></div>
		<meta content="meta@acme.io">
	</body></html>`)

	assert.Equal(t, []string{"hidden@acme.io", "meta@acme.io", "sales@acme.io", "support@acme.io"}, emails)
}

func TestEmails_FiltersPlaceholders(t *testing.T) {
	t.Parallel()

	emails := extractEmails(t, `<html><body>
		<p>user@example.com</p>
		<p>test@acme.io</p>
		<p>noreply@acme.io</p>
		<p>no-reply@acme.io</p>
		<p>john.test@corp.com</p>
		<p>real.person@acme.io</p>
	</body></html>`)

	// Anything containing "test@" is a placeholder, not just the test@ prefix.
	assert.Equal(t, []string{"real.person@acme.io"}, emails)
}

func TestEmails_SortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	emails := extractEmails(t, `<html><body>
		<a href="mailto:zoe@acme.io">z</a>
		<p>amy@acme.io and ZOE@acme.io again</p>
	</body></html>`)

	assert.Equal(t, []string{"amy@acme.io", "zoe@acme.io"}, emails)
}
