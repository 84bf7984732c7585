package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/mock"
	pageslog "github.com/pagelens/pagelens/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs counts from the extracted document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentExtractor{
			ExtractFn: func(ctx context.Context, html string, sourceURL string) (*pagelens.Document, error) {
				return &pagelens.Document{
					Headings: []pagelens.Heading{{Level: "h1", Text: "Title"}},
					Links:    []pagelens.Link{{Href: "https://example.org/a"}, {Href: "https://example.org/b"}},
				}, nil
			},
		}

		extractor := pageslog.NewLoggingExtractor(inner, logger)
		doc, err := extractor.Extract(context.Background(), "<html></html>", "https://example.org")

		require.NoError(t, err)
		require.NotNil(t, doc)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "url=https://example.org")
		assert.Contains(t, output, "headings=1")
		assert.Contains(t, output, "links=2")
		assert.Contains(t, output, "images=0")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentExtractor{
			ExtractFn: func(ctx context.Context, html string, sourceURL string) (*pagelens.Document, error) {
				return nil, pagelens.Errorf(pagelens.EEMPTY, "empty document")
			},
		}

		extractor := pageslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract(context.Background(), "", "https://example.org")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "code=empty")
		assert.Contains(t, output, "empty document")
	})
}
