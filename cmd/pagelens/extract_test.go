package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/pagelens/pagelens"
	main "github.com/pagelens/pagelens/cmd/pagelens"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes document JSON to stdout", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "<html><head><title>Acme</title></head></html>", nil
				},
			},
			Extractor: &mock.DocumentExtractor{
				ExtractFn: func(ctx context.Context, html string, sourceURL string) (*pagelens.Document, error) {
					return &pagelens.Document{
						SourceURL: sourceURL,
						Title:     "Acme",
						Headings:  []pagelens.Heading{{Level: "h1", Text: "Acme"}},
					}, nil
				},
			},
		}

		cmd := &main.ExtractCmd{URL: "https://example.org"}
		require.NoError(t, cmd.Run(deps))

		var doc pagelens.Document
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
		assert.Equal(t, "https://example.org", doc.SourceURL)
		assert.Equal(t, "Acme", doc.Title)
		require.Len(t, doc.Headings, 1)
		assert.Equal(t, "h1", doc.Headings[0].Level)
	})

	t.Run("reports fetch errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "server unreachable")
				},
			},
		}

		cmd := &main.ExtractCmd{URL: "https://example.org"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "server unreachable")
	})
}
