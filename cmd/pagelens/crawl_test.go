package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pagelens/pagelens"
	main "github.com/pagelens/pagelens/cmd/pagelens"
	"github.com/pagelens/pagelens/crawl"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crawlDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	pages := map[string][]pagelens.Link{
		"https://site.test":      {{Href: "https://site.test/docs"}},
		"https://site.test/docs": nil,
	}

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if _, ok := pages[url]; !ok {
				return "", pagelens.Errorf(pagelens.ENOTFOUND, "no page at %s", url)
			}
			return "<html></html>", nil
		},
	}
	extractor := &mock.DocumentExtractor{
		ExtractFn: func(ctx context.Context, html string, sourceURL string) (*pagelens.Document, error) {
			return &pagelens.Document{
				SourceURL: sourceURL,
				Title:     "Page",
				Links:     pages[sourceURL],
			}, nil
		},
	}

	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Crawler: &crawl.Crawler{
			Fetcher:     fetcher,
			Extractor:   extractor,
			RetryDelays: []time.Duration{},
		},
	}
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints a summary line per page", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := crawlDeps(stdout, stderr)

		cmd := &main.CrawlCmd{
			URL:         "https://site.test",
			MaxPages:    10,
			MaxDepth:    3,
			Concurrency: 1,
			RPS:         100,
		}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "https://site.test/docs")
		assert.Contains(t, stderr.String(), "crawled 2 pages, 0 failed")
	})

	t.Run("emits full documents with the JSON flag", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := crawlDeps(stdout, &bytes.Buffer{})

		cmd := &main.CrawlCmd{
			URL:         "https://site.test",
			MaxPages:    10,
			MaxDepth:    3,
			Concurrency: 1,
			RPS:         100,
			JSON:        true,
		}
		require.NoError(t, cmd.Run(deps))

		var docs []pagelens.Document
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &docs))
		assert.Len(t, docs, 2)
	})
}
