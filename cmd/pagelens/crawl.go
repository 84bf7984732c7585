package main

import (
	"encoding/json"
	"fmt"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	crawler := deps.Crawler
	crawler.MaxPages = c.MaxPages
	crawler.MaxDepth = c.MaxDepth
	crawler.Concurrency = c.Concurrency
	crawler.RateLimiter = crawl.NewDomainLimiter(c.RPS)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "ok   %s\n", event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "fail %s: %s\n", event.URL, pagelens.ErrorMessage(event.Error))
		}
	}

	result, err := crawler.Crawl(deps.Ctx, c.URL, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if c.JSON {
		out, err := json.MarshalIndent(result.Documents, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(out))
	} else {
		for _, doc := range result.Documents {
			fmt.Fprintf(deps.Stdout, "%s  %q  headings=%d links=%d images=%d\n",
				doc.SourceURL, doc.Title, len(doc.Headings), len(doc.Links), len(doc.Images))
		}
	}

	fmt.Fprintf(deps.Stderr, "crawled %d pages, %d failed\n", len(result.Documents), result.Failed)
	return nil
}
