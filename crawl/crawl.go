// Package crawl provides same-origin site walking. It coordinates
// sitemap discovery, fetching, and extraction across the pages of a
// single site.
package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/pagelens/pagelens"
)

// Frontier configuration for site walks.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Defaults applied when the corresponding Crawler field is zero.
const (
	DefaultConcurrency = 4
	DefaultMaxPages    = 100
	DefaultMaxDepth    = 3
)

// Crawler walks a site starting from a seed URL, extracting a Document
// for every page it visits. Only pages on the seed's origin are followed.
type Crawler struct {
	Fetcher     pagelens.Fetcher
	Extractor   pagelens.DocumentExtractor
	Sitemaps    pagelens.SitemapDiscoverer
	RateLimiter pagelens.DomainLimiter
	Concurrency int
	MaxPages    int
	MaxDepth    int
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Documents []*pagelens.Document
	Failed    int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type  ProgressType
	URL   string
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// workItem is a URL queued for processing together with its link depth.
type workItem struct {
	url   string
	depth int
}

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	url   string
	depth int
	doc   *pagelens.Document
	err   error
}

// Crawl walks the site rooted at seedURL and returns a Document for
// every successfully processed page. The progress callback, if
// provided, receives events as the walk proceeds.
//
// Pages outside the seed's origin are never followed. The walk stops
// after MaxPages pages have been dispatched or the frontier is empty.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, progress ProgressFunc) (*Result, error) {
	seed, err := pagelens.NormalizeURL(seedURL)
	if err != nil {
		return nil, err
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	maxDepth := c.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)

	// depths is only touched by the coordinator goroutine.
	depths := make(map[string]int)
	push := func(rawURL string, depth int) {
		u := stripFragment(rawURL)
		if frontier.Push(u) {
			depths[u] = depth
		}
	}

	// Sitemap discovery is best-effort seeding; a failure falls back to
	// plain link following from the seed page.
	if c.Sitemaps != nil {
		if urls, err := c.Sitemaps.DiscoverURLs(ctx, seed.String()); err == nil {
			for _, u := range urls {
				if sameOrigin(seed, u) {
					push(u, 0)
				}
			}
		}
	}
	push(seed.String(), 0)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: seed.String()})
	}

	workCh := make(chan workItem, concurrency)
	resultCh := make(chan crawlResult)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workCh {
				result := c.processURL(ctx, item)
				select {
				case resultCh <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var result Result
	handleResult := func(res *crawlResult) {
		if res.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, URL: res.url, Error: res.err})
			}
			return
		}

		result.Documents = append(result.Documents, res.doc)
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, URL: res.url})
		}

		if res.depth >= maxDepth {
			return
		}
		for _, link := range res.doc.Links {
			if link.External || link.Href == "" {
				continue
			}
			if !sameOrigin(seed, link.Href) {
				continue
			}
			push(link.Href, res.depth+1)
		}
	}

	// Coordinator loop: dispatch queued URLs to workers and fold
	// results back into the frontier until both run dry.
	dispatched := 0
	pending := 0
	var next *workItem

	if u, ok := frontier.Pop(); ok {
		next = &workItem{url: u, depth: depths[u]}
	}

coordinatorLoop:
	for {
		if next == nil && pending == 0 {
			break coordinatorLoop
		}
		if ctx.Err() != nil {
			break coordinatorLoop
		}

		if next != nil && dispatched < maxPages {
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				dispatched++
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				handleResult(&res)
			}
		} else {
			if pending == 0 {
				// Queue drained past the page budget.
				break coordinatorLoop
			}
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res, ok := <-resultCh:
				if !ok {
					break coordinatorLoop
				}
				pending--
				handleResult(&res)
			}
		}

		if next == nil && dispatched < maxPages {
			if u, ok := frontier.Pop(); ok {
				next = &workItem{url: u, depth: depths[u]}
			}
		}
	}

	// Signal workers to stop and drain remaining results.
	close(workCh)

	drainTimeout := time.After(5 * time.Second)
drainLoop:
	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			handleResult(&res)
		case <-drainTimeout:
			break drainLoop
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// processURL fetches and extracts a single page.
func (c *Crawler) processURL(ctx context.Context, item workItem) crawlResult {
	result := crawlResult{url: item.url, depth: item.depth}

	parsed, err := url.Parse(item.url)
	if err != nil {
		result.err = pagelens.Errorf(pagelens.EINVALID, "invalid URL %q: %v", item.url, err)
		return result
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, item.url, c.Fetcher.Fetch, delays)
	if err != nil {
		result.err = err
		return result
	}

	doc, err := c.Extractor.Extract(ctx, html, item.url)
	if err != nil {
		result.err = err
		return result
	}

	result.doc = doc
	return result
}

// sameOrigin reports whether rawURL shares seed's scheme and host.
func sameOrigin(seed *pagelens.NormalizedURL, rawURL string) bool {
	norm, err := pagelens.NormalizeURL(rawURL)
	if err != nil {
		return false
	}
	return norm.Origin() == seed.Origin()
}
