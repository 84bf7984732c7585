package main

import (
	"context"
	"io"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Fetcher   pagelens.Fetcher
	Extractor pagelens.DocumentExtractor
	Content   pagelens.ContentExtractor
	Articles  pagelens.ArticleExtractor
	Converter pagelens.Converter
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Static  bool   `short:"s" help:"Fetch with plain HTTP instead of a headless browser"`
	Verbose bool   `short:"v" help:"Log fetch and extraction progress to stderr"`
	Region  string `default:"US" help:"Region hint for phone number detection"`

	Extract ExtractCmd `cmd:"" help:"Extract structured page data as JSON"`
	Content ContentCmd `cmd:"" help:"Extract and format page content"`
	Article ArticleCmd `cmd:"" help:"Extract the main article as markdown"`
	Crawl   CrawlCmd   `cmd:"" help:"Walk a site and extract every page"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// ContentCmd is the "content" subcommand.
type ContentCmd struct {
	URL         string   `arg:"" help:"Page URL"`
	Include     []string `short:"i" help:"CSS selectors to include (repeatable)"`
	Exclude     []string `short:"x" help:"CSS selectors to exclude (repeatable)"`
	Format      string   `short:"f" default:"markdown" enum:"text,html,markdown,json" help:"Output format"`
	TextOnly    bool     `help:"Strip all markup from the result"`
	IgnoreLinks bool     `help:"Replace anchors with their text"`
}

// ArticleCmd is the "article" subcommand.
type ArticleCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string  `arg:"" help:"Seed URL"`
	MaxPages    int     `default:"100" help:"Maximum number of pages to fetch"`
	MaxDepth    int     `default:"3" help:"Maximum link depth from the seed"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64 `default:"1.0" help:"Requests per second per domain"`
	JSON        bool    `help:"Emit full documents as JSON instead of a summary"`
}
