// Command pagelens extracts structured data from web pages.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/crawl"
	"github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/htmltomarkdown"
	pagehttp "github.com/pagelens/pagelens/http"
	"github.com/pagelens/pagelens/phonenumbers"
	"github.com/pagelens/pagelens/readability"
	"github.com/pagelens/pagelens/rod"
	pageslog "github.com/pagelens/pagelens/slog"
	"github.com/pagelens/pagelens/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagelens"),
		kong.Description("Extract structured data from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagelens --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	var fetcher pagelens.Fetcher
	if cli.Static {
		fetcher = pagehttp.NewFetcher()
	} else {
		browserFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or pass --static for plain HTTP fetching")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = browserFetcher
	}
	fetcher = pageslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	extractor := goquery.NewExtractor(
		goquery.WithPhoneDetector(phonenumbers.NewDetector()),
		goquery.WithRobotsFetcher(pagehttp.NewRobotsClient(nil)),
		goquery.WithMetadataFallback(trafilatura.NewExtractor()),
		goquery.WithRegion(cli.Region),
	)

	deps.Fetcher = fetcher
	deps.Extractor = pageslog.NewLoggingExtractor(extractor, logger)
	deps.Content = goquery.NewContentExtractor()
	deps.Articles = readability.NewExtractor()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Crawler = &crawl.Crawler{
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		Sitemaps:  pageslog.NewLoggingSitemapDiscoverer(pagehttp.NewSitemapDiscoverer(nil), logger),
	}

	return kongCtx.Run(deps)
}
