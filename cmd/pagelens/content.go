package main

import (
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the content command.
func (c *ContentCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	opts := pagelens.ContentOptions{
		OutputFormat:    pagelens.OutputFormat(c.Format),
		TextOnly:        c.TextOnly,
		IgnoreLinks:     c.IgnoreLinks,
		IncludeElements: c.Include,
		ExcludeElements: c.Exclude,
	}

	content, err := deps.Content.ExtractContent(html, c.URL, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, content)
	return nil
}
