package main

import (
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the article command.
func (c *ArticleCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	article, err := deps.Articles.ExtractArticle(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	markdown, err := deps.Converter.Convert(article.ContentHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if article.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", article.Title)
	}
	fmt.Fprintln(deps.Stdout, markdown)
	return nil
}
