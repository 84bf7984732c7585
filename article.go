package pagelens

// Article holds the main content of a page with boilerplate removed.
type Article struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// ArticleExtractor extracts main content from HTML pages, removing
// boilerplate.
type ArticleExtractor interface {
	// ExtractArticle processes raw HTML and returns the main content.
	ExtractArticle(html string) (*Article, error)
}

// PageMetadata is descriptive metadata recovered from a page when the usual
// meta tags are missing or empty.
type PageMetadata struct {
	Title       string
	Description string
	Image       string
}

// MetadataExtractor recovers page metadata from raw HTML. Used by the
// document assembler as a fallback when <title> and meta description are
// absent.
type MetadataExtractor interface {
	ExtractMetadata(html string) (*PageMetadata, error)
}
