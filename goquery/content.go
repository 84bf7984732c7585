package goquery

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	xhtml "golang.org/x/net/html"
)

// Ensure ContentExtractor implements pagelens.ContentExtractor.
var _ pagelens.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor narrows a document to a subtree by include/exclude
// selectors and renders it as text, an HTML fragment, Markdown, or JSON.
type ContentExtractor struct{}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// ExtractContent runs the selector pipeline and renders the result.
// Any parse error is terminal; partial content is never returned as success.
func (e *ContentExtractor) ExtractContent(rawHTML string, sourceURL string, opts pagelens.ContentOptions) (string, error) {
	if _, err := pagelens.NormalizeURL(sourceURL); err != nil {
		return "", err
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(rawHTML) == "" {
		return "", pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", pagelens.Errorf(pagelens.EINVALID, "failed to parse HTML: %v", err)
	}

	title := collapseWhitespace(doc.Find("title").First().Text())

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	scope, err := narrowToIncludes(root, opts.IncludeElements)
	if err != nil {
		return "", err
	}

	for _, selector := range opts.ExcludeElements {
		scope.Find(selector).Remove()
	}
	scope.Find("script, style, noscript").Remove()

	if opts.IgnoreLinks {
		scope.Find("a").Each(func(_ int, s *goquery.Selection) {
			s.ReplaceWithHtml(html.EscapeString(s.Text()))
		})
	}

	switch opts.OutputFormat {
	case pagelens.FormatHTML:
		if opts.TextOnly {
			return textWithBoundaries(scope), nil
		}
		return renderHTML(scope)
	case pagelens.FormatMarkdown:
		return renderMarkdown(scope, opts), nil
	case pagelens.FormatJSON:
		markup, err := renderHTML(scope)
		if err != nil {
			return "", err
		}
		out, err := json.Marshal(map[string]string{
			"title":   title,
			"content": textWithBoundaries(scope),
			"html":    markup,
		})
		if err != nil {
			return "", pagelens.Errorf(pagelens.EINTERNAL, "encoding content: %v", err)
		}
		return string(out), nil
	default: // FormatText and unset
		return textWithBoundaries(scope), nil
	}
}

// inlineElements are the phrasing tags whose text flows together with their
// siblings. Any other element starts and ends a word boundary.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true,
	"cite": true, "code": true, "data": true, "em": true, "i": true,
	"kbd": true, "mark": true, "q": true, "s": true, "samp": true,
	"small": true, "span": true, "strong": true, "sub": true,
	"sup": true, "time": true, "u": true, "var": true, "wbr": true,
}

// textWithBoundaries renders the scope's text content with a space between
// adjacent block-level elements, so <li>one</li><li>two</li> reads "one two"
// rather than "onetwo". Selection.Text concatenates text nodes verbatim and
// cannot be used here.
func textWithBoundaries(scope *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			b.WriteString(n.Data)
			return
		}
		boundary := n.Type == xhtml.ElementNode && !inlineElements[n.Data]
		if boundary {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if boundary {
			b.WriteByte(' ')
		}
	}
	for _, n := range scope.Nodes {
		walk(n)
	}
	return collapseWhitespace(b.String())
}

// narrowToIncludes collects elements matching the include selectors into a
// synthetic container. When the selectors match nothing, the original
// unfiltered tree is kept.
func narrowToIncludes(root *goquery.Selection, includes []string) (*goquery.Selection, error) {
	if len(includes) == 0 {
		return root, nil
	}

	var parts []string
	for _, selector := range includes {
		root.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if markup, err := goquery.OuterHtml(s); err == nil {
				parts = append(parts, markup)
			}
		})
	}
	if len(parts) == 0 {
		return root, nil
	}

	container, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + strings.Join(parts, "\n") + "</div>"))
	if err != nil {
		return nil, pagelens.Errorf(pagelens.EINTERNAL, "building content container: %v", err)
	}
	return container.Find("body"), nil
}

func renderHTML(scope *goquery.Selection) (string, error) {
	markup, err := scope.Html()
	if err != nil {
		return "", pagelens.Errorf(pagelens.EINTERNAL, "serializing content: %v", err)
	}
	return strings.TrimSpace(markup), nil
}

// blockSelector lists the structured elements the Markdown renderer walks,
// in document order.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, ul, ol, blockquote, pre, img"

// containerSelector marks blocks whose nested matches are rendered inline
// rather than as separate top-level blocks.
const containerSelector = "p, ul, ol, blockquote, pre"

// renderMarkdown converts the scope element by element. When no structured
// elements exist at all, the full plain text is returned instead.
func renderMarkdown(scope *goquery.Selection, opts pagelens.ContentOptions) string {
	var b strings.Builder
	found := false

	scope.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(containerSelector).Length() > 0 {
			return
		}

		switch name := goquery.NodeName(s); name {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			text := collapseWhitespace(s.Text())
			if text == "" {
				return
			}
			level := int(name[1] - '0')
			b.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
		case "p":
			text := collapseWhitespace(inlineMarkdown(s, opts))
			if text == "" {
				return
			}
			b.WriteString(text + "\n\n")
		case "ul":
			s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				b.WriteString("- " + collapseWhitespace(inlineMarkdown(li, opts)) + "\n")
			})
			b.WriteString("\n")
		case "ol":
			s.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
				b.WriteString(fmt.Sprintf("%d. %s\n", i+1, collapseWhitespace(inlineMarkdown(li, opts))))
			})
			b.WriteString("\n")
		case "blockquote":
			text := collapseWhitespace(s.Text())
			if text == "" {
				return
			}
			b.WriteString("> " + text + "\n\n")
		case "pre":
			b.WriteString("```\n" + strings.TrimRight(s.Text(), "\n") + "\n```\n\n")
		case "img":
			if opts.TextOnly {
				return
			}
			b.WriteString("![" + s.AttrOr("alt", "") + "](" + s.AttrOr("src", "") + ")\n\n")
		default:
			return
		}
		found = true
	})

	if !found {
		return textWithBoundaries(scope)
	}
	return b.String()
}

// inlineMarkdown renders an element's contents, rewriting anchors to
// [text](href) and images to ![alt](src).
func inlineMarkdown(s *goquery.Selection, opts pagelens.ContentOptions) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			b.WriteString(c.Text())
		case "a":
			href := c.AttrOr("href", "")
			text := collapseWhitespace(c.Text())
			if opts.IgnoreLinks || href == "" {
				b.WriteString(text)
				return
			}
			b.WriteString("[" + text + "](" + href + ")")
		case "img":
			if !opts.TextOnly {
				b.WriteString("![" + c.AttrOr("alt", "") + "](" + c.AttrOr("src", "") + ")")
			}
		default:
			b.WriteString(inlineMarkdown(c, opts))
		}
	})
	return b.String()
}
