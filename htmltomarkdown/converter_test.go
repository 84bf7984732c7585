package htmltomarkdown_test

import (
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements pagelens.Converter at compile time.
var _ pagelens.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><h2>Subtitle</h2><p>Hello, world!</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Visit <a href="https://example.com">Example</a> for more info.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>First</li><li>Second</li></ul><ol><li>One</li><li>Two</li></ol>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- First")
		assert.Contains(t, md, "1. One")
		assert.Contains(t, md, "2. Two")
	})

	t.Run("converts code blocks", func(t *testing.T) {
		t.Parallel()

		html := `<pre><code class="language-go">package main</code></pre>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "```go")
		assert.Contains(t, md, "package main")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
	})
}
