package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/pagelens/pagelens"
	pagelenshttp "github.com/pagelens/pagelens/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapDiscoverer_DiscoverURLs_FromRobotsTxt(t *testing.T) {
	t.Parallel()

	robotsTxt := `User-agent: *
Disallow: /private/
Sitemap: {{BASE}}/sitemap.xml
`
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/docs/intro</loc></url>
  <url><loc>{{BASE}}/docs/guide</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/robots.txt":  robotsTxt,
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := pagelenshttp.NewSitemapDiscoverer(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/docs/intro")
	assert.Contains(t, urls, srv.URL+"/docs/guide")
}

func TestSitemapDiscoverer_DiscoverURLs_FallbackToSitemapXML(t *testing.T) {
	t.Parallel()

	// No robots.txt, should fall back to /sitemap.xml.
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/page1</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := pagelenshttp.NewSitemapDiscoverer(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Len(t, urls, 1)
	assert.Contains(t, urls, srv.URL+"/page1")
}

func TestSitemapDiscoverer_DiscoverURLs_SitemapIndex(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-docs.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-blog.xml</loc></sitemap>
</sitemapindex>`

	sitemapDocs := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/docs/intro</loc></url>
</urlset>`

	sitemapBlog := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/hello</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":      sitemapIndex,
		"/sitemap-docs.xml": sitemapDocs,
		"/sitemap-blog.xml": sitemapBlog,
	})
	defer srv.Close()

	svc := pagelenshttp.NewSitemapDiscoverer(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, srv.URL+"/docs/intro")
	assert.Contains(t, urls, srv.URL+"/blog/hello")
}

func TestSitemapDiscoverer_DiscoverURLs_PathPrefixFilter(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/docs/intro</loc></url>
  <url><loc>{{BASE}}/documentation/other</loc></url>
  <url><loc>{{BASE}}/blog/post</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := pagelenshttp.NewSitemapDiscoverer(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/docs")

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/intro"}, urls)
}

func TestSitemapDiscoverer_DiscoverURLs_DeduplicatesAcrossSitemaps(t *testing.T) {
	t.Parallel()

	robotsTxt := `Sitemap: {{BASE}}/sitemap-a.xml
Sitemap: {{BASE}}/sitemap-b.xml
`
	sitemapA := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/shared</loc></url>
  <url><loc>{{BASE}}/only-a</loc></url>
</urlset>`

	sitemapB := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/shared</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/robots.txt":    robotsTxt,
		"/sitemap-a.xml": sitemapA,
		"/sitemap-b.xml": sitemapB,
	})
	defer srv.Close()

	svc := pagelenshttp.NewSitemapDiscoverer(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestSitemapDiscoverer_DiscoverURLs_NoSitemapFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	svc := pagelenshttp.NewSitemapDiscoverer(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestSitemapDiscoverer_DiscoverURLs_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	svc := pagelenshttp.NewSitemapDiscoverer(nil)
	_, err := svc.DiscoverURLs(context.Background(), "http://%zz")

	require.Error(t, err)
}

func TestSitemapDiscoverer_DiscoverURLs_ContextCancelled(t *testing.T) {
	t.Parallel()

	svc := pagelenshttp.NewSitemapDiscoverer(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.DiscoverURLs(ctx, "https://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// Compile-time verification that SitemapDiscoverer implements pagelens.SitemapDiscoverer
var _ pagelens.SitemapDiscoverer = (*pagelenshttp.SitemapDiscoverer)(nil)

func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = replaceBaseURL(body, srv.URL)

		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(body))
	}))

	return srv
}

func replaceBaseURL(content, baseURL string) string {
	return regexp.MustCompile(`\{\{BASE\}\}`).ReplaceAllString(content, baseURL)
}
