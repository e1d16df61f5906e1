package goquery_test

import (
	"testing"

	"github.com/mkowal/harvest"
	"github.com/mkowal/harvest/goquery"
	"github.com/mkowal/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Resolver implements harvest.SelectorResolver at compile time.
var _ harvest.SelectorResolver = (*goquery.Resolver)(nil)

func newTestResolver() *goquery.Resolver {
	templates := harvest.NewTemplateRegistry(harvest.DefaultTemplates())
	return goquery.NewResolver(templates, goquery.NewDetector())
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("registered domain returns the template verbatim", func(t *testing.T) {
		t.Parallel()

		resolver := newTestResolver()

		// HTML full of detectable structure must not matter for a known domain.
		html := `<html><body><article><h1>x</h1></article></body></html>`
		set := resolver.Resolve("https://news.ycombinator.com/news", html)

		registry := harvest.NewTemplateRegistry(harvest.DefaultTemplates())
		want, ok := registry.Lookup("news.ycombinator.com")
		require.True(t, ok)
		assert.Equal(t, want, set)
	})

	t.Run("subdomain of a registered domain uses the template", func(t *testing.T) {
		t.Parallel()

		resolver := newTestResolver()

		set := resolver.Resolve("https://blog.medium.com/some-post", "<html></html>")

		registry := harvest.NewTemplateRegistry(harvest.DefaultTemplates())
		want, ok := registry.Lookup("medium.com")
		require.True(t, ok)
		assert.Equal(t, want, set)
	})

	t.Run("www prefix is stripped before lookup", func(t *testing.T) {
		t.Parallel()

		resolver := newTestResolver()

		set := resolver.Resolve("https://www.techcrunch.com/", "<html></html>")
		assert.Equal(t, ".post-block, article", set.Container)
	})

	t.Run("unknown domain falls back to heuristic detection", func(t *testing.T) {
		t.Parallel()

		resolver := newTestResolver()

		html := `<html><body>
			<article><h2>a</h2></article><article><h2>b</h2></article>
			<article><h2>c</h2></article><article><h2>d</h2></article>
		</body></html>`
		set := resolver.Resolve("https://unknown-site.example/feed", html)

		assert.Equal(t, "article", set.Container)
		assert.Equal(t, "h2", set.Title)
	})

	t.Run("never returns an unusable selector set", func(t *testing.T) {
		t.Parallel()

		resolver := newTestResolver()

		// Empty page: every heuristic candidate misses.
		set := resolver.Resolve("https://unknown-site.example/", "<html><body></body></html>")

		require.NoError(t, set.Validate())
		assert.NotEmpty(t, set.Container)
		assert.NotEmpty(t, set.Link)
	})

	t.Run("template bypasses detection entirely", func(t *testing.T) {
		t.Parallel()

		templates := harvest.NewTemplateRegistry(harvest.DefaultTemplates())
		detector := &mock.SelectorDetector{
			DetectFn: func(harvest.DOMCounter) harvest.SelectorSet {
				t.Fatal("detector should not run for a registered domain")
				return harvest.SelectorSet{}
			},
		}

		resolver := goquery.NewResolver(templates, detector)
		set := resolver.Resolve("https://dev.to/", "<html></html>")
		assert.Equal(t, ".crayons-story", set.Container)
	})
}
