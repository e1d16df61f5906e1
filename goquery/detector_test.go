package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mkowal/harvest"
	"github.com/mkowal/harvest/goquery"
	"github.com/mkowal/harvest/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Detector implements harvest.SelectorDetector at compile time.
var _ harvest.SelectorDetector = (*goquery.Detector)(nil)

func TestDetector_Container(t *testing.T) {
	t.Parallel()

	t.Run("first candidate inside the count band wins", func(t *testing.T) {
		t.Parallel()

		// 5 semantic articles beat 200 generic items: the in-range candidate
		// earlier in the list wins over a later, out-of-range one.
		dom := &mock.DOMCounter{Counts: map[string]int{
			"article": 5,
			".item":   200,
		}}

		set := goquery.NewDetector().Detect(dom)
		assert.Equal(t, "article", set.Container)
	})

	t.Run("candidates outside the band are skipped", func(t *testing.T) {
		t.Parallel()

		dom := &mock.DOMCounter{Counts: map[string]int{
			"article": 2,   // below band
			".post":   300, // above band
			".card":   10,  // in band
		}}

		set := goquery.NewDetector().Detect(dom)
		assert.Equal(t, ".card", set.Container)
	})

	t.Run("falls back to generic alternation when nothing is in band", func(t *testing.T) {
		t.Parallel()

		dom := &mock.DOMCounter{Counts: map[string]int{"article": 1}}

		set := goquery.NewDetector().Detect(dom)
		assert.Equal(t, `article, .post, .card, .item, .entry, section[class*="post"]`, set.Container)
	})
}

func TestDetector_Fields(t *testing.T) {
	t.Parallel()

	t.Run("heading priority order", func(t *testing.T) {
		t.Parallel()

		dom := &mock.DOMCounter{Counts: map[string]int{"h2": 8, "h3": 4}}

		set := goquery.NewDetector().Detect(dom)
		assert.Equal(t, "h2", set.Title)
	})

	t.Run("semantic time tag beats date classes", func(t *testing.T) {
		t.Parallel()

		dom := &mock.DOMCounter{Counts: map[string]int{"time": 3, ".date": 10}}

		set := goquery.NewDetector().Detect(dom)
		assert.Equal(t, "time", set.Date)
	})

	t.Run("empty DOM yields fallbacks for every field", func(t *testing.T) {
		t.Parallel()

		set := goquery.NewDetector().Detect(&mock.DOMCounter{})

		require.NoError(t, set.Validate())
		assert.Equal(t, "h1, h2, h3, .title, .headline", set.Title)
		assert.Equal(t, `.author, .byline, [rel="author"]`, set.Author)
		assert.Equal(t, "time, .date, .published", set.Date)
		assert.Equal(t, ".content, .description, .summary, p", set.Content)
	})

	t.Run("link is always the first anchor with an href", func(t *testing.T) {
		t.Parallel()

		set := goquery.NewDetector().Detect(&mock.DOMCounter{})
		assert.Equal(t, "a[href]", set.Link)
	})
}

func TestDetector_AgainstParsedDocument(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, `<article><h2>Post %d</h2><time datetime="2026-01-0%dT00:00:00Z">Jan</time><p class="summary">text</p><a href="/p/%d">more</a></article>`, i, i+1, i)
	}
	b.WriteString("</body></html>")

	doc, err := goquery.NewDocument(b.String())
	require.NoError(t, err)

	set := goquery.NewDetector().Detect(doc)

	assert.Equal(t, "article", set.Container)
	assert.Equal(t, "h2", set.Title)
	assert.Equal(t, "time", set.Date)
	assert.Equal(t, "a[href]", set.Link)
}
