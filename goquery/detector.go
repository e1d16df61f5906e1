package goquery

import "github.com/mkowal/harvest"

// Ensure Detector implements harvest.SelectorDetector at compile time.
var _ harvest.SelectorDetector = (*Detector)(nil)

// Container candidates are only accepted when their match count falls inside
// this band. Fewer matches usually means a stray element; more means the
// selector caught the entire page shell.
const (
	minContainerCount = 3
	maxContainerCount = 100
)

// candidate pairs a CSS selector with its acceptance predicate.
type candidate struct {
	selector string
	accept   func(count int) bool
}

func anyMatch(count int) bool { return count > 0 }

func inContainerBand(count int) bool {
	return count >= minContainerCount && count <= maxContainerCount
}

// fieldStrategy is an ordered candidate list for one record field, with the
// alternation returned when every candidate misses.
type fieldStrategy struct {
	candidates []candidate
	fallback   string
}

// detect evaluates candidates in order and returns the first accepted
// selector, or the fallback when none is accepted.
func (s fieldStrategy) detect(dom harvest.DOMCounter) string {
	for _, c := range s.candidates {
		if c.accept(dom.Count(c.selector)) {
			return c.selector
		}
	}
	return s.fallback
}

// Detector infers a selector set for an unknown site by probing its DOM.
// Each field is detected independently: semantic tags are tried before
// class-name patterns, and a generic fallback alternation guarantees the
// result is always usable.
type Detector struct {
	container fieldStrategy
	title     fieldStrategy
	author    fieldStrategy
	date      fieldStrategy
	content   fieldStrategy
}

// NewDetector creates a new Detector with the default candidate lists.
func NewDetector() *Detector {
	return &Detector{
		container: fieldStrategy{
			candidates: bandCandidates(
				// Semantic tags first.
				"article",
				`section[class*="post"]`,
				`section[class*="item"]`,
				// Common class-name patterns.
				".post", ".card", ".item", ".entry", ".article-item",
				`[class*="post"]`, `[class*="card"]`, `[class*="item"]`,
				`[class*="story"]`, `[class*="content-item"]`,
			),
			fallback: `article, .post, .card, .item, .entry, section[class*="post"]`,
		},
		title: fieldStrategy{
			candidates: presenceCandidates(
				"h1", "h2", "h3",
				".title", ".headline", `[class*="title"]`, `[class*="heading"]`,
			),
			fallback: "h1, h2, h3, .title, .headline",
		},
		author: fieldStrategy{
			candidates: presenceCandidates(
				".author", ".byline", `[class*="author"]`,
				`[rel="author"]`, `[itemprop="author"]`,
				".meta-author", ".writer",
			),
			fallback: `.author, .byline, [rel="author"]`,
		},
		date: fieldStrategy{
			candidates: presenceCandidates(
				// Semantic time markup before class names.
				"time", "[datetime]",
				".date", ".published", `[class*="date"]`, `[class*="time"]`,
				".meta-date", ".timestamp",
			),
			fallback: "time, .date, .published",
		},
		content: fieldStrategy{
			candidates: presenceCandidates(
				".content", ".description", ".summary", ".excerpt",
				`[class*="content"]`, `[class*="description"]`,
				"p", ".text",
			),
			fallback: ".content, .description, .summary, p",
		},
	}
}

// Detect probes the DOM and returns a selector set. The link selector is
// always "first anchor with an href"; no detection is needed for it.
func (d *Detector) Detect(dom harvest.DOMCounter) harvest.SelectorSet {
	return harvest.SelectorSet{
		Container: d.container.detect(dom),
		Title:     d.title.detect(dom),
		Author:    d.author.detect(dom),
		Date:      d.date.detect(dom),
		Content:   d.content.detect(dom),
		Link:      "a[href]",
	}
}

func bandCandidates(selectors ...string) []candidate {
	out := make([]candidate, len(selectors))
	for i, s := range selectors {
		out[i] = candidate{selector: s, accept: inContainerBand}
	}
	return out
}

func presenceCandidates(selectors ...string) []candidate {
	out := make([]candidate, len(selectors))
	for i, s := range selectors {
		out[i] = candidate{selector: s, accept: anyMatch}
	}
	return out
}
