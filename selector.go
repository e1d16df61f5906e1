package harvest

import (
	"context"
	"net/url"
	"strings"
)

// SelectorSet maps the logical record fields to CSS selectors. Selectors may
// be comma-joined alternations. Container and Link are always non-empty;
// other fields may be empty, meaning the field is unavailable on the site.
//
// SelectorSet has value semantics: registry lookups and resolver results are
// copies, so callers may override fields locally without affecting shared
// templates.
type SelectorSet struct {
	Container string `json:"container"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	Link      string `json:"link"`
}

// Validate returns an error if the selector set violates its invariants.
func (s SelectorSet) Validate() error {
	if s.Container == "" {
		return Errorf(EINVALID, "selector set container required")
	}
	if s.Link == "" {
		return Errorf(EINVALID, "selector set link required")
	}
	return nil
}

// DefaultSelectorSet returns the generic selector set used when nothing
// better can be determined for a page. It unions the most common container,
// heading and metadata patterns so extraction always has something to probe.
func DefaultSelectorSet() SelectorSet {
	return SelectorSet{
		Container: "article, .post, .card, .item, .news-item",
		Title:     "h1, h2, h3, .title, .headline",
		Author:    `.author, .byline, [rel="author"]`,
		Date:      "time, .date, .published",
		Content:   ".content, .description, .summary, p",
		Link:      "a[href]",
	}
}

// DomainKey normalizes a page URL to the domain used for template lookup:
// the URL host with any "www." prefix stripped. Path, query and scheme are
// discarded. Returns "" if the URL has no parseable host.
func DomainKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// DOMCounter reports how many elements of a rendered page match a CSS
// selector. A probe with invalid selector syntax counts as zero matches;
// probing never fails.
type DOMCounter interface {
	Count(selector string) int
}

// SelectorDetector infers a selector set for an unknown site by probing its
// DOM structure. Detection always produces a usable set: fields whose
// candidates all miss receive a generic fallback alternation.
type SelectorDetector interface {
	Detect(dom DOMCounter) SelectorSet
}

// SelectorResolver produces the selector set for a page: a registered
// template when the domain is known, heuristic detection otherwise.
// Resolution never fails.
type SelectorResolver interface {
	Resolve(pageURL, html string) SelectorSet
}

// ExtractResult holds the records extracted from one page along with
// per-container accounting.
type ExtractResult struct {
	// Records in document order of their containers, minus truncation and
	// rejected items.
	Records []Record

	// Containers is the number of containers processed after truncation.
	Containers int

	// Rejected counts containers that produced no identifiable record.
	Rejected int

	// Failed counts containers that raised extraction faults.
	Failed int
}

// Extractor extracts records from rendered HTML using a resolved selector
// set. maxItems limits extraction to the first containers in document order;
// zero means no limit.
type Extractor interface {
	Extract(html, baseURL string, selectors SelectorSet, maxItems int) (*ExtractResult, error)
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content and infinite-scroll pagination.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and returns
	// the rendered HTML. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
