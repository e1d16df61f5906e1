package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowal/harvest"
)

// Ensure Extractor implements harvest.Extractor at compile time.
var _ harvest.Extractor = (*Extractor)(nil)

// Extractor pulls records out of rendered HTML using a resolved selector set.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract finds all containers matching the selector set, truncates to
// maxItems (zero means no limit), and extracts one record per container.
// Containers are processed in document order; a fault in one container never
// aborts the batch. Records lacking both title and link are rejected.
func (e *Extractor) Extract(html, baseURL string, selectors harvest.SelectorSet, maxItems int) (*harvest.ExtractResult, error) {
	if err := selectors.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}

	containers := doc.find(selectors.Container)
	if maxItems > 0 && containers.Length() > maxItems {
		containers = containers.Slice(0, maxItems)
	}

	result := &harvest.ExtractResult{Containers: containers.Length()}

	containers.Each(func(_ int, container *goquery.Selection) {
		record, ok := extractRecord(container, selectors, base)
		if !ok {
			result.Failed++
			return
		}
		if !record.HasIdentity() {
			result.Rejected++
			return
		}
		result.Records = append(result.Records, record)
	})

	return result, nil
}

// extractRecord pulls the fields of one container independently: a missing
// field is omitted, it never invalidates the others. The second return is
// false only when field extraction panicked (e.g. a detached node).
func extractRecord(container *goquery.Selection, selectors harvest.SelectorSet, base *url.URL) (record harvest.Record, ok bool) {
	defer func() {
		if recover() != nil {
			record, ok = nil, false
		}
	}()

	record = harvest.Record{}

	if title := firstText(container, selectors.Title); title != "" {
		record[harvest.FieldTitle] = title
	}
	if author := firstText(container, selectors.Author); author != "" {
		record[harvest.FieldAuthor] = author
	}
	if date := extractDate(container, selectors.Date); date != "" {
		record[harvest.FieldDate] = date
	}
	if content := firstText(container, selectors.Content); content != "" {
		record[harvest.FieldContent] = content
	}
	if link := extractLink(container, selectors.Link, base); link != "" {
		record[harvest.FieldLink] = link
	}

	return record, true
}

// firstText returns the trimmed text of the first descendant matching the
// selector, or "" when the selector is empty or nothing matches.
func firstText(container *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	sel := container.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

// extractDate prefers a machine-readable datetime attribute over the
// element's text content.
func extractDate(container *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	sel := container.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if dt, exists := sel.Attr("datetime"); exists && strings.TrimSpace(dt) != "" {
		return strings.TrimSpace(dt)
	}
	return strings.TrimSpace(sel.Text())
}

// extractLink returns the first usable anchor href resolved to an absolute
// URL against the page base. Pure string concatenation is insufficient for
// ../, protocol-relative and query-relative forms, so resolution goes
// through net/url reference resolution.
func extractLink(container *goquery.Selection, selector string, base *url.URL) string {
	if selector == "" {
		return ""
	}

	var resolved string
	container.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, exists := sel.Attr("href")
		if !exists || href == "" || isNonHTTPLink(href) {
			return true // keep looking
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		resolved = base.ResolveReference(ref).String()
		return false
	})
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
