// Package goquery implements selector detection, resolution and record
// extraction on top of the goquery CSS selection engine.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mkowal/harvest"
)

// Ensure Document implements harvest.DOMCounter at compile time.
var _ harvest.DOMCounter = (*Document)(nil)

// Document wraps a parsed HTML page and exposes the DOM-query capability the
// detection and extraction code needs.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses rendered HTML into a queryable document.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Count returns the number of elements matching the selector. Invalid
// selector syntax matches nothing, so probing never fails.
func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

// find exposes the underlying selection for the extraction pipeline.
func (d *Document) find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}
