package mock

import "github.com/mkowal/harvest"

var (
	_ harvest.SelectorDetector = (*SelectorDetector)(nil)
	_ harvest.SelectorResolver = (*SelectorResolver)(nil)
	_ harvest.Extractor        = (*Extractor)(nil)
)

// SelectorDetector is a mock implementation of harvest.SelectorDetector.
type SelectorDetector struct {
	DetectFn func(dom harvest.DOMCounter) harvest.SelectorSet
}

func (d *SelectorDetector) Detect(dom harvest.DOMCounter) harvest.SelectorSet {
	return d.DetectFn(dom)
}

// SelectorResolver is a mock implementation of harvest.SelectorResolver.
type SelectorResolver struct {
	ResolveFn func(pageURL, html string) harvest.SelectorSet
}

func (r *SelectorResolver) Resolve(pageURL, html string) harvest.SelectorSet {
	return r.ResolveFn(pageURL, html)
}

// Extractor is a mock implementation of harvest.Extractor.
type Extractor struct {
	ExtractFn func(html, baseURL string, selectors harvest.SelectorSet, maxItems int) (*harvest.ExtractResult, error)
}

func (e *Extractor) Extract(html, baseURL string, selectors harvest.SelectorSet, maxItems int) (*harvest.ExtractResult, error) {
	return e.ExtractFn(html, baseURL, selectors, maxItems)
}

// DOMCounter is a mock DOM-probe capability backed by a selector→count map.
// Selectors absent from the map count as zero matches.
type DOMCounter struct {
	Counts map[string]int
}

func (d *DOMCounter) Count(selector string) int {
	return d.Counts[selector]
}
