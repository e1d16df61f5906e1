package goquery

import "github.com/mkowal/harvest"

// Ensure Resolver implements harvest.SelectorResolver at compile time.
var _ harvest.SelectorResolver = (*Resolver)(nil)

// Resolver produces the selector set for a page. Known domains resolve to
// registered templates; unknown domains fall back to heuristic detection
// against the page's DOM.
type Resolver struct {
	templates *harvest.TemplateRegistry
	detector  harvest.SelectorDetector
}

// NewResolver creates a Resolver over the given registry and detector.
func NewResolver(templates *harvest.TemplateRegistry, detector harvest.SelectorDetector) *Resolver {
	return &Resolver{templates: templates, detector: detector}
}

// Resolve returns the selector set for the page. Resolution never fails:
// a registered template wins, heuristic detection covers unknown domains,
// and unparseable HTML yields the generic default set.
func (r *Resolver) Resolve(pageURL, html string) harvest.SelectorSet {
	domain := harvest.DomainKey(pageURL)
	if set, ok := r.templates.Lookup(domain); ok {
		return set
	}

	doc, err := NewDocument(html)
	if err != nil {
		return harvest.DefaultSelectorSet()
	}
	return r.detector.Detect(doc)
}
