package harvest

import "strings"

// Template pairs a registrable domain with the selector set known to work
// for that site.
type Template struct {
	Domain    string
	Selectors SelectorSet
}

// TemplateRegistry is a read-only, ordered domain→SelectorSet table.
// Registration order is preserved so lookups are deterministic.
type TemplateRegistry struct {
	templates []Template
}

// NewTemplateRegistry creates a registry over the given templates.
// The slice is copied; the registry never mutates after construction.
func NewTemplateRegistry(templates []Template) *TemplateRegistry {
	r := &TemplateRegistry{templates: make([]Template, len(templates))}
	copy(r.templates, templates)
	return r
}

// Lookup returns the selector set registered for a domain.
//
// An exact match wins. Otherwise the registered domain that is a substring of
// the queried domain matches, which handles subdomains (a registered
// "wikipedia.org" matches "en.wikipedia.org"). When several registered
// domains are substrings of the query, the longest one wins so the most
// specific template applies.
//
// The returned set is a value copy; callers may override fields locally.
func (r *TemplateRegistry) Lookup(domain string) (SelectorSet, bool) {
	if domain == "" {
		return SelectorSet{}, false
	}

	var best *Template
	for i := range r.templates {
		t := &r.templates[i]
		if t.Domain == domain {
			return t.Selectors, true
		}
		if strings.Contains(domain, t.Domain) {
			if best == nil || len(t.Domain) > len(best.Domain) {
				best = t
			}
		}
	}

	if best != nil {
		return best.Selectors, true
	}
	return SelectorSet{}, false
}

// Domains returns the registered domains in registration order.
func (r *TemplateRegistry) Domains() []string {
	domains := make([]string, len(r.templates))
	for i, t := range r.templates {
		domains[i] = t.Domain
	}
	return domains
}

// DefaultTemplates returns the built-in selector templates for popular sites.
func DefaultTemplates() []Template {
	return []Template{
		// News & blogs
		{Domain: "wikipedia.org", Selectors: SelectorSet{
			Container: ".mw-parser-output > p, .mw-parser-output > h2, .mw-parser-output > h3",
			Title:     "#firstHeading, h1",
			Content:   "p",
			Link:      "a[href]",
		}},
		{Domain: "medium.com", Selectors: SelectorSet{
			Container: "article",
			Title:     "h1",
			Author:    `[rel="author"], [data-testid="authorName"]`,
			Date:      "time",
			Content:   "article p",
			Link:      "a[href]",
		}},
		{Domain: "dev.to", Selectors: SelectorSet{
			Container: ".crayons-story",
			Title:     "h2, h3",
			Author:    ".crayons-story__secondary .crayons-link",
			Date:      "time",
			Content:   ".crayons-story__body",
			Link:      "a[href]",
		}},
		{Domain: "reddit.com", Selectors: SelectorSet{
			Container: `[data-testid="post-container"], .Post`,
			Title:     `h3, [data-click-id="text"]`,
			Author:    `[data-testid="post_author_link"]`,
			Date:      "time",
			Content:   `[data-test-id="post-content"]`,
			Link:      "a[href]",
		}},
		{Domain: "stackoverflow.com", Selectors: SelectorSet{
			Container: ".question-summary, .answer",
			Title:     ".question-hyperlink, h1",
			Author:    ".user-details a",
			Date:      ".relativetime",
			Content:   ".s-prose p",
			Link:      "a.question-hyperlink",
		}},
		{Domain: "github.com", Selectors: SelectorSet{
			Container: "article.Box-row, .repo-list li",
			Title:     "h3, h1",
			Author:    `[itemprop="author"]`,
			Date:      "relative-time",
			Content:   "p.col-9",
			Link:      "a[href]",
		}},
		{Domain: "news.ycombinator.com", Selectors: SelectorSet{
			Container: ".athing, tr.athing",
			Title:     ".titleline > a",
			Author:    ".hnuser",
			Date:      ".age",
			Content:   ".comment",
			Link:      ".titleline > a",
		}},

		// E-commerce
		{Domain: "amazon.com", Selectors: SelectorSet{
			Container: `[data-component-type="s-search-result"], .s-result-item`,
			Title:     "h2 a, .s-title-instructions-style",
			Author:    ".a-size-base-plus",
			Content:   ".a-size-base-plus",
			Link:      "h2 a",
		}},
		{Domain: "mercadolivre.com.br", Selectors: SelectorSet{
			Container: ".ui-search-result",
			Title:     ".ui-search-item__title",
			Author:    ".ui-search-official-store-label",
			Content:   ".ui-search-item__group__element",
			Link:      ".ui-search-link",
		}},

		// News BR
		{Domain: "g1.globo.com", Selectors: SelectorSet{
			Container: ".feed-post-body, .widget--info",
			Title:     ".feed-post-link, h1",
			Author:    ".feed-post-metadata-section",
			Date:      ".feed-post-datetime",
			Content:   ".feed-post-body-resumo, p",
			Link:      ".feed-post-link",
		}},
		{Domain: "uol.com.br", Selectors: SelectorSet{
			Container: ".thumbnails-item, article",
			Title:     ".thumb-title, h1",
			Author:    ".author",
			Date:      ".time",
			Content:   "p",
			Link:      "a[href]",
		}},
		{Domain: "folha.uol.com.br", Selectors: SelectorSet{
			Container: ".c-headline, article",
			Title:     ".c-headline__title, h1",
			Author:    ".c-headline__byline",
			Date:      "time",
			Content:   ".c-news__body p",
			Link:      ".c-headline__url",
		}},

		// Tech
		{Domain: "techcrunch.com", Selectors: SelectorSet{
			Container: ".post-block, article",
			Title:     ".post-block__title, h1",
			Author:    ".river-byline__authors",
			Date:      "time",
			Content:   ".article-content p",
			Link:      ".post-block__title__link",
		}},
		{Domain: "theverge.com", Selectors: SelectorSet{
			Container: ".duet--content-cards--content-card, article",
			Title:     "h2, h1",
			Author:    ".duet--authors--name",
			Date:      "time",
			Content:   ".duet--article--article-body-component p",
			Link:      "a[href]",
		}},
	}
}
