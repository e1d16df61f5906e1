// Package slog provides logging decorators for harvest interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/mkowal/harvest"
)

// Ensure LoggingResolver implements harvest.SelectorResolver.
var _ harvest.SelectorResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a SelectorResolver with debug logging for selector
// resolution. It reports whether a registered template or heuristic
// detection served the page.
type LoggingResolver struct {
	next      harvest.SelectorResolver
	templates *harvest.TemplateRegistry
	logger    *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver. The registry is consulted
// only to label the resolution source in logs.
func NewLoggingResolver(next harvest.SelectorResolver, templates *harvest.TemplateRegistry, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, templates: templates, logger: logger}
}

// Resolve logs the resolution source and delegates to the wrapped resolver.
func (r *LoggingResolver) Resolve(pageURL, html string) harvest.SelectorSet {
	begin := time.Now()
	set := r.next.Resolve(pageURL, html)

	domain := harvest.DomainKey(pageURL)
	source := "heuristic"
	if _, ok := r.templates.Lookup(domain); ok {
		source = "template"
	}

	r.logger.Info("selector resolution",
		"domain", domain,
		"source", source,
		"container", set.Container,
		"duration", time.Since(begin),
	)
	return set
}
