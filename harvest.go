// Package harvest extracts structured records (title, author, date, content,
// link) from rendered web pages without per-site hand-coded scrapers. Known
// sites are matched against a template registry of CSS selector sets; unknown
// sites fall back to heuristic selector detection. Extracted records are
// persisted with link-based deduplication.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, goquery/).
package harvest
