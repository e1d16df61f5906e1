package main

import (
	"context"
	"io"
	"time"

	"github.com/mkowal/harvest"
	"github.com/mkowal/harvest/scrape"
	"github.com/mkowal/harvest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Records harvest.RecordService
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape ScrapeCmd `cmd:"" help:"Scrape pages and persist extracted records"`
	List   ListCmd   `cmd:"" help:"List stored records, newest first"`
	Export ExportCmd `cmd:"" help:"Export stored records to CSV or JSON"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string      `arg:"" name:"url" help:"Page URLs to scrape"`
	MaxItems    int           `short:"n" help:"Maximum records to extract per page"`
	Static      bool          `help:"Fetch over plain HTTP without a browser (static sites only)"`
	NoScroll    bool          `help:"Skip scrolling to the bottom of each page"`
	ScrollPause time.Duration `default:"1s" help:"Pause between scrolls"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent page limit"`
	Timeout     time.Duration `default:"90s" help:"Per-run fetch timeout"`
	Output      string        `short:"o" help:"Also export the extracted batch to this file"`
	Format      string        `default:"csv" enum:"csv,json" help:"Export file format"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int  `short:"l" default:"20" help:"Maximum records to show (0 for all)"`
	Full  bool `help:"Show record content"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `arg:"" help:"Output file path"`
	Format string `default:"csv" enum:"csv,json" help:"Export file format"`
	Limit  int    `short:"l" help:"Maximum records to export (0 for all)"`
}
