package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mkowal/harvest"
	"github.com/mkowal/harvest/goquery"
	"github.com/mkowal/harvest/http"
	"github.com/mkowal/harvest/rod"
	"github.com/mkowal/harvest/scrape"
	harvestslog "github.com/mkowal/harvest/slog"
	"github.com/mkowal/harvest/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	RecordService harvest.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HARVEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if os.Getenv("HARVEST_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Wire core services into dependencies
	m.RecordService = sqlite.NewRecordService(m.DB)
	deps.DB = m.DB
	deps.Records = harvestslog.NewLoggingRecordService(m.RecordService, logger)

	// Wire command-specific dependencies based on command
	if cmd == "scrape" {
		var fetcher harvest.Fetcher
		if cli.Scrape.Static {
			fetcher = http.NewFetcher()
		} else {
			var fetcherOpts []rod.Option
			if !cli.Scrape.NoScroll {
				fetcherOpts = append(fetcherOpts, rod.WithScroll(cli.Scrape.ScrollPause, 0))
			}

			browser, err := rod.NewFetcher(fetcherOpts...)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browser
		}
		defer fetcher.Close()

		templates := harvest.NewTemplateRegistry(harvest.DefaultTemplates())
		resolver := goquery.NewResolver(templates, goquery.NewDetector())

		deps.Scraper = &scrape.Scraper{
			Fetcher:     rod.NewLoggingFetcher(fetcher, logger),
			Resolver:    harvestslog.NewLoggingResolver(resolver, templates, logger),
			Extractor:   goquery.NewExtractor(),
			Records:     deps.Records,
			RateLimiter: scrape.NewDomainLimiter(1.0),
			Concurrency: cli.Scrape.Concurrency,
			MaxItems:    cli.Scrape.MaxItems,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("HARVEST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "harvest.db"
	}
	dir := filepath.Join(home, ".harvest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "harvest.db")
}
