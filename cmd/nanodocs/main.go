package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/nanodocs"
	"github.com/fwojciec/nanodocs/goquery"
	nanohttp "github.com/fwojciec/nanodocs/http"
	"github.com/fwojciec/nanodocs/lru"
	"github.com/fwojciec/nanodocs/rod"
	"github.com/fwojciec/nanodocs/scrape"
	nanoslog "github.com/fwojciec/nanodocs/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFiles are loaded into the environment before flags are parsed.
	// Missing files are skipped.
	EnvFiles []string

	// Fetcher used by the scraper. Closed when Run returns.
	Fetcher nanodocs.Fetcher

	// Entries replaces the cache stack for end-to-end testing.
	Entries nanodocs.EntryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFiles: []string{".env"},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := loadEnv(m.EnvFiles); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("nanodocs"),
		kong.Description("Discord bot answering questions from the Nano documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"rpc_url":       nanodocs.DefaultRPCURL,
			"glossary_url":  nanodocs.DefaultGlossaryURL,
			"thumbnail_url": defaultThumbnailURL,
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'nanodocs --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger, err = newLogger(stderr, cli.LogLevel)
	if err != nil {
		return err
	}

	deps.Catalog = nanodocs.DefaultCatalog().
		WithURL(nanodocs.CategoryRPC, cli.RPCURL).
		WithURL(nanodocs.CategoryGlossary, cli.GlossaryURL)
	if err := deps.Catalog.Validate(); err != nil {
		return err
	}

	if m.Entries == nil {
		if m.Fetcher == nil {
			if m.Fetcher, err = newFetcher(cli, deps.Catalog); err != nil {
				return err
			}
		}
		defer m.Close()

		if m.Entries, err = newEntryService(cli, deps.Catalog, m.Fetcher, deps.Logger); err != nil {
			return err
		}
	}
	deps.Entries = m.Entries

	return kongCtx.Run(deps)
}

// newFetcher returns the plain HTTP fetcher, or headless Chrome with --browser.
// The browser waits until an entry heading of any source has rendered.
func newFetcher(cli *CLI, catalog nanodocs.Catalog) (nanodocs.Fetcher, error) {
	if cli.Browser {
		f, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.FetchTimeout),
			rod.WithWaitSelector(headingSelector(catalog)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	}
	return nanohttp.NewFetcher(nanohttp.WithTimeout(cli.FetchTimeout)), nil
}

// headingSelector matches identified entry headings of every source,
// e.g. "h3[id], h4[id]".
func headingSelector(catalog nanodocs.Catalog) string {
	seen := make(map[string]bool)
	var parts []string
	for _, src := range catalog {
		sel := src.HeadingTag() + "[id]"
		if !seen[sel] {
			seen[sel] = true
			parts = append(parts, sel)
		}
	}
	return strings.Join(parts, ", ")
}

// newEntryService wires fetcher -> scraper -> cache, with logging around
// every layer.
func newEntryService(cli *CLI, catalog nanodocs.Catalog, fetcher nanodocs.Fetcher, logger *slog.Logger) (nanodocs.EntryService, error) {
	scraper := &scrape.Scraper{
		Fetcher: nanoslog.NewLoggingFetcher(fetcher, logger),
		Parser:  goquery.NewParser(),
		Timeout: cli.FetchTimeout,
	}

	opts := []lru.Option{lru.WithTTL(cli.TTL)}
	if cli.CacheSize > 0 {
		opts = append(opts, lru.WithCapacity(cli.CacheSize))
	}
	cache, err := lru.NewCache(nanoslog.NewLoggingLoader(scraper, logger), catalog, opts...)
	if err != nil {
		return nil, err
	}
	return nanoslog.NewLoggingEntryService(cache, logger), nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nanodocs.Errorf(nanodocs.EINVALID, "invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// loadEnv loads KEY=value files into the process environment without
// overriding variables that are already set.
func loadEnv(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
