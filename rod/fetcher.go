// Package rod provides a headless Chrome implementation of nanodocs.Fetcher
// for documentation pages that need JavaScript to render.
package rod

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/nanodocs"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render, matching the HTTP fetcher.
const DefaultFetchTimeout = 10 * time.Second

var _ nanodocs.Fetcher = (*Fetcher)(nil)

// Fetcher renders documentation pages in a shared headless browser and
// returns the resulting DOM. Each Fetch opens its own tab, so a Fetcher is
// safe for concurrent use.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	timeout      time.Duration
	waitSelector string

	once     sync.Once
	closed   atomic.Bool
	closeErr error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds navigation, rendering and serialization of one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithWaitSelector makes Fetch wait until an element matching selector is
// present before reading the DOM, e.g. "h3[id]" for pages that build their
// entry headings client-side. The wait shares the fetch timeout.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// NewFetcher launches headless Chrome and connects to it.
// It fails when no Chrome or Chromium binary can be found or started.
// Close must be called to stop the browser.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Headless(true).
		Leakless(true).
		Set("disable-dev-shm-usage")
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch opens url in a new tab, waits for the load event (and the wait
// selector when configured) and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", nanodocs.Errorf(nanodocs.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	tab, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening tab: %w", err)
	}
	defer tab.Close()

	tab = tab.Context(ctx)
	if err := tab.Navigate(url); err != nil {
		return "", err
	}
	if err := tab.WaitLoad(); err != nil {
		return "", err
	}
	if f.waitSelector != "" {
		if _, err := tab.Element(f.waitSelector); err != nil {
			return "", fmt.Errorf("waiting for %q: %w", f.waitSelector, err)
		}
	}

	return tab.HTML()
}

// Close stops the browser. Calling it again returns the first result.
func (f *Fetcher) Close() error {
	f.once.Do(func() {
		f.closed.Store(true)
		f.closeErr = f.browser.Close()
		f.launcher.Kill()
	})
	return f.closeErr
}

// LauncherPID returns the process id of the launched browser.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}
