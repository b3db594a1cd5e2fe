package nanodocs

import "context"

// Fetcher retrieves the HTML of documentation pages.
type Fetcher interface {
	// Fetch downloads the URL and returns the document body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
