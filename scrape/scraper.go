// Package scrape turns documentation listing pages into entry sets.
// It coordinates fetching and parsing of a single source.
package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/nanodocs"
)

// DefaultTimeout bounds a whole fetch when no timeout is configured.
const DefaultTimeout = 15 * time.Second

var _ nanodocs.EntrySetLoader = (*Scraper)(nil)

// Scraper fetches a source's listing page and parses it into an EntrySet.
type Scraper struct {
	Fetcher nanodocs.Fetcher
	Parser  nanodocs.Parser

	// Timeout bounds the fetch. Zero means DefaultTimeout.
	Timeout time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Load fetches and parses the listing page of source.
// The returned set is stamped with the fetch time and a digest of the page.
func (s *Scraper) Load(ctx context.Context, source nanodocs.Source) (*nanodocs.EntrySet, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	html, err := s.Fetcher.Fetch(ctx, source.URL)
	if err != nil {
		return nil, nanodocs.Wrapf(err, nanodocs.EFETCH, "fetch %s: %v", source.URL, err)
	}

	set, err := s.Parser.Parse(html, source)
	if err != nil {
		if nanodocs.ErrorCode(err) == nanodocs.EPARSE {
			return nil, err
		}
		return nil, nanodocs.Wrapf(err, nanodocs.EPARSE, "parse %s: %v", source.URL, err)
	}

	set.FetchedAt = s.now()
	set.Digest = ComputeHash(html)
	return set, nil
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
