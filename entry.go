package nanodocs

import (
	"context"
	"time"
)

// Field is a labeled callout attached to an entry, such as a note or warning.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Entry is one documented item: an RPC command or a glossary term.
type Entry struct {
	Key         string  `json:"key"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Fields      []Field `json:"fields,omitempty"`
	SourceURL   string  `json:"sourceUrl"`
}

// EntrySet holds every entry parsed from one listing page.
// An EntrySet is built once by a parse pass and is not modified after it
// has been handed to a cache, so it is safe for concurrent readers.
type EntrySet struct {
	Category  Category  `json:"category"`
	FetchedAt time.Time `json:"fetchedAt"`

	// Digest is a hash of the fetched document body.
	Digest string `json:"digest"`

	entries map[string]*Entry
	order   []string
}

// NewEntrySet builds an EntrySet from entries in document order.
// When two entries share a key the later one wins but keeps the position of
// the first.
func NewEntrySet(category Category, entries []*Entry) *EntrySet {
	s := &EntrySet{
		Category: category,
		entries:  make(map[string]*Entry, len(entries)),
		order:    make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if _, ok := s.entries[e.Key]; !ok {
			s.order = append(s.order, e.Key)
		}
		s.entries[e.Key] = e
	}
	return s
}

// Find returns the entry stored under key.
func (s *EntrySet) Find(key string) (*Entry, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.entries[key]
	return e, ok
}

// Entries returns all entries in document order.
func (s *EntrySet) Entries() []*Entry {
	if s == nil {
		return nil
	}
	out := make([]*Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}

// Keys returns all entry keys in document order.
func (s *EntrySet) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Len returns the number of entries.
func (s *EntrySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// CacheStatus reports how an entry set was obtained.
type CacheStatus int

// Cache statuses.
const (
	// CacheHit means a fresh cached set was served without fetching.
	CacheHit CacheStatus = iota

	// CacheRefreshed means the set was fetched and parsed for this call.
	CacheRefreshed

	// CacheFailed means the set was missing or stale and the refresh failed.
	CacheFailed
)

func (s CacheStatus) String() string {
	switch s {
	case CacheHit:
		return "hit"
	case CacheRefreshed:
		return "refreshed"
	case CacheFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EntrySetLoader fetches and parses the listing page of a source.
type EntrySetLoader interface {
	// Load returns a freshly built EntrySet.
	// Returns EFETCH if the page cannot be retrieved and EPARSE if it holds
	// no entries.
	Load(ctx context.Context, source Source) (*EntrySet, error)
}

// EntryService serves entries through a time-bounded cache.
type EntryService interface {
	// FindEntrySet returns the current entry set of a category, refreshing
	// it when the cached copy is missing or expired.
	// Returns EINVALID for an unknown category.
	FindEntrySet(ctx context.Context, category Category) (*EntrySet, CacheStatus, error)

	// FindEntry looks up a single entry.
	// Returns ENOTFOUND if the key is not in the current entry set.
	FindEntry(ctx context.Context, category Category, key string) (*Entry, error)
}
