package nanodocs

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Category identifies a documentation page the bot knows how to scrape.
type Category string

// Supported documentation categories.
const (
	CategoryRPC      Category = "rpc"
	CategoryGlossary Category = "glossary"
)

// KeyStyle controls how heading identifiers and user queries become entry keys.
type KeyStyle int

// Key styles.
const (
	// KeyVerbatim keeps heading ids as they are and looks up the first
	// query word unchanged. RPC command names are case sensitive upstream.
	KeyVerbatim KeyStyle = iota

	// KeySlug lowercases heading ids and turns a free-text query into a
	// hyphenated slug ("Epoch Block" becomes "epoch-block").
	KeySlug
)

// Default docs.nano.org locations.
const (
	DefaultRPCURL      = "https://docs.nano.org/commands/rpc-protocol/"
	DefaultGlossaryURL = "https://docs.nano.org/glossary/"
	DefaultIconURL     = "https://docs.nano.org/images/favicon.png"
)

// Source describes where a category's entries come from and how the page
// is structured.
type Source struct {
	Category Category `json:"category"`

	// Name is shown as the card author, e.g. "Nano RPC docs".
	Name string `json:"name"`

	// Command is the chat command that queries this source.
	Command string `json:"command"`

	// URL is the listing page that holds every entry of the category.
	URL string `json:"url"`

	// HeadingLevel is the heading level (1-6) that delimits entries.
	HeadingLevel int `json:"headingLevel"`

	KeyStyle KeyStyle `json:"keyStyle"`
	IconURL  string   `json:"iconUrl"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Category == "" {
		return Errorf(EINVALID, "source category required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "source URL required for %s", s.Category)
	}
	if _, err := url.Parse(s.URL); err != nil {
		return Errorf(EINVALID, "invalid source URL %q: %v", s.URL, err)
	}
	if s.HeadingLevel < 1 || s.HeadingLevel > 6 {
		return Errorf(EINVALID, "heading level must be between 1 and 6, got %d", s.HeadingLevel)
	}
	return nil
}

// HeadingTag returns the HTML tag name of the entry headings, e.g. "h3".
func (s Source) HeadingTag() string {
	return "h" + strconv.Itoa(s.HeadingLevel)
}

// EntryKey returns the lookup key for a heading id.
func (s Source) EntryKey(id string) string {
	if s.KeyStyle == KeySlug {
		return strings.ToLower(id)
	}
	return id
}

// QueryKey turns the words of a chat query into a lookup key.
// Returns an empty string when there are no words.
func (s Source) QueryKey(words []string) string {
	if len(words) == 0 {
		return ""
	}
	if s.KeyStyle == KeySlug {
		phrase := strings.ToLower(strings.Join(words, " "))
		return strings.ReplaceAll(phrase, " ", "-")
	}
	return words[0]
}

// Anchor returns the link to a single entry on the listing page.
func (s Source) Anchor(id string) string {
	return s.URL + "#" + id
}

// Catalog is the ordered set of sources the bot serves.
type Catalog []Source

// DefaultCatalog returns the RPC protocol and glossary sources of docs.nano.org.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Category:     CategoryRPC,
			Name:         "Nano RPC docs",
			Command:      "rpc",
			URL:          DefaultRPCURL,
			HeadingLevel: 3,
			KeyStyle:     KeyVerbatim,
			IconURL:      DefaultIconURL,
		},
		{
			Category:     CategoryGlossary,
			Name:         "Nano glossary",
			Command:      "glossary",
			URL:          DefaultGlossaryURL,
			HeadingLevel: 4,
			KeyStyle:     KeySlug,
			IconURL:      DefaultIconURL,
		},
	}
}

// Validate returns an error if any source is invalid or a category repeats.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return Errorf(EINVALID, "catalog has no sources")
	}
	seen := make(map[Category]bool, len(c))
	for i := range c {
		if err := c[i].Validate(); err != nil {
			return err
		}
		if seen[c[i].Category] {
			return Errorf(EINVALID, "duplicate source for category %s", c[i].Category)
		}
		seen[c[i].Category] = true
	}
	return nil
}

// Source returns the source for a category.
func (c Catalog) Source(category Category) (Source, bool) {
	for _, s := range c {
		if s.Category == category {
			return s, true
		}
	}
	return Source{}, false
}

// SourceForCommand returns the source queried by a chat command.
// Command names are matched case-insensitively.
func (c Catalog) SourceForCommand(command string) (Source, bool) {
	for _, s := range c {
		if strings.EqualFold(s.Command, command) {
			return s, true
		}
	}
	return Source{}, false
}

// WithURL returns a copy of the catalog with the URL of one category replaced.
// An empty URL leaves the catalog unchanged.
func (c Catalog) WithURL(category Category, rawURL string) Catalog {
	out := make(Catalog, len(c))
	copy(out, c)
	if rawURL == "" {
		return out
	}
	for i := range out {
		if out[i].Category == category {
			out[i].URL = rawURL
		}
	}
	return out
}

var linkRe = regexp.MustCompile(`https?://[^\s<>()]+`)

// linkTrailer holds punctuation that ends a sentence rather than a link.
const linkTrailer = ".,;:!?'\""

// MatchLink scans free text for a link to an entry of a known listing page,
// e.g. "https://docs.nano.org/commands/rpc-protocol/#account_info".
// It returns the first matching source together with the entry key derived
// from the link fragment.
func (c Catalog) MatchLink(text string) (Source, string, bool) {
	for _, raw := range linkRe.FindAllString(text, -1) {
		u, err := url.Parse(strings.TrimRight(raw, linkTrailer))
		if err != nil || u.Fragment == "" {
			continue
		}
		for _, s := range c {
			base, err := url.Parse(s.URL)
			if err != nil {
				continue
			}
			if !strings.EqualFold(u.Host, base.Host) {
				continue
			}
			if strings.TrimSuffix(u.Path, "/") != strings.TrimSuffix(base.Path, "/") {
				continue
			}
			return s, s.EntryKey(u.Fragment), true
		}
	}
	return Source{}, "", false
}
