package nanodocs

import "strings"

// DefaultCardColor is the accent color of entry cards (Nano blue).
const DefaultCardColor = 0x00a0ea

// CardAuthor is the author line shown above a card title.
type CardAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	IconURL string `json:"iconUrl"`
}

// Card is a rich reply describing one entry. The chat layer decides how to
// render it.
type Card struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	URL          string     `json:"url"`
	Color        int        `json:"color"`
	Author       CardAuthor `json:"author"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Fields       []Field    `json:"fields,omitempty"`
}

// NewCard builds the card for an entry of the given source.
func NewCard(source Source, entry *Entry) *Card {
	fields := make([]Field, len(entry.Fields))
	copy(fields, entry.Fields)

	return &Card{
		Title:       entry.Title,
		Description: entry.Description,
		URL:         entry.SourceURL,
		Color:       DefaultCardColor,
		Author: CardAuthor{
			Name:    source.Name,
			URL:     source.URL,
			IconURL: source.IconURL,
		},
		Fields: fields,
	}
}

// FormatCard renders a card as plain text for terminals and logs.
// Fields are printed after the description, one "LABEL: value" per line.
func FormatCard(c *Card) string {
	if c == nil {
		return ""
	}

	var sb strings.Builder
	if c.Author.Name != "" {
		sb.WriteString("[" + c.Author.Name + "] ")
	}
	sb.WriteString(c.Title)
	sb.WriteString("\n")
	if c.URL != "" {
		sb.WriteString(c.URL + "\n")
	}
	if c.Description != "" {
		sb.WriteString("\n" + c.Description + "\n")
	}
	if len(c.Fields) > 0 {
		sb.WriteString("\n")
		for _, f := range c.Fields {
			sb.WriteString(f.Label + ": " + f.Value + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NotFoundMessage is the reply sent when a lookup finds nothing.
func NotFoundMessage(source Source) string {
	return "Hmm, I can't find that, maybe look at " + source.URL
}

// UnavailableMessage is the reply sent when the documentation cannot be fetched.
func UnavailableMessage(source Source) string {
	return "The documentation is unavailable right now, please try again later or visit " + source.URL
}
