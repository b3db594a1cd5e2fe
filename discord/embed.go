package discord

import (
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/fwojciec/nanodocs"
)

// Discord embed limits.
const (
	maxTitleLen       = 256
	maxDescriptionLen = 4096
	maxFieldNameLen   = 256
	maxFieldValueLen  = 1024
	maxFields         = 25

	// maxEmbedLen caps the sum of title, description, author name and all
	// field names and values.
	maxEmbedLen = 6000
)

// minDescriptionLen is kept of a long description before fields are cut.
const minDescriptionLen = 1024

// minFieldValueLen is the shortest value a trailing field is cut to before
// it is dropped.
const minFieldValueLen = 64

// DefaultThumbnailURL is the bot avatar shown on every card.
const DefaultThumbnailURL = "https://cdn.discordapp.com/avatars/636508303031271444/8a0cc1a53cdc48b726dcb999f707a90d.png?size=1024"

// emptyValue stands in for empty field values, which Discord rejects.
const emptyValue = "\u200b"

// NewEmbed renders a card as a Discord embed, truncating text to the limits
// Discord accepts.
func NewEmbed(card *nanodocs.Card) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       truncate(card.Title, maxTitleLen),
		Description: truncate(card.Description, maxDescriptionLen),
		URL:         card.URL,
		Color:       card.Color,
	}

	if card.Author.Name != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    truncate(card.Author.Name, maxTitleLen),
			URL:     card.Author.URL,
			IconURL: card.Author.IconURL,
		}
	}

	if card.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: card.ThumbnailURL}
	}

	for i, f := range card.Fields {
		if i == maxFields {
			break
		}
		value := truncate(f.Value, maxFieldValueLen)
		if value == "" {
			value = emptyValue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   truncate(f.Label, maxFieldNameLen),
			Value:  value,
			Inline: true,
		})
	}

	fitEmbed(embed)
	return embed
}

// fitEmbed shortens the description, then trailing fields, until the embed
// is within maxEmbedLen.
func fitEmbed(embed *discordgo.MessageEmbed) {
	over := embedLen(embed) - maxEmbedLen
	if over <= 0 {
		return
	}

	descLen := utf8.RuneCountInString(embed.Description)
	if keep := max(descLen-over, min(descLen, minDescriptionLen)); keep < descLen {
		embed.Description = truncate(embed.Description, keep)
		over -= descLen - keep
	}

	for over > 0 && len(embed.Fields) > 0 {
		last := embed.Fields[len(embed.Fields)-1]
		valueLen := utf8.RuneCountInString(last.Value)
		if keep := valueLen - over; keep >= minFieldValueLen {
			last.Value = truncate(last.Value, keep)
			return
		}
		embed.Fields = embed.Fields[:len(embed.Fields)-1]
		over -= utf8.RuneCountInString(last.Name) + valueLen
	}
}

// embedLen counts the characters Discord holds against maxEmbedLen.
func embedLen(embed *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(embed.Title) + utf8.RuneCountInString(embed.Description)
	if embed.Author != nil {
		n += utf8.RuneCountInString(embed.Author.Name)
	}
	if embed.Footer != nil {
		n += utf8.RuneCountInString(embed.Footer.Text)
	}
	for _, f := range embed.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	return n
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n < 1 {
		return ""
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
