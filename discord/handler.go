package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fwojciec/nanodocs"
	"github.com/google/uuid"
)

// DefaultPrefix starts every chat command, as in "#rpc account_info".
const DefaultPrefix = "#"

// DefaultRequestTimeout bounds the handling of a single message.
const DefaultRequestTimeout = 30 * time.Second

// Sender posts replies to a channel. *discordgo.Session satisfies it.
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Sender = (*discordgo.Session)(nil)

// Handler answers chat messages: prefixed commands and pasted links to
// documentation entries.
type Handler struct {
	Entries nanodocs.EntryService
	Catalog nanodocs.Catalog

	// Prefix starts commands. Defaults to DefaultPrefix.
	Prefix string

	// ThumbnailURL is attached to every card when set.
	ThumbnailURL string

	// Limiter throttles replies to pasted links. Nil means no throttling.
	Limiter *ChannelLimiter

	// Timeout bounds one message. Defaults to DefaultRequestTimeout.
	Timeout time.Duration

	Logger *slog.Logger
}

// HandleMessage answers m if it is a command or holds a link to a known
// entry. Messages from selfID and from other bots are ignored, as is
// everything that matches neither form.
func (h *Handler) HandleMessage(ctx context.Context, s Sender, m *discordgo.Message, selfID string) {
	if m == nil || m.Author == nil || m.Author.ID == selfID || m.Author.Bot {
		return
	}

	content := strings.TrimSpace(m.Content)
	if content == "" {
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := h.logger().With(
		"request", uuid.NewString(),
		"channel", m.ChannelID,
		"author", m.Author.ID,
	)

	prefix := h.prefix()
	if strings.HasPrefix(content, prefix) {
		if h.handleCommand(ctx, s, m.ChannelID, strings.Fields(content[len(prefix):]), logger) {
			return
		}
	}

	h.handleLink(ctx, s, m.ChannelID, content, logger)
}

// handleCommand runs a prefixed command. It returns false when the command
// is not one of ours.
func (h *Handler) handleCommand(ctx context.Context, s Sender, channelID string, words []string, logger *slog.Logger) bool {
	if len(words) == 0 {
		return false
	}
	name, args := strings.ToLower(words[0]), words[1:]

	if name == "help" {
		logger.Info("command", "name", name)
		h.send(ctx, s, channelID, h.helpText(), logger)
		return true
	}

	source, ok := h.Catalog.SourceForCommand(name)
	if !ok {
		return false
	}

	key := source.QueryKey(args)
	logger.Info("command", "name", name, "key", key)
	if key == "" {
		h.send(ctx, s, channelID, missingArgMessage(source), logger)
		return true
	}

	entry, err := h.Entries.FindEntry(ctx, source.Category, key)
	switch nanodocs.ErrorCode(err) {
	case "":
		h.sendCard(ctx, s, channelID, source, entry, logger)
	case nanodocs.ENOTFOUND:
		h.send(ctx, s, channelID, nanodocs.NotFoundMessage(source), logger)
	default:
		logger.Error("lookup failed", "category", source.Category, "key", key, "err", err)
		h.send(ctx, s, channelID, nanodocs.UnavailableMessage(source), logger)
	}
	return true
}

// handleLink replies with the card of an entry whose link was pasted.
// Anything else, including unknown entries, is ignored silently.
func (h *Handler) handleLink(ctx context.Context, s Sender, channelID, content string, logger *slog.Logger) {
	source, key, ok := h.Catalog.MatchLink(content)
	if !ok {
		return
	}

	entry, err := h.Entries.FindEntry(ctx, source.Category, key)
	if err != nil {
		if nanodocs.ErrorCode(err) == nanodocs.ENOTFOUND {
			logger.Debug("linked entry not found", "category", source.Category, "key", key)
		} else {
			logger.Warn("linked entry lookup failed", "category", source.Category, "key", key, "err", err)
		}
		return
	}

	if !h.Limiter.Allow(channelID) {
		logger.Debug("link reply throttled", "category", source.Category, "key", key)
		return
	}

	logger.Info("link", "category", source.Category, "key", key)
	h.sendCard(ctx, s, channelID, source, entry, logger)
}

func (h *Handler) sendCard(ctx context.Context, s Sender, channelID string, source nanodocs.Source, entry *nanodocs.Entry, logger *slog.Logger) {
	card := nanodocs.NewCard(source, entry)
	card.ThumbnailURL = h.ThumbnailURL
	if _, err := s.ChannelMessageSendEmbed(channelID, NewEmbed(card), discordgo.WithContext(ctx)); err != nil {
		logger.Error("send embed", "title", card.Title, "err", err)
	}
}

func (h *Handler) send(ctx context.Context, s Sender, channelID, text string, logger *slog.Logger) {
	if _, err := s.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		logger.Error("send message", "err", err)
	}
}

func (h *Handler) helpText() string {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, src := range h.Catalog {
		arg := "name"
		if src.KeyStyle == nanodocs.KeySlug {
			arg = "term"
		}
		fmt.Fprintf(&sb, "`%s%s <%s>` look up %s in the %s\n", h.prefix(), src.Command, arg, articleFor(arg), src.Name)
	}
	sb.WriteString("Paste a link to an entry of these pages and I will show it here.")
	return sb.String()
}

func (h *Handler) prefix() string {
	if h.Prefix == "" {
		return DefaultPrefix
	}
	return h.Prefix
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.Logger
}

func missingArgMessage(source nanodocs.Source) string {
	if source.KeyStyle == nanodocs.KeySlug {
		return "Please specify the term you're looking for."
	}
	return "Please specify the command you're looking for."
}

func articleFor(arg string) string {
	if arg == "term" {
		return "a term"
	}
	return "a command"
}
