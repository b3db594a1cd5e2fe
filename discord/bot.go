package discord

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/fwojciec/nanodocs"
)

// DefaultStatus is the "playing" status shown next to the bot.
const DefaultStatus = "RPC COMMANDS"

// Bot connects a Handler to a Discord gateway session.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	status  string
	logger  *slog.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// BotOption configures a Bot.
type BotOption func(*Bot)

// WithStatus sets the game status announced once the session is ready.
func WithStatus(status string) BotOption {
	return func(b *Bot) {
		b.status = status
	}
}

// WithLogger sets the logger for connection events.
func WithLogger(logger *slog.Logger) BotOption {
	return func(b *Bot) {
		b.logger = logger
	}
}

// NewBot creates a bot authenticated with token. The session is not opened
// until Open is called.
func NewBot(token string, handler *Handler, opts ...BotOption) (*Bot, error) {
	if token == "" {
		return nil, nanodocs.Errorf(nanodocs.EINVALID, "discord token required")
	}
	if handler == nil {
		return nil, nanodocs.Errorf(nanodocs.EINVALID, "message handler required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, nanodocs.Errorf(nanodocs.EINVALID, "create discord session: %v", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	session.SyncEvents = false

	b := &Bot{
		session: session,
		handler: handler,
		status:  DefaultStatus,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Open registers event handlers and connects to the gateway. Message
// handling stops when ctx is done or Close is called.
func (b *Bot) Open(ctx context.Context) error {
	b.ctx, b.cancel = context.WithCancel(ctx)

	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)

	if err := b.session.Open(); err != nil {
		b.cancel()
		return nanodocs.Errorf(nanodocs.EINTERNAL, "open discord session: %v", err)
	}
	return nil
}

// Close disconnects from the gateway. It is safe to call more than once.
func (b *Bot) Close() error {
	var err error
	b.closeOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		err = b.session.Close()
	})
	return err
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		b.logger.Info("connected", "user", r.User.String(), "guilds", len(r.Guilds))
	}
	if b.status == "" {
		return
	}
	if err := s.UpdateGameStatus(0, b.status); err != nil {
		b.logger.Warn("update status", "status", b.status, "err", err)
	}
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil {
		return
	}
	var selfID string
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	ctx := b.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}
	b.handler.HandleMessage(ctx, s, m.Message, selfID)
}
