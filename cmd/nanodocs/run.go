package main

import (
	"github.com/fwojciec/nanodocs/discord"
)

// Run executes the run command. It blocks until the context is cancelled.
func (c *RunCmd) Run(deps *Dependencies) error {
	handler := &discord.Handler{
		Entries:      deps.Entries,
		Catalog:      deps.Catalog,
		Prefix:       c.Prefix,
		ThumbnailURL: c.ThumbnailURL,
		Limiter:      discord.NewChannelLimiter(c.ReplyRate, c.ReplyBurst),
		Logger:       deps.Logger,
	}

	bot, err := discord.NewBot(c.Token, handler,
		discord.WithStatus(c.Status),
		discord.WithLogger(deps.Logger),
	)
	if err != nil {
		return err
	}

	if err := bot.Open(deps.Ctx); err != nil {
		return err
	}
	defer bot.Close()

	deps.Logger.Info("bot running", "prefix", c.Prefix, "sources", len(deps.Catalog))
	<-deps.Ctx.Done()
	deps.Logger.Info("shutting down")

	return nil
}
