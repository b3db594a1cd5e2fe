package discord_test

import (
	"testing"

	"github.com/fwojciec/nanodocs/discord"
	"github.com/stretchr/testify/assert"
)

func TestChannelLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows burst then blocks", func(t *testing.T) {
		t.Parallel()

		l := discord.NewChannelLimiter(0, 2)

		assert.True(t, l.Allow("a"))
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
	})

	t.Run("channels have separate buckets", func(t *testing.T) {
		t.Parallel()

		l := discord.NewChannelLimiter(0, 1)

		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		assert.True(t, l.Allow("b"))
	})

	t.Run("burst below one is raised", func(t *testing.T) {
		t.Parallel()

		l := discord.NewChannelLimiter(0, 0)

		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
	})

	t.Run("nil limiter allows everything", func(t *testing.T) {
		t.Parallel()

		var l *discord.ChannelLimiter
		for range 10 {
			assert.True(t, l.Allow("a"))
		}
	})
}
