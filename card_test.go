package nanodocs_test

import (
	"testing"

	"github.com/fwojciec/nanodocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcSource(t *testing.T) nanodocs.Source {
	t.Helper()
	src, ok := nanodocs.DefaultCatalog().Source(nanodocs.CategoryRPC)
	require.True(t, ok)
	return src
}

func TestNewCard(t *testing.T) {
	t.Parallel()

	t.Run("copies entry and source metadata", func(t *testing.T) {
		t.Parallel()

		src := rpcSource(t)
		entry := &nanodocs.Entry{
			Key:         "account_info",
			Title:       "account_info",
			Description: "Returns frontier, open block, change representative block, balance.",
			Fields:      []nanodocs.Field{{Label: "NOTE", Value: "Requires a node."}},
			SourceURL:   src.Anchor("account_info"),
		}

		card := nanodocs.NewCard(src, entry)

		assert.Equal(t, "account_info", card.Title)
		assert.Equal(t, entry.Description, card.Description)
		assert.Equal(t, "https://docs.nano.org/commands/rpc-protocol/#account_info", card.URL)
		assert.Equal(t, nanodocs.DefaultCardColor, card.Color)
		assert.Equal(t, "Nano RPC docs", card.Author.Name)
		assert.Equal(t, nanodocs.DefaultRPCURL, card.Author.URL)
		assert.Equal(t, nanodocs.DefaultIconURL, card.Author.IconURL)
		assert.Equal(t, entry.Fields, card.Fields)
	})

	t.Run("does not share the field slice with the entry", func(t *testing.T) {
		t.Parallel()

		entry := &nanodocs.Entry{Fields: []nanodocs.Field{{Label: "WARNING", Value: "x"}}}

		card := nanodocs.NewCard(rpcSource(t), entry)
		card.Fields[0].Value = "changed"

		assert.Equal(t, "x", entry.Fields[0].Value)
	})
}

func TestFormatCard(t *testing.T) {
	t.Parallel()

	t.Run("formats title, link, description and fields", func(t *testing.T) {
		t.Parallel()

		card := &nanodocs.Card{
			Title:       "block_count",
			URL:         "https://docs.nano.org/commands/rpc-protocol/#block_count",
			Description: "Reports the number of blocks in the ledger.",
			Author:      nanodocs.CardAuthor{Name: "Nano RPC docs"},
			Fields:      []nanodocs.Field{{Label: "NOTE", Value: "Counts unchecked blocks too."}},
		}

		expected := "[Nano RPC docs] block_count\n" +
			"https://docs.nano.org/commands/rpc-protocol/#block_count\n" +
			"\nReports the number of blocks in the ledger.\n" +
			"\nNOTE: Counts unchecked blocks too."
		assert.Equal(t, expected, nanodocs.FormatCard(card))
	})

	t.Run("omits empty parts", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "stop", nanodocs.FormatCard(&nanodocs.Card{Title: "stop"}))
	})

	t.Run("returns empty string for nil card", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, nanodocs.FormatCard(nil))
	})
}

func TestNotFoundMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"Hmm, I can't find that, maybe look at https://docs.nano.org/commands/rpc-protocol/",
		nanodocs.NotFoundMessage(rpcSource(t)),
	)
}
