package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/nanodocs"
	"github.com/fwojciec/nanodocs/discord"
)

const defaultThumbnailURL = discord.DefaultThumbnailURL

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Catalog nanodocs.Catalog
	Entries nanodocs.EntryService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	TTL          time.Duration `name:"ttl" default:"1h" env:"NANODOCS_TTL" help:"How long fetched documentation is served before a refresh"`
	CacheSize    int           `default:"0" env:"NANODOCS_CACHE_SIZE" help:"Maximum cached pages (0 = one per source)"`
	FetchTimeout time.Duration `default:"10s" env:"NANODOCS_FETCH_TIMEOUT" help:"Timeout for fetching a documentation page"`
	Browser      bool          `env:"NANODOCS_BROWSER" help:"Fetch pages with headless Chrome"`
	RPCURL       string        `name:"rpc-url" default:"${rpc_url}" env:"NANODOCS_RPC_URL" help:"RPC protocol page"`
	GlossaryURL  string        `name:"glossary-url" default:"${glossary_url}" env:"NANODOCS_GLOSSARY_URL" help:"Glossary page"`
	LogLevel     string        `default:"info" enum:"debug,info,warn,error" env:"NANODOCS_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`

	Run    RunCmd    `cmd:"" help:"Connect to Discord and answer documentation questions"`
	Lookup LookupCmd `cmd:"" help:"Look up a documentation entry and print it"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Token        string  `env:"TOKEN" help:"Discord bot token"`
	Prefix       string  `default:"#" env:"NANODOCS_PREFIX" help:"Command prefix"`
	Status       string  `default:"RPC COMMANDS" env:"NANODOCS_STATUS" help:"Presence shown next to the bot"`
	ThumbnailURL string  `name:"thumbnail-url" default:"${thumbnail_url}" env:"NANODOCS_THUMBNAIL_URL" help:"Thumbnail attached to every card"`
	ReplyRate    float64 `default:"0.2" env:"NANODOCS_REPLY_RATE" help:"Replies per second to pasted links, per channel"`
	ReplyBurst   int     `default:"3" env:"NANODOCS_REPLY_BURST" help:"Burst of replies to pasted links, per channel"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Category string   `arg:"" help:"Documentation category (rpc, glossary)"`
	Query    []string `arg:"" optional:"" help:"RPC command name or glossary term"`
}
