// Package discord serves documentation entries to Discord channels.
//
// A Handler turns chat messages into lookups against a
// nanodocs.EntryService and answers with embeds. Bot owns the gateway
// session and feeds it messages.
package discord
