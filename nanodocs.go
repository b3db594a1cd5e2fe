// Package nanodocs provides a chat bot that answers questions about the Nano
// documentation. It scrapes the RPC protocol and glossary pages, keeps the
// parsed entries in a short-lived cache, and replies to chat commands with
// rich cards.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, discord/, lru/).
package nanodocs
