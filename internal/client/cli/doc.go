// Package cli provides the interactive moviedb command-line client.
//
// It wires configuration, the local store, the session and watchlist
// services and the movie catalog into an interactive REPL. Typical flow:
// register or log in, browse the default search, page through results and
// keep a personal watchlist.
//
// Key features:
//   - Register / Login / Logout against local accounts
//   - Search the catalog with paging, show full details
//   - Add, remove, toggle, list and clear watchlist entries
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
