// Package cli provides the interactive ledgersync banking client.
//
// It wires configuration, the local SQLite store, the gRPC document client
// and the synced repositories behind a small REPL that keeps working while
// the server is unreachable. Local writes are visible immediately; the
// background pulls bring in changes made on other devices.
//
// Commands:
//   - accounts, list <collection>, show <collection> <id>
//   - open, deposit, withdraw, paybill
//   - delete <collection> <id>
//   - sync (one-shot fetch of every collection), stats
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
