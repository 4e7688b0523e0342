// Package app assembles the seven synced repositories of the banking client
// over one SQLite database and one remote document store, with the
// per-collection pull policy each entity needs.
package app
