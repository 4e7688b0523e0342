// Package localstore is the on-device persistence behind every synced
// repository.
//
// # Overview
//
// Store is the contract a repository reads from and writes to: point and
// full-table reads, upsert, delete and a change stream. Two implementations
// are provided:
//
//   - Table: one typed SQLite table per entity (modernc.org/sqlite), schema
//     applied from embedded goose migrations by Open / RunMigrations.
//   - Memory: a map-backed store for tests and ephemeral sessions.
//
// # Conflict resolution
//
// Upsert is a plain overwrite. The last call wins; the store itself never
// compares versions.
//
// # Change stream
//
// ObserveAll emits the full table immediately and again after every
// successful Upsert or Delete. Bursts of writes may be coalesced into a
// single emission; the last emission always reflects the latest state.
package localstore
