// Package documents is the server-side document store: flat JSON documents
// partitioned by owner and collection.
//
// Repository implementations:
//   - Memory: process-local, for tests and single-node development.
//   - Postgres: jsonb rows via pgx, schema from embedded goose migrations.
//   - S3: one JSON object per document, keyed owner/collection/id.json.
//
// Service enforces the document shape (flat primitives only, nulls
// dropped), owns the write path and publishes a change signal per write so
// that collection listeners can push fresh snapshots.
package documents
