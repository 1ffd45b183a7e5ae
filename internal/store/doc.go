// Package store provides persistence for mcpi run records.
//
// It contains concrete implementations of domain.RunStore:
//   - RunFileStore serialises records as JSON under the configured home
//     directory, writing through a temp file and atomic rename.
//   - SQLiteStore keeps records in a single SQLite table (pure-Go driver).
//
// All methods are concurrency-safe. Only running counts are stored; individual
// samples are never persisted.
package store
