// Package sqlite provides a SQLite-based implementation of the library store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Deleting a document cascades to its shares, its tags and every entity derived
// from it.
//
// # Data Location
//
// By default, the database is stored at ~/.horizon/data/library.db
//
// # Thread Safety
//
// All operations are thread-safe. Snapshot replacement runs in one
// transaction, so readers see either the old or the new library.
package sqlite
