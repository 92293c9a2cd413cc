// Package sqlite provides a SQLite-backed mirror of the site's blog
// posts for offline content search.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. The mirror is
// populated by the seed command and answers the same substring queries
// as the remote content API, so the palette keeps working without a
// network connection.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files. Posts carry a folded search_text column (lowercased,
// diacritics stripped) that queries match against, since SQLite LIKE is
// case-insensitive for ASCII only.
//
// # Data Location
//
// By default, the database is stored at ~/.cherche/data/content.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
