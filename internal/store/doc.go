// Package store writes loaded tables into a SQLite database file.
//
// A Store pins database/sql to a single connection so the file is owned by
// exactly one writer for the whole run. Tables are replaced one at a time,
// each inside its own transaction; there is no transaction spanning tables,
// so a failure leaves previously written tables in place.
//
// Writes fail on the first SQLITE_BUSY unless WithBusyRetries is given, in
// which case each table write and index build is retried as a unit with
// exponential backoff (see internal/retry).
//
// Two drivers are supported:
//   - "sqlite3": github.com/mattn/go-sqlite3 (CGO)
//   - "sqlite":  modernc.org/sqlite (pure Go)
package store
