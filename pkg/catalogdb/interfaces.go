package catalogdb

import (
	"context"
	"time"
)

// TableReader materializes a CSV source into a Table.
// Missing or unreadable paths yield ErrMissingFile; malformed content yields ErrParse.
type TableReader interface {
	ReadTable(source TableSource) (*Table, error)
}

// Store is an open database file that tables and indexes are written into.
// A Store is owned by a single run and is not safe for concurrent use.
type Store interface {
	// ReplaceTable drops any table of the same name and writes t in row order.
	ReplaceTable(ctx context.Context, t *Table) error

	// CreateIndex (re)creates idx. Returns a *SchemaError when the column is absent.
	CreateIndex(ctx context.Context, idx IndexSpec) error

	// Close flushes and releases the database file.
	Close() error
}

// StoreOpener opens (creating if absent) the database file at opts.Path.
type StoreOpener func(ctx context.Context, opts StoreOptions) (Store, error)

// Loader runs the full ingestion procedure.
type Loader interface {
	Load(ctx context.Context, cfg LoadConfig) (*LoadResult, error)
}

// ErrorClassifier determines whether an error is transient (retryable) or fatal.
type ErrorClassifier interface {
	// IsTransient returns true if the operation should be retried.
	IsTransient(err error) bool
}

// BackoffStrategy calculates the delay before the next retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the duration to wait before retry number attempt (zero-indexed).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the maximum number of retries (0 = no retries, -1 = unlimited).
	MaxAttempts() int
}
