// Package retry re-runs database operations that fail because another
// connection holds a lock on the SQLite file.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewSQLiteBusyClassifier(),
//	    retry.NewExponentialBackoff(5, retry.WithInitialDelay(50*time.Millisecond)),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return writeTable(ctx)
//	})
//
// Only SQLITE_BUSY and SQLITE_LOCKED are retried. Each retried operation
// must be atomic, so a failed attempt leaves nothing behind.
//
// Executor instances are safe for concurrent use. WithOnRetry returns a copy.
package retry
