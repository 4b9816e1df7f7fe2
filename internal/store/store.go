package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/vvka-141/catalogdb/internal/retry"
	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

// SQLiteStore implements catalogdb.Store.
// Not safe for concurrent use.
type SQLiteStore struct {
	db    *sqlx.DB
	path  string
	retry *retry.Executor
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithRetry replaces the executor used for lock contention.
func WithRetry(exec *retry.Executor) Option {
	return func(s *SQLiteStore) { s.retry = exec }
}

// WithBusyRetries retries writes up to n times on SQLITE_BUSY or SQLITE_LOCKED,
// calling onRetry (if non-nil) before each wait.
func WithBusyRetries(n int, onRetry func(attempt int, err error, delay time.Duration)) Option {
	return func(s *SQLiteStore) {
		exec := retry.NewExecutor(
			retry.NewSQLiteBusyClassifier(),
			retry.NewExponentialBackoff(n, retry.WithMaxDelay(time.Second)),
		)
		if onRetry != nil {
			exec = exec.WithOnRetry(onRetry)
		}
		s.retry = exec
	}
}

// noRetry runs each operation exactly once.
func noRetry() *retry.Executor {
	return retry.NewExecutor(retry.NewSQLiteBusyClassifier(), retry.NewExponentialBackoff(0))
}

// ColumnInfo is one row of PRAGMA table_info.
type ColumnInfo struct {
	CID        int     `db:"cid"`
	Name       string  `db:"name"`
	Type       string  `db:"type"`
	NotNull    bool    `db:"notnull"`
	Default    *string `db:"dflt_value"`
	PrimaryKey int     `db:"pk"`
}

// IndexInfo describes an index found in sqlite_master.
type IndexInfo struct {
	Name  string `db:"name"`
	Table string `db:"tbl_name"`
}

// Open opens (creating if absent) the SQLite file at path using driver.
func Open(ctx context.Context, driver, path string, opts ...Option) (*SQLiteStore, error) {
	if driver == "" {
		driver = catalogdb.DefaultDriver
	}

	db, err := sqlx.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w: %w", path, catalogdb.ErrStorage, err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path, retry: noRetry()}
	for _, opt := range opts {
		opt(s)
	}

	// sql.Open is lazy; touch the file now so open errors surface here.
	err = s.retry.Execute(ctx, func(ctx context.Context) error {
		_, err := db.ExecContext(ctx, "PRAGMA synchronous = FULL")
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w: %w", path, catalogdb.ErrStorage, err)
	}

	return s, nil
}

// Opener adapts Open to catalogdb.StoreOpener.
func Opener(ctx context.Context, opts catalogdb.StoreOptions) (catalogdb.Store, error) {
	s, err := Open(ctx, opts.Driver, opts.Path, WithBusyRetries(opts.BusyRetries, opts.OnBusy))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DB exposes the underlying handle for read-only inspection.
func (s *SQLiteStore) DB() *sqlx.DB { return s.db }

// ReplaceTable drops any table named t.Name and recreates it from t
// in a single transaction. With busy retries enabled the whole transaction
// is retried while the file is locked.
func (s *SQLiteStore) ReplaceTable(ctx context.Context, t *catalogdb.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %q has no columns: %w", t.Name, catalogdb.ErrSchema)
	}
	return s.retry.Execute(ctx, func(ctx context.Context) error {
		return s.replaceTable(ctx, t)
	})
}

func (s *SQLiteStore) replaceTable(ctx context.Context, t *catalogdb.Table) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return s.storageErr("begin", t.Name, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, ignoreDone(tx.Rollback()))
		}
	}()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(t.Name)); err != nil {
		return s.storageErr("drop", t.Name, err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(t)); err != nil {
		return s.storageErr("create", t.Name, err)
	}

	if len(t.Rows) > 0 {
		stmt, err := tx.PreparexContext(ctx, insertSQL(t))
		if err != nil {
			return s.storageErr("prepare insert into", t.Name, err)
		}
		defer stmt.Close()

		for i, row := range t.Rows {
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				return s.storageErr(fmt.Sprintf("insert row %d into", i+1), t.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return s.storageErr("commit", t.Name, err)
	}
	return nil
}

// CreateIndex drops and recreates idx after confirming its column exists.
// Column names match case-insensitively, as they do in SQLite.
func (s *SQLiteStore) CreateIndex(ctx context.Context, idx catalogdb.IndexSpec) error {
	columns, err := s.TableInfo(ctx, idx.Table)
	if err != nil {
		return err
	}

	found := false
	for _, c := range columns {
		if catalogdb.SameIdentifier(c.Name, idx.Column) {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("cannot create index %s: %w", idx.Name, &catalogdb.SchemaError{Table: idx.Table, Column: idx.Column})
	}

	return s.retry.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.db.ExecContext(ctx, "DROP INDEX IF EXISTS "+quoteIdent(idx.Name)); err != nil {
			return s.storageErr("drop index", idx.Name, err)
		}
		stmt := fmt.Sprintf("CREATE INDEX %s ON %s(%s)", quoteIdent(idx.Name), quoteIdent(idx.Table), quoteIdent(idx.Column))
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return s.storageErr("create index", idx.Name, err)
		}
		return nil
	})
}

// TableInfo returns the columns of table in declaration order.
// A table that does not exist has no columns.
func (s *SQLiteStore) TableInfo(ctx context.Context, table string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if err := s.db.SelectContext(ctx, &columns, "SELECT cid, name, type, \"notnull\", dflt_value, pk FROM pragma_table_info(?)", table); err != nil {
		return nil, s.storageErr("inspect", table, err)
	}
	return columns, nil
}

// Indexes lists the named indexes defined on table.
func (s *SQLiteStore) Indexes(ctx context.Context, table string) ([]IndexInfo, error) {
	var indexes []IndexInfo
	err := s.db.SelectContext(ctx, &indexes,
		"SELECT name, tbl_name FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND sql IS NOT NULL ORDER BY name", table)
	if err != nil {
		return nil, s.storageErr("list indexes of", table, err)
	}
	return indexes, nil
}

// CountRows returns the number of rows in table.
func (s *SQLiteStore) CountRows(ctx context.Context, table string) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+quoteIdent(table)); err != nil {
		return 0, s.storageErr("count rows of", table, err)
	}
	return n, nil
}

// Close releases the database file. Committed writes are already durable.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database %s: %w: %w", s.path, catalogdb.ErrStorage, err)
	}
	return nil
}

func (s *SQLiteStore) storageErr(op, name string, err error) error {
	return fmt.Errorf("failed to %s %s: %w: %w", op, name, catalogdb.ErrStorage, err)
}

func createTableSQL(t *catalogdb.Table) string {
	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = quoteIdent(c.Name) + " " + string(c.Type)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(t.Name), strings.Join(defs, ", "))
}

func insertSQL(t *catalogdb.Table) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quoteIdent(c.Name)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(t.Columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(t.Name), strings.Join(cols, ", "), placeholders)
}

// quoteIdent quotes a SQLite identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
