package catalogdb

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoadConfig contains everything a load run needs.
// ItemsPath, ReviewsPath and DBPath are required; UsersPath is optional
// and enables the users table when set.
type LoadConfig struct {
	// ItemsPath is the items CSV (ITEM_CSV_PATH)
	ItemsPath string

	// ReviewsPath is the reviews CSV (REVIEW_CSV_PATH)
	ReviewsPath string

	// UsersPath is the users CSV (USER_CSV_PATH), empty to skip the users table
	UsersPath string

	// DBPath is the SQLite database file to create or update (DB_PATH)
	DBPath string

	// Driver selects the database/sql driver, DriverCGO or DriverPure.
	// Empty means DefaultDriver.
	Driver string

	// BusyRetries is how many times a write is retried while another
	// connection holds the database lock. 0 fails on the first SQLITE_BUSY.
	BusyRetries int

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.ItemsPath == "" {
		errs = append(errs, fmt.Errorf("%s is required: %w", EnvItemCSVPath, ErrConfiguration))
	}
	if c.ReviewsPath == "" {
		errs = append(errs, fmt.Errorf("%s is required: %w", EnvReviewCSVPath, ErrConfiguration))
	}
	if c.DBPath == "" {
		errs = append(errs, fmt.Errorf("%s is required: %w", EnvDBPath, ErrConfiguration))
	}

	switch c.Driver {
	case "", DriverCGO, DriverPure:
	default:
		errs = append(errs, fmt.Errorf("unsupported sqlite driver %q (want %q or %q): %w",
			c.Driver, DriverCGO, DriverPure, ErrConfiguration))
	}

	if c.BusyRetries < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d: %w", EnvBusyRetries, c.BusyRetries, ErrConfiguration))
	}

	return errors.Join(errs...)
}

// Sources returns the configured CSV sources in write order:
// items, reviews, then users when UsersPath is set.
func (c *LoadConfig) Sources() []TableSource {
	sources := []TableSource{
		{Name: TableItems, Path: c.ItemsPath},
		{Name: TableReviews, Path: c.ReviewsPath},
	}
	if c.UsersPath != "" {
		sources = append(sources, TableSource{Name: TableUsers, Path: c.UsersPath})
	}
	return sources
}

// EffectiveDriver returns Driver, or DefaultDriver when unset.
func (c *LoadConfig) EffectiveDriver() string {
	if c.Driver == "" {
		return DefaultDriver
	}
	return c.Driver
}

// StoreOptions returns the options used to open the database file.
func (c *LoadConfig) StoreOptions() StoreOptions {
	return StoreOptions{
		Driver:      c.EffectiveDriver(),
		Path:        c.DBPath,
		BusyRetries: c.BusyRetries,
	}
}

// StoreOptions configures a StoreOpener.
type StoreOptions struct {
	Driver      string
	Path        string
	BusyRetries int

	// OnBusy, when set, is called before each wait on a locked database.
	OnBusy func(attempt int, err error, delay time.Duration)
}

// TableSource binds a destination table name to its CSV file.
type TableSource struct {
	Name string
	Path string
}

// ColumnType is the declared SQLite type of a loaded column.
type ColumnType string

const (
	ColumnInteger ColumnType = "INTEGER"
	ColumnReal    ColumnType = "REAL"
	ColumnBoolean ColumnType = "BOOLEAN"
	ColumnText    ColumnType = "TEXT"
)

// Column is one entry of a table's explicit schema.
type Column struct {
	Name string
	Type ColumnType
}

// Table is a fully materialized CSV source.
// Each row has exactly len(Columns) values; a nil value is SQL NULL.
// Non-nil values are int64, float64, bool or string according to the column type.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any

	// Checksum is the SHA-256 of the source bytes, empty when not read from a file.
	Checksum string

	// NormalizedChecksum ignores BOM and line-ending differences between exports.
	NormalizedChecksum string
}

// ColumnNames returns the header names in source order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// FoldIdentifier lowercases ASCII letters only, matching how SQLite
// compares column names. Non-ASCII letters are left as is.
func FoldIdentifier(name string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, name)
}

// SameIdentifier reports whether a and b name the same SQLite column.
func SameIdentifier(a, b string) bool {
	return FoldIdentifier(a) == FoldIdentifier(b)
}

// IndexSpec names an index over a single column.
type IndexSpec struct {
	Name   string
	Table  string
	Column string
}

// DefaultIndexes are created after every table has been written.
var DefaultIndexes = []IndexSpec{
	{Name: "idx_item_id", Table: TableItems, Column: "itemId"},
	{Name: "idx_review_item_id", Table: TableReviews, Column: "itemId"},
	{Name: "idx_user_id", Table: TableReviews, Column: "userId"},
}

// TableResult summarizes one written table.
type TableResult struct {
	Name               string
	Path               string
	Rows               int
	Columns            []Column
	Checksum           string
	NormalizedChecksum string
}

// LoadResult summarizes a successful run.
type LoadResult struct {
	RunID   uuid.UUID
	DBPath  string
	Tables  []TableResult
	Indexes []IndexSpec
}
