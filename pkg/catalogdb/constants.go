package catalogdb

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Load completed successfully
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (unexpected args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Required environment variable unset or invalid
	ExitMissingFile  = 11 // Source CSV missing or unreadable
	ExitParseError   = 12 // Source CSV malformed
	ExitSchemaError  = 13 // Column required by an index is absent
	ExitStorageError = 14 // Database file could not be opened or written
)

// Fixed table names in the output database.
const (
	TableItems   = "items"
	TableReviews = "reviews"
	TableUsers   = "users"
)

// Environment variables read by the loader.
const (
	EnvItemCSVPath   = "ITEM_CSV_PATH"
	EnvReviewCSVPath = "REVIEW_CSV_PATH"
	EnvUserCSVPath   = "USER_CSV_PATH"
	EnvDBPath        = "DB_PATH"
	EnvSQLiteDriver  = "CATALOGDB_SQLITE_DRIVER"
	EnvBusyRetries   = "CATALOGDB_BUSY_RETRIES"
)

// SQLite drivers registered with database/sql.
const (
	DriverCGO  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

// DefaultDriver is used when no driver is configured.
const DefaultDriver = DriverCGO

// SuccessMessage is the single line printed to stdout after a successful run.
const SuccessMessage = "Database created successfully!"
