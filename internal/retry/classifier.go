package retry

import (
	"errors"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Primary result codes shared by both drivers.
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// codedError matches modernc.org/sqlite's *sqlite.Error.
type codedError interface {
	Code() int
}

// SQLiteBusyClassifier treats lock contention on the database file as transient.
// Everything else, including constraint and I/O errors, is fatal.
type SQLiteBusyClassifier struct{}

// NewSQLiteBusyClassifier creates a new SQLite lock classifier.
func NewSQLiteBusyClassifier() *SQLiteBusyClassifier {
	return &SQLiteBusyClassifier{}
}

// IsTransient reports whether err is SQLITE_BUSY or SQLITE_LOCKED.
func (c *SQLiteBusyClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return cgoErr.Code == sqlite3.ErrBusy || cgoErr.Code == sqlite3.ErrLocked
	}

	var coded codedError
	if errors.As(err, &coded) {
		// extended codes keep the primary code in the low byte
		switch coded.Code() & 0xff {
		case sqliteBusy, sqliteLocked:
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}
