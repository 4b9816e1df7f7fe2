package catalogdb

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes of a load run.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	_, err := loader.Load(ctx, cfg)
//	if errors.Is(err, catalogdb.ErrSchema) {
//	    // a CSV lacked a column an index needs
//	}
var (
	// ErrConfiguration indicates a required setting is unset or invalid.
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingFile indicates a source path does not resolve to a readable file.
	ErrMissingFile = errors.New("missing file")

	// ErrParse indicates CSV content could not be parsed into a table.
	ErrParse = errors.New("parse error")

	// ErrSchema indicates an expected column is absent from a table.
	ErrSchema = errors.New("schema error")

	// ErrStorage indicates the database file could not be opened or written.
	ErrStorage = errors.New("storage error")
)

// ParseError describes malformed CSV input.
// Line is the 1-based physical line in the source, or 0 when unknown.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ParseError as ErrParse so errors.Is works without losing the cause.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SchemaError reports a column an operation needs but the table does not have.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: table %q has no column %q", e.Table, e.Column)
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrConfiguration):
		return ExitConfigError
	case errors.Is(err, ErrMissingFile):
		return ExitMissingFile
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrSchema):
		return ExitSchemaError
	case errors.Is(err, ErrStorage):
		return ExitStorageError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "accepts ", "invalid argument", "flag needs an argument"} {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
