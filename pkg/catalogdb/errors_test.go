package catalogdb_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, catalogdb.ExitSuccess},
		{"general error", errors.New("something went wrong"), catalogdb.ExitGeneralError},
		{"unknown flag", errors.New("unknown flag: --foo"), catalogdb.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), catalogdb.ExitUsageError},
		{"unknown command", errors.New(`unknown command "x" for "catalogdb"`), catalogdb.ExitUsageError},
		{"configuration", fmt.Errorf("DB_PATH is required: %w", catalogdb.ErrConfiguration), catalogdb.ExitConfigError},
		{"missing file", fmt.Errorf("load: %w", catalogdb.ErrMissingFile), catalogdb.ExitMissingFile},
		{"parse", &catalogdb.ParseError{Path: "a.csv", Err: errors.New("bad")}, catalogdb.ExitParseError},
		{"schema", fmt.Errorf("index: %w", &catalogdb.SchemaError{Table: "reviews", Column: "itemId"}), catalogdb.ExitSchemaError},
		{"storage", fmt.Errorf("open: %w", catalogdb.ErrStorage), catalogdb.ExitStorageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := catalogdb.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	cause := errors.New("bare \" in non-quoted field")
	err := &catalogdb.ParseError{Path: "reviews.csv", Line: 4, Err: cause}

	if !errors.Is(err, catalogdb.ErrParse) {
		t.Error("ParseError should match ErrParse")
	}
	if !errors.Is(err, cause) {
		t.Error("ParseError should unwrap to its cause")
	}
	if want := `parse error in reviews.csv at line 4: bare " in non-quoted field`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	noLine := &catalogdb.ParseError{Path: "items.csv", Err: cause}
	if want := `parse error in items.csv: bare " in non-quoted field`; noLine.Error() != want {
		t.Errorf("Error() = %q, want %q", noLine.Error(), want)
	}
}

func TestSchemaError(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &catalogdb.SchemaError{Table: "reviews", Column: "userId"})

	if !errors.Is(err, catalogdb.ErrSchema) {
		t.Error("SchemaError should match ErrSchema")
	}
	var se *catalogdb.SchemaError
	if !errors.As(err, &se) || se.Column != "userId" {
		t.Errorf("errors.As failed: %v", err)
	}
	if errors.Is(err, catalogdb.ErrParse) {
		t.Error("SchemaError must not match ErrParse")
	}
}
