package csvtable

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/catalogdb/internal/checksum"
	"github.com/vvka-141/catalogdb/internal/files/filesystem"
	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader implements catalogdb.TableReader on top of a FileSystemProvider.
type Reader struct {
	fs   filesystem.FileSystemProvider
	calc checksum.Calculator
}

// NewReader creates a Reader. Panics on nil dependencies.
func NewReader(fsProvider filesystem.FileSystemProvider, calc checksum.Calculator) *Reader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if calc == nil {
		panic("calc cannot be nil")
	}
	return &Reader{fs: fsProvider, calc: calc}
}

// ReadTable reads and parses the CSV at source.Path into a table named source.Name.
func (r *Reader) ReadTable(source catalogdb.TableSource) (*catalogdb.Table, error) {
	if source.Path == "" {
		return nil, fmt.Errorf("no CSV path configured for table %q: %w", source.Name, catalogdb.ErrMissingFile)
	}

	content, err := r.fs.ReadFile(source.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s CSV: %w: %w", source.Name, catalogdb.ErrMissingFile, err)
	}

	table, err := Parse(source.Name, source.Path, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	table.Checksum = r.calc.CalculateRaw(content)
	table.NormalizedChecksum = r.calc.CalculateNormalized(content)
	return table, nil
}

// Parse reads a comma-delimited CSV with a header row from in.
// path is only used in error messages.
func Parse(name, path string, in io.Reader) (*catalogdb.Table, error) {
	br := bufio.NewReader(in)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &catalogdb.ParseError{Path: path, Err: errors.New("no columns to parse from file")}
	}
	if err != nil {
		return nil, wrapCSVError(path, err)
	}

	names, err := columnNames(header)
	if err != nil {
		return nil, &catalogdb.ParseError{Path: path, Line: 1, Err: err}
	}

	var raw [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(path, err)
		}
		if len(record) > len(names) {
			line, _ := cr.FieldPos(0)
			return nil, &catalogdb.ParseError{
				Path: path,
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(names), len(record)),
			}
		}
		for len(record) < len(names) {
			record = append(record, "")
		}
		raw = append(raw, record)
	}

	columns := make([]catalogdb.Column, len(names))
	for i, colName := range names {
		var stats columnStats
		for _, record := range raw {
			stats.observe(record[i])
		}
		typ, err := stats.resolve(colName)
		if err != nil {
			return nil, &catalogdb.ParseError{Path: path, Err: err}
		}
		columns[i] = catalogdb.Column{Name: colName, Type: typ}
	}

	rows := make([][]any, len(raw))
	for r, record := range raw {
		row := make([]any, len(columns))
		for i, col := range columns {
			row[i] = convert(record[i], col.Type)
		}
		rows[r] = row
	}

	return &catalogdb.Table{Name: name, Columns: columns, Rows: rows}, nil
}

// columnNames takes header names verbatim, naming blanks "Unnamed: <i>".
// Names differing only in ASCII case collide, since SQLite treats them as one column.
func columnNames(header []string) ([]string, error) {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		key := catalogdb.FoldIdentifier(h)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate column %q at positions %d and %d", h, prev+1, i+1)
		}
		seen[key] = i
		names[i] = h
	}
	return names, nil
}

func wrapCSVError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &catalogdb.ParseError{Path: path, Line: pe.Line, Err: pe.Err}
	}
	return &catalogdb.ParseError{Path: path, Err: err}
}
