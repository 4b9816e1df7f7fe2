package csvtable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

// naValues are read as NULL, matching pandas' default na_values.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

type cellKind int

const (
	kindNull cellKind = iota
	kindInt
	kindFloat
	kindBool
	kindText
)

func isNA(cell string) bool {
	_, ok := naValues[cell]
	return ok
}

func classify(cell string) cellKind {
	if isNA(cell) {
		return kindNull
	}
	s := strings.TrimSpace(cell)
	if isInteger(s) {
		return kindInt
	}
	if isFloat(s) {
		return kindFloat
	}
	if strings.EqualFold(s, "true") || strings.EqualFold(s, "false") {
		return kindBool
	}
	return kindText
}

// isInteger accepts an optional sign followed by digits, with no leading zero
// unless the number is zero itself. Values outside int64 are not integers.
func isInteger(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	if len(digits) > 1 && digits[0] == '0' {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isFloat accepts decimal notation with optional exponent and inf/infinity.
// Hex floats, digit separators and zero-padded integer parts are left as text.
func isFloat(s string) bool {
	if s == "" {
		return false
	}
	intPart := strings.TrimLeft(s, "+-")
	if end := strings.IndexAny(intPart, ".eE"); end >= 0 {
		intPart = intPart[:end]
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '+', r == '-', r == 'e', r == 'E':
		default:
			lower := strings.ToLower(strings.TrimLeft(s, "+-"))
			return lower == "inf" || lower == "infinity"
		}
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// columnStats accumulates what kinds of cells a column holds.
type columnStats struct {
	seen      [kindText + 1]bool
	firstBool string
	firstNum  string
}

func (c *columnStats) observe(cell string) {
	k := classify(cell)
	c.seen[k] = true
	switch k {
	case kindBool:
		if c.firstBool == "" {
			c.firstBool = cell
		}
	case kindInt, kindFloat:
		if c.firstNum == "" {
			c.firstNum = cell
		}
	}
}

func (c *columnStats) resolve(column string) (catalogdb.ColumnType, error) {
	numeric := c.seen[kindInt] || c.seen[kindFloat]
	switch {
	case c.seen[kindText]:
		return catalogdb.ColumnText, nil
	case c.seen[kindBool] && numeric:
		return "", fmt.Errorf("column %q mixes boolean (%q) and numeric (%q) values",
			column, c.firstBool, c.firstNum)
	case c.seen[kindBool]:
		return catalogdb.ColumnBoolean, nil
	case c.seen[kindFloat]:
		return catalogdb.ColumnReal, nil
	case c.seen[kindInt]:
		return catalogdb.ColumnInteger, nil
	default:
		return catalogdb.ColumnText, nil
	}
}

// convert turns a raw cell into the Go value stored for a column type.
// Cells were classified already, so parse errors cannot occur for typed columns.
func convert(cell string, typ catalogdb.ColumnType) any {
	if isNA(cell) {
		return nil
	}
	s := strings.TrimSpace(cell)
	switch typ {
	case catalogdb.ColumnInteger:
		v, _ := strconv.ParseInt(s, 10, 64)
		return v
	case catalogdb.ColumnReal:
		v, _ := strconv.ParseFloat(s, 64)
		return v
	case catalogdb.ColumnBoolean:
		return strings.EqualFold(s, "true")
	default:
		return cell
	}
}
