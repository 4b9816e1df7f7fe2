// Package csvtable materializes CSV sources into typed in-memory tables.
//
// A source is read fully, its header becomes the column list verbatim, and
// each column gets an explicit type inferred from every non-null cell:
//
//   - INTEGER: all cells are base-10 integers without leading zeros
//   - REAL: all cells are integers or decimal floats
//   - BOOLEAN: all cells are true/false (any case)
//   - TEXT: anything else, or no non-null cells at all
//
// The usual pandas missing-value spellings ("", "NA", "NaN", "null", ...)
// become SQL NULL. A column mixing boolean and numeric literals is rejected
// rather than coerced.
package csvtable
