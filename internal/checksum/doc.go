// Package checksum fingerprints CSV source files.
//
// Two checksums are available:
//
//   - Raw checksum: hash of the exact bytes (detects every change)
//   - Normalized checksum: hash after line-ending normalization, so the same
//     data exported on Windows and Unix yields one fingerprint
//
// # Normalization Strategy
//
//  1. Strip a leading UTF-8 byte order mark
//  2. Convert CRLF and lone CR line endings to LF
//  3. Drop trailing newlines
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	normalized := calculator.CalculateNormalized(content)
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
