// Package logging provides concrete implementations of the catalogdb.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes prefixed diagnostics to a writer (stderr by default)
//   - NullLogger: discards all messages (useful for testing)
//
// Diagnostics never go to stdout, which carries only the success line.
package logging
