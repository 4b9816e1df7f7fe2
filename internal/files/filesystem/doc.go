// Package filesystem provides read-only access to CSV source files.
//
// The loader never opens files directly; it goes through a FileSystemProvider
// so tests can substitute an in-memory implementation for the OS filesystem.
//
// Implementations:
//   - OSFileSystem: reads from the host filesystem
//   - MemoryFileSystem: map-backed files for tests
//
// Both report absent paths with errors satisfying errors.Is(err, fs.ErrNotExist).
package filesystem
