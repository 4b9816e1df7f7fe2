package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths are normalized to forward slashes and cleaned.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	mtime map[string]time.Time
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		mtime: make(map[string]time.Time),
	}
}

// AddFile adds or replaces a file.
func (m *MemoryFileSystem) AddFile(filePath, content string) {
	key := normalize(filePath)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = []byte(content)
	m.mtime[key] = time.Now()
}

func (m *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[normalize(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}

	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (m *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	key := normalize(filePath)

	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[key]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
	}
	return &memoryFileInfo{
		name:    path.Base(key),
		size:    int64(len(content)),
		modTime: m.mtime[key],
	}, nil
}

// String lists the number of files, for debugging.
func (m *MemoryFileSystem) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("MemoryFileSystem(%d files)", len(m.files))
}

func normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
