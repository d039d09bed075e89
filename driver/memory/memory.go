package memory

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"github.com/gobeaver/filesniff"
)

// memoryFile represents a file stored in memory
type memoryFile struct {
	content     []byte
	contentType string
	modTime     time.Time
}

// Adapter provides an in-memory implementation of filesniff.FileSystem
// Useful for testing and caching scenarios
type Adapter struct {
	mu      sync.RWMutex
	files   map[string]*memoryFile
	maxSize int64 // Maximum total storage size (0 = unlimited)
	size    int64 // Current total size
}

// Config holds configuration for the memory adapter
type Config struct {
	// MaxSize is the maximum total storage size in bytes (0 = unlimited)
	MaxSize int64
}

// New creates a new in-memory filesystem adapter
func New(cfg ...Config) *Adapter {
	var maxSize int64
	if len(cfg) > 0 {
		maxSize = cfg[0].MaxSize
	}

	return &Adapter{
		files:   make(map[string]*memoryFile),
		maxSize: maxSize,
	}
}

// Write implements filesniff.FileWriter. Existing files are replaced.
func (a *Adapter) Write(ctx context.Context, path string, content io.Reader) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path = normalizePath(path)

	// Validate path
	if !isValidPath(path) {
		return &filesniff.PathError{
			Op:   "write",
			Path: path,
			Err:  filesniff.ErrNotAllowed,
		}
	}

	// Read content into memory
	data, err := io.ReadAll(content)
	if err != nil {
		return &filesniff.PathError{
			Op:   "write",
			Path: path,
			Err:  err,
		}
	}

	// Sniff outside the lock
	contentType := filesniff.Classify(data).Type()

	a.mu.Lock()
	defer a.mu.Unlock()

	newSize := a.size + int64(len(data))
	if existing, exists := a.files[path]; exists {
		newSize -= int64(len(existing.content))
	}

	// Check max size limit
	if a.maxSize > 0 && newSize > a.maxSize {
		return &filesniff.PathError{
			Op:   "write",
			Path: path,
			Err:  ErrNoSpace,
		}
	}

	a.files[path] = &memoryFile{
		content:     data,
		contentType: contentType,
		modTime:     time.Now(),
	}
	a.size = newSize

	return nil
}

// Read implements filesniff.FileReader
func (a *Adapter) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	defer a.mu.RUnlock()

	file, exists := a.files[path]
	if !exists {
		return nil, &filesniff.PathError{
			Op:   "read",
			Path: path,
			Err:  filesniff.ErrNotExist,
		}
	}

	return io.NopCloser(bytes.NewReader(file.content)), nil
}

// Stat implements filesniff.FileReader. ContentType holds the type sniffed
// when the file was written.
func (a *Adapter) Stat(ctx context.Context, path string) (*filesniff.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	defer a.mu.RUnlock()

	file, exists := a.files[path]
	if !exists {
		return nil, &filesniff.PathError{
			Op:   "stat",
			Path: path,
			Err:  filesniff.ErrNotExist,
		}
	}

	return &filesniff.FileInfo{
		Name:        filepath.Base(path),
		Path:        path,
		Size:        int64(len(file.content)),
		ModTime:     file.modTime,
		ContentType: file.contentType,
	}, nil
}

// Delete implements filesniff.FileWriter
func (a *Adapter) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.Lock()
	defer a.mu.Unlock()

	file, exists := a.files[path]
	if !exists {
		return &filesniff.PathError{
			Op:   "delete",
			Path: path,
			Err:  filesniff.ErrNotExist,
		}
	}

	a.size -= int64(len(file.content))
	delete(a.files, path)

	return nil
}

// List returns the sorted paths matching a glob pattern such as
// "images/*.png" or "**.bin". An empty pattern lists every file.
func (a *Adapter) List(ctx context.Context, pattern string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var g glob.Glob
	if pattern != "" {
		var err error
		g, err = glob.Compile(normalizePath(pattern), '/')
		if err != nil {
			return nil, &filesniff.PathError{
				Op:   "list",
				Path: pattern,
				Err:  filesniff.ErrInvalidPath,
			}
		}
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	paths := make([]string, 0, len(a.files))
	for path := range a.files {
		if g == nil || g.Match(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Clear removes all files from the memory filesystem
// Useful for testing cleanup
func (a *Adapter) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.files = make(map[string]*memoryFile)
	a.size = 0
}

// Size returns the current total size of all stored files
func (a *Adapter) Size() int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.size
}

// FileCount returns the number of files stored
func (a *Adapter) FileCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.files)
}

// normalizePath normalizes a file path
func normalizePath(path string) string {
	path = strings.TrimPrefix(filepath.ToSlash(path), "/")
	if path == "" || path == "." {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(path))
}

// isValidPath checks if a path is valid (no directory traversal)
func isValidPath(path string) bool {
	if path == "" {
		return false
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

var _ filesniff.FileSystem = (*Adapter)(nil)
