package filesniff

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"
)

// FileInfo represents file metadata
type FileInfo struct {
	Name        string
	Path        string
	Size        int64
	ModTime     time.Time
	IsDir       bool
	ContentType string
}

// FileReader provides read-only access to a storage backend.
// Sniffing only ever needs a reader; drivers may offer more.
type FileReader interface {
	// Read returns a stream for reading file content.
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Stat returns file metadata.
	Stat(ctx context.Context, path string) (*FileInfo, error)
}

// FileWriter provides write operations for backends that support them.
type FileWriter interface {
	// Write stores content from r at path.
	Write(ctx context.Context, path string, r io.Reader) error

	// Delete removes a file.
	Delete(ctx context.Context, path string) error
}

// FileSystem provides read-write access.
type FileSystem interface {
	FileReader
	FileWriter
}

// osReader reads paths straight from the operating system.
type osReader struct{}

// OSReader returns a FileReader over the host filesystem. Paths are used as
// given, without a root.
func OSReader() FileReader {
	return osReader{}
}

func (osReader) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapPathError("read", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, WrapPathError("read", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, &PathError{Op: "read", Path: path, Err: ErrIsDir}
	}
	return f, nil
}

func (osReader) Stat(ctx context.Context, path string) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, WrapPathError("stat", path, err)
	}
	return &FileInfo{
		Name:    filepath.Base(path),
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}
