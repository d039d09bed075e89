package local

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobeaver/filesniff"
)

// Adapter provides a local filesystem implementation of filesniff.FileSystem
// confined to a root directory.
type Adapter struct {
	root string
}

// New creates a new local filesystem adapter. The root must be an existing
// directory.
func New(root string) (*Adapter, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, filesniff.WrapPathError("open", root, err)
	}
	if !info.IsDir() {
		return nil, &filesniff.PathError{
			Op:   "open",
			Path: root,
			Err:  errors.New("root is not a directory"),
		}
	}

	return &Adapter{
		root: absRoot,
	}, nil
}

// Root returns the absolute root directory.
func (a *Adapter) Root() string {
	return a.root
}

// Read implements filesniff.FileReader
func (a *Adapter) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("read", path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return nil, filesniff.WrapPathError("read", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, filesniff.WrapPathError("read", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, &filesniff.PathError{
			Op:   "read",
			Path: path,
			Err:  filesniff.ErrIsDir,
		}
	}

	return f, nil
}

// Stat implements filesniff.FileReader. ContentType is sniffed from the
// file's leading bytes.
func (a *Adapter) Stat(ctx context.Context, path string) (*filesniff.FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("stat", path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, filesniff.WrapPathError("stat", path, err)
	}

	contentType := ""
	if !info.IsDir() {
		if r, err := filesniff.DetectFile(fullPath); err == nil {
			contentType = r.Type()
		}
	}

	return &filesniff.FileInfo{
		Name:        filepath.Base(path),
		Path:        path,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		IsDir:       info.IsDir(),
		ContentType: contentType,
	}, nil
}

// Write implements filesniff.FileWriter
func (a *Adapter) Write(ctx context.Context, path string, content io.Reader) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("write", path)
	if err != nil {
		return err
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return filesniff.WrapPathError("write", path, err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return filesniff.WrapPathError("write", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return filesniff.WrapPathError("write", path, err)
	}

	return nil
}

// Delete implements filesniff.FileWriter
func (a *Adapter) Delete(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Continue
	}

	fullPath, err := a.resolve("delete", path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		return filesniff.WrapPathError("delete", path, err)
	}

	return nil
}

// resolve maps path to a location under the root, rejecting paths that
// escape it.
func (a *Adapter) resolve(op, path string) (string, error) {
	if path == "" {
		return "", &filesniff.PathError{Op: op, Path: path, Err: filesniff.ErrInvalidPath}
	}

	fullPath := filepath.Join(a.root, filepath.Clean(path))
	if !isPathUnderRoot(a.root, fullPath) {
		return "", &filesniff.PathError{
			Op:   op,
			Path: path,
			Err:  filesniff.ErrNotAllowed,
		}
	}
	return fullPath, nil
}

// isPathUnderRoot checks if a path is under a given root directory
func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	return !filepath.IsAbs(rel) && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

var _ filesniff.FileSystem = (*Adapter)(nil)
