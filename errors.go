package filesniff

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common errors
var (
	ErrNotExist      = errors.New("file does not exist")
	ErrPermission    = errors.New("permission denied")
	ErrIsDir         = errors.New("is a directory")
	ErrNotAllowed    = errors.New("operation not allowed")
	ErrInvalidPath   = errors.New("invalid path")
	ErrUnknownDriver = errors.New("driver not registered")
)

// PathError records an error and the operation and file path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether an error indicates that a file does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsPermission reports whether an error indicates that permission is denied
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsDir reports whether an error indicates that a directory was given
// where a file was expected
func IsDir(err error) bool {
	return errors.Is(err, ErrIsDir)
}

// WrapPathError builds a PathError for op on path. Errors from the os and
// io/fs packages are tagged with the matching sentinel so that both
// errors.Is(err, ErrNotExist) and errors.Is(err, fs.ErrNotExist) hold.
func WrapPathError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}

	switch {
	case errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrNotExist):
		err = fmt.Errorf("%w: %w", ErrNotExist, err)
	case errors.Is(err, fs.ErrPermission) && !errors.Is(err, ErrPermission):
		err = fmt.Errorf("%w: %w", ErrPermission, err)
	}
	return &PathError{Op: op, Path: path, Err: err}
}
