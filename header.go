package filesniff

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gobeaver/filesniff/signature"
)

// HeaderSize is the number of leading bytes read from a source.
const HeaderSize = signature.MaxHeaderSize

// ReadHeader reads up to HeaderSize bytes from r. A source shorter than
// HeaderSize is not an error.
func ReadHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// ReadHeaderAt reads up to HeaderSize bytes from the start of rs and puts
// the cursor back where it was, even when the read fails.
func ReadHeaderAt(rs io.ReadSeeker) (header []byte, err error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("failed to get stream position: %w", err)
	}
	if pos != 0 {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to seek to start: %w", err)
		}
	}

	defer func() {
		if _, serr := rs.Seek(pos, io.SeekStart); serr != nil && err == nil {
			header = nil
			err = fmt.Errorf("failed to restore stream position: %w", serr)
		}
	}()

	return ReadHeader(rs)
}

// ReadFileHeader reads up to HeaderSize bytes from the file at path.
func ReadFileHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, WrapPathError("read", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, WrapPathError("read", path, err)
	}
	if info.IsDir() {
		return nil, &PathError{Op: "read", Path: path, Err: ErrIsDir}
	}

	header, err := ReadHeader(f)
	if err != nil {
		return nil, WrapPathError("read", path, err)
	}
	return header, nil
}

// ReadHeaderFrom reads up to HeaderSize bytes of path through a storage
// backend.
func ReadHeaderFrom(ctx context.Context, fsys FileReader, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := fsys.Read(ctx, path)
	if err != nil {
		return nil, WrapPathError("read", path, err)
	}
	defer rc.Close()

	header, err := ReadHeader(rc)
	if err != nil {
		return nil, WrapPathError("read", path, err)
	}
	return header, nil
}
