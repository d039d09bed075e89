package filesniff

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHeader(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantLen int
	}{
		{name: "empty", input: nil, wantLen: 0},
		{name: "short", input: []byte("GIF89a"), wantLen: 6},
		{name: "exact", input: bytes.Repeat([]byte{'a'}, HeaderSize), wantLen: HeaderSize},
		{name: "long", input: bytes.Repeat([]byte{'a'}, 4*HeaderSize), wantLen: HeaderSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, err := ReadHeader(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Len(t, header, tt.wantLen)
		})
	}

	t.Run("one byte at a time", func(t *testing.T) {
		header, err := ReadHeader(iotest.OneByteReader(strings.NewReader("%PDF-1.7")))
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.7"), header)
	})

	t.Run("read error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := ReadHeader(iotest.ErrReader(boom))
		assert.ErrorIs(t, err, boom)
	})
}

func TestReadHeaderAtRestoresCursor(t *testing.T) {
	data := append([]byte("\x89PNG\x0D\x0A\x1A\x0A"), bytes.Repeat([]byte{0}, 1000)...)

	for _, pos := range []int64{0, 5, 600, int64(len(data))} {
		r := bytes.NewReader(data)
		_, err := r.Seek(pos, io.SeekStart)
		require.NoError(t, err)

		header, err := ReadHeaderAt(r)
		require.NoError(t, err)
		assert.Equal(t, data[:HeaderSize], header)

		cur, err := r.Seek(0, io.SeekCurrent)
		require.NoError(t, err)
		assert.Equal(t, pos, cur, "cursor moved from %d", pos)
	}
}

// failingSeeker wraps a bytes.Reader and injects read or seek failures.
type failingSeeker struct {
	*bytes.Reader
	failRead bool
	failSeek bool
}

var errInjected = errors.New("injected failure")

func (f *failingSeeker) Read(p []byte) (int, error) {
	if f.failRead {
		return 0, errInjected
	}
	return f.Reader.Read(p)
}

func (f *failingSeeker) Seek(offset int64, whence int) (int64, error) {
	if f.failSeek {
		return 0, errInjected
	}
	return f.Reader.Seek(offset, whence)
}

func TestReadHeaderAtFailures(t *testing.T) {
	t.Run("read failure still restores cursor", func(t *testing.T) {
		f := &failingSeeker{Reader: bytes.NewReader([]byte("0123456789")), failRead: true}
		_, err := f.Reader.Seek(7, io.SeekStart)
		require.NoError(t, err)

		_, err = ReadHeaderAt(f)
		assert.ErrorIs(t, err, errInjected)

		cur, err := f.Reader.Seek(0, io.SeekCurrent)
		require.NoError(t, err)
		assert.Equal(t, int64(7), cur)
	})

	t.Run("seek failure", func(t *testing.T) {
		f := &failingSeeker{Reader: bytes.NewReader([]byte("0123456789")), failSeek: true}
		_, err := ReadHeaderAt(f)
		assert.ErrorIs(t, err, errInjected)
	})
}

func TestReadFileHeader(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "doc")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))

	header, err := ReadFileHeader(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4\n"), header)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	header, err = ReadFileHeader(empty)
	require.NoError(t, err)
	assert.Empty(t, header)

	_, err = ReadFileHeader(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "read", pathErr.Op)

	_, err = ReadFileHeader(dir)
	assert.True(t, IsDir(err))
}

func TestReadHeaderFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font")
	require.NoError(t, os.WriteFile(path, []byte("wOFF\x00\x01\x00\x00"), 0o644))

	header, err := ReadHeaderFrom(context.Background(), OSReader(), path)
	require.NoError(t, err)
	assert.Equal(t, []byte("wOFF\x00\x01\x00\x00"), header)

	_, err = ReadHeaderFrom(context.Background(), OSReader(), filepath.Join(dir, "nope"))
	assert.True(t, IsNotExist(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadHeaderFrom(ctx, OSReader(), path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOSReaderStat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(path, []byte("MZ\x90\x00"), 0o644))

	info, err := OSReader().Stat(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "a.bin", info.Name)
	assert.Equal(t, int64(4), info.Size)
	assert.False(t, info.IsDir)

	_, err = OSReader().Read(context.Background(), dir)
	assert.True(t, IsDir(err))
}
