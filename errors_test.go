package filesniff

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathError(t *testing.T) {
	err := &PathError{Op: "read", Path: "a/b.png", Err: ErrNotExist}
	assert.Equal(t, "read a/b.png: file does not exist", err.Error())
	assert.ErrorIs(t, err, ErrNotExist)
	assert.True(t, IsNotExist(err))
	assert.False(t, IsPermission(err))
	assert.False(t, IsDir(err))
}

func TestWrapPathError(t *testing.T) {
	assert.NoError(t, WrapPathError("read", "x", nil))

	t.Run("os not exist", func(t *testing.T) {
		_, openErr := os.Open(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, openErr)

		err := WrapPathError("read", "missing", openErr)
		assert.ErrorIs(t, err, ErrNotExist)
		assert.ErrorIs(t, err, fs.ErrNotExist)

		var pathErr *PathError
		require.ErrorAs(t, err, &pathErr)
		assert.Equal(t, "missing", pathErr.Path)
	})

	t.Run("permission", func(t *testing.T) {
		err := WrapPathError("stat", "secret", fs.ErrPermission)
		assert.True(t, IsPermission(err))
		assert.ErrorIs(t, err, fs.ErrPermission)
	})

	t.Run("existing path error kept", func(t *testing.T) {
		inner := &PathError{Op: "stat", Path: "inner", Err: ErrIsDir}
		err := WrapPathError("read", "outer", inner)
		assert.Same(t, inner, err)
	})

	t.Run("other errors wrapped as is", func(t *testing.T) {
		boom := errors.New("boom")
		err := WrapPathError("read", "f", boom)
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsNotExist(err))
	})
}
