package local

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStorage_EndToEnd(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)

	loc, err := ls.UploadFile(context.Background(), "a/b.png", bytes.NewBufferString("hello"), "image/png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "a/b.png"), loc)

	got, err := os.ReadFile(loc)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))

	// overwrite, never append
	_, err = ls.UploadFile(context.Background(), "a/b.png", bytes.NewBufferString("hi"), "image/png")
	require.NoError(t, err)
	got, err = os.ReadFile(loc)
	require.NoError(t, err)
	require.Equal(t, "hi", string(got))
}

func TestLocalStorage_AbsoluteKeyIgnoresBase(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "nested", "out.png")
	loc, err := ls.UploadFile(context.Background(), abs, bytes.NewBufferString("x"), "image/png")
	require.NoError(t, err)
	require.Equal(t, abs, loc)

	_, err = os.Stat(abs)
	require.NoError(t, err)
}

func TestLocalStorage_EmptyBase(t *testing.T) {
	ls, err := NewLocalStorage("")
	require.NoError(t, err)
	require.Equal(t, "out.png", ls.resolve("out.png"))
	require.Equal(t, "dir/out.png", ls.resolve("dir//out.png"))
}

func TestLocalStorage_CreateError(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base)
	require.NoError(t, err)

	// a directory where the file should go
	require.NoError(t, os.MkdirAll(filepath.Join(base, "taken"), 0755))
	_, err = ls.UploadFile(context.Background(), "taken", bytes.NewBufferString("x"), "image/png")
	require.Error(t, err)
}
