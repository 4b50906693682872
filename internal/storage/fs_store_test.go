package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
)

func TestFSStore_ReadWrite(t *testing.T) {
	s := NewMemory()

	require.NoError(t, s.WriteTextFile("/out/deep/Home.md", "hello"))
	text, err := s.ReadTextFile("/out/deep/Home.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)

	require.NoError(t, s.WriteTextFile("/out/deep/Home.md", "hi"))
	text, err = s.ReadTextFile("/out/deep/Home.md")
	require.NoError(t, err)
	assert.Equal(t, "hi", text, "write must truncate")
}

func TestFSStore_ReadMissingIsClassified(t *testing.T) {
	_, err := NewMemory().ReadTextFile("/nope.md")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	path, _ := classified.Context().GetString("path")
	assert.Equal(t, "/nope.md", path)
}

func TestFSStore_StatMissing(t *testing.T) {
	_, err := NewMemory().Stat("/missing")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFSStore_CopyAndRemoveDir(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.WriteTextFile("/book/img/logo.png", "png"))
	require.NoError(t, s.WriteTextFile("/book/img/icons/a.svg", "svg"))

	require.NoError(t, s.CopyDir("/book/img", "/out/img"))

	got, err := s.ReadTextFile("/out/img/icons/a.svg")
	require.NoError(t, err)
	assert.Equal(t, "svg", got)

	require.NoError(t, s.RemoveAll("/out/img"))
	_, err = s.Stat("/out/img")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	// Removing something that is already gone is fine.
	require.NoError(t, s.RemoveAll("/out/img"))
}

func TestFSStore_CopyDirRejectsFile(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.WriteTextFile("/book/img", "not a dir"))
	err := s.CopyDir("/book/img", "/out/img")
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestFSStore_HasPrefix(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.WriteTextFile("/out/a.md", "<!-- GENERATED OUTPUT -->\n\nbody"))
	require.NoError(t, s.WriteTextFile("/out/b.md", "<!--"))
	require.NoError(t, s.WriteTextFile("/out/c.md", "hand written"))

	marker := []byte("<!-- GENERATED OUTPUT -->")
	for path, want := range map[string]bool{"/out/a.md": true, "/out/b.md": false, "/out/c.md": false} {
		got, err := s.HasPrefix(path, marker)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
}

func TestFSStore_WalkFiles(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.WriteTextFile("/out/b.md", "b"))
	require.NoError(t, s.WriteTextFile("/out/a.md", "a"))
	require.NoError(t, s.WriteTextFile("/out/sub/c.md", "c"))

	var seen []string
	require.NoError(t, s.WalkFiles("/out", func(path string) error {
		seen = append(seen, filepath.ToSlash(path))
		return nil
	}))
	assert.Equal(t, []string{"/out/a.md", "/out/b.md", "/out/sub/c.md"}, seen)

	require.NoError(t, s.WalkFiles("/missing", func(string) error {
		t.Fatal("walk of a missing root must not visit anything")
		return nil
	}))
}

func TestFSStore_OnDisk(t *testing.T) {
	dir := t.TempDir()
	s := NewOS()

	target := filepath.Join(dir, "nested", "page.md")
	require.NoError(t, s.WriteTextFile(target, "on disk"))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "on disk", string(data))

	require.NoError(t, s.RemoveFile(target))
	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}
