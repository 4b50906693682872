package storage

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	ferrors "git.home.luguber.info/inful/wikibook/internal/foundation/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FSStore implements Store on top of a billy.Filesystem.
type FSStore struct {
	fs billy.Filesystem
}

// New wraps an arbitrary billy filesystem.
func New(fsys billy.Filesystem) *FSStore {
	return &FSStore{fs: fsys}
}

// NewOS returns a store operating on the host filesystem.
func NewOS() *FSStore {
	return New(osfs.New(""))
}

// NewMemory returns a store backed by an empty in-memory filesystem.
func NewMemory() *FSStore {
	return New(memfs.New())
}

// Filesystem exposes the underlying billy filesystem.
func (s *FSStore) Filesystem() billy.Filesystem {
	return s.fs
}

func ioError(err error, op, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, op).
		WithSeverity(ferrors.SeverityFatal).
		WithContext("path", path).
		Build()
}

// ReadTextFile implements Store.
func (s *FSStore) ReadTextFile(path string) (string, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return "", ioError(err, "read file", path)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", ioError(err, "read file", path)
	}
	return string(data), nil
}

// WriteTextFile implements Store.
func (s *FSStore) WriteTextFile(path, text string) error {
	if err := s.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := util.WriteFile(s.fs, path, []byte(text), filePerm); err != nil {
		return ioError(err, "write file", path)
	}
	return nil
}

// EnsureDir implements Store.
func (s *FSStore) EnsureDir(path string) error {
	if err := s.fs.MkdirAll(path, dirPerm); err != nil {
		return ioError(err, "create directory", path)
	}
	return nil
}

// CopyDir implements Store. File modes are preserved.
func (s *FSStore) CopyDir(src, dst string) error {
	info, err := s.fs.Stat(src)
	if err != nil {
		return ioError(err, "copy directory", src)
	}
	if !info.IsDir() {
		return ioError(errors.New("not a directory"), "copy directory", src)
	}
	if err := s.fs.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return ioError(err, "create directory", dst)
	}

	entries, err := s.fs.ReadDir(src)
	if err != nil {
		return ioError(err, "read directory", src)
	}
	for _, entry := range entries {
		srcPath := s.fs.Join(src, entry.Name())
		dstPath := s.fs.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := s.CopyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := s.copyFile(srcPath, dstPath, entry.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

func (s *FSStore) copyFile(src, dst string, perm os.FileMode) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return ioError(err, "copy file", src)
	}
	defer func() { _ = in.Close() }()

	out, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return ioError(err, "copy file", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return ioError(err, "copy file", dst)
	}
	if err := out.Close(); err != nil {
		return ioError(err, "copy file", dst)
	}
	return nil
}

// RemoveAll implements Store.
func (s *FSStore) RemoveAll(path string) error {
	if err := util.RemoveAll(s.fs, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ioError(err, "remove directory", path)
	}
	return nil
}

// RemoveFile implements Store.
func (s *FSStore) RemoveFile(path string) error {
	if err := s.fs.Remove(path); err != nil {
		return ioError(err, "remove file", path)
	}
	return nil
}

// Stat implements Store. Not-exist errors are returned unwrapped so callers can
// distinguish them with errors.Is.
func (s *FSStore) Stat(path string) (fs.FileInfo, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, ioError(err, "stat", path)
	}
	return info, nil
}

// HasPrefix implements Store.
func (s *FSStore) HasPrefix(path string, prefix []byte) (bool, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return false, ioError(err, "read file", path)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, len(prefix))
	if _, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, ioError(err, "read file", path)
	}
	return bytes.Equal(buf, prefix), nil
}

// WalkFiles implements Store. A missing root walks nothing.
func (s *FSStore) WalkFiles(root string, fn func(path string) error) error {
	if _, err := s.fs.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	err := util.Walk(s.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		return fn(path)
	})
	if err != nil && !ferrors.IsClassified(err) {
		return ioError(err, "walk directory", root)
	}
	return err
}
