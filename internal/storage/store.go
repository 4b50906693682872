// Package storage provides the filesystem capabilities wikibook needs: reading
// topics, writing generated pages, and copying or removing asset directories.
//
// Store is backed by a go-billy filesystem so the same code runs against the real
// disk (NewOS) and an in-memory tree (NewMemory) in tests. Every error returned
// from a Store is classified as a filesystem error carrying the offending path.
package storage

import "io/fs"

// Store is the filesystem capability consumed by the book loader and builder.
// Paths are absolute host paths.
type Store interface {
	// ReadTextFile returns the full content of a file.
	ReadTextFile(path string) (string, error)

	// WriteTextFile creates or truncates a file, creating parent directories.
	WriteTextFile(path, text string) error

	// EnsureDir creates a directory and any missing parents.
	EnsureDir(path string) error

	// CopyDir recursively copies the directory tree at src to dst.
	CopyDir(src, dst string) error

	// RemoveAll removes path and anything below it. Missing paths are not an error.
	RemoveAll(path string) error

	// RemoveFile removes a single file.
	RemoveFile(path string) error

	// Stat returns file info, or an error satisfying errors.Is(err, fs.ErrNotExist).
	Stat(path string) (fs.FileInfo, error)

	// HasPrefix reports whether the file's content starts with prefix, reading
	// no more than len(prefix) bytes.
	HasPrefix(path string, prefix []byte) (bool, error)

	// WalkFiles calls fn for every regular file below root, in lexical order.
	WalkFiles(root string, fn func(path string) error) error
}
