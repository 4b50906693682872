// Package pathutil resolves topic source paths against a project root.
//
// All functions are pure path logic; none of them touch the filesystem. Relative
// paths returned from this package always use forward slashes so that wiki links
// and source URLs are identical on every platform.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Resolve returns the absolute, cleaned form of candidate interpreted relative to root.
// An absolute candidate is returned cleaned and otherwise unchanged.
func Resolve(root, candidate string) string {
	if filepath.IsAbs(candidate) {
		return filepath.Clean(candidate)
	}
	return filepath.Join(root, filepath.FromSlash(candidate))
}

// RelativeTo returns absPath relative to root in canonical form: forward slashes,
// no leading "./". Paths outside root keep their "../" segments.
func RelativeTo(root, absPath string) string {
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		// Only possible when one path is relative and the other absolute,
		// or on different volumes; fall back to the input.
		rel = absPath
	}
	rel = filepath.ToSlash(rel)
	return strings.TrimPrefix(rel, "./")
}

// IsContainedIn reports whether path lies strictly inside root. The root itself
// is not considered contained, nor is a sibling sharing a name prefix
// ("/book-other" is not inside "/book").
func IsContainedIn(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsSingleSegment reports whether name is a bare directory name: not empty, not
// absolute, no separators of either platform flavor, and not "." or "..".
func IsSingleSegment(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name
}
