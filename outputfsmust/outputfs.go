// Package outputfsmust wraps the outputfs package with panic-based error handling.
//
// It provides the same helpers as the root-level outputfs package, but instead of
// returning errors, all exported functions panic on failure. This suits test
// harnesses where any filesystem failure should abort the test immediately.
package outputfsmust

import (
	"github.com/Jumpaku/go-outputfs"
)

// ListOutputFiles returns the regular files directly inside dir, skipping entries
// whose name starts with '_' or '.'. The order is the order reported by fsys.
//
// It panics if listing fails, including when dir does not exist
// (the underlying error would be ErrNotFound).
func ListOutputFiles(fsys outputfs.FileSystem, dir outputfs.Path) (files []outputfs.Path) {
	return must1(outputfs.ListOutputFiles(fsys, dir))
}

// ListFiles returns the regular files directly inside dir that are accepted by filter.
//
// It panics if listing fails.
func ListFiles(fsys outputfs.FileSystem, dir outputfs.Path, filter outputfs.PathFilter) (files []outputfs.Path) {
	return must1(outputfs.ListFiles(fsys, dir, filter))
}

// CreateFile creates the file at path, replacing any existing content, and writes
// each line followed by '\n'.
//
// It panics if creating, writing or closing the file fails.
func CreateFile(fsys outputfs.FileSystem, path outputfs.Path, lines ...string) {
	must0(outputfs.CreateFile(fsys, path, lines...))
}

// JoinPathFragments concatenates paths, appending '/' after each fragment that does not
// already end with one.
//
// It panics if any fragment is empty (the underlying error would be ErrInvalidPath).
func JoinPathFragments(paths ...string) (joined string) {
	return must1(outputfs.JoinPathFragments(paths...))
}
