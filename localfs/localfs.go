// Package localfs implements outputfs.FileSystem on the local disk.
package localfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/Jumpaku/go-outputfs"
	fserrors "github.com/Jumpaku/go-outputfs/errors"
)

// FS resolves slash-separated paths against a base directory on the local disk.
type FS struct {
	root string
}

var _ outputfs.FileSystem = (*FS)(nil)

// New creates an FS rooted at root. Paths passed to FS are interpreted relative to root,
// so "/out" refers to root/out. An empty root uses paths as they are.
func New(root string) *FS {
	return &FS{root: root}
}

// ListStatus returns the entries of dir sorted by name.
// If dir is a regular file, the status of that file alone is returned.
func (f *FS) ListStatus(dir outputfs.Path) (statuses []outputfs.FileStatus, err error) {
	name := f.resolve(dir)
	info, err := os.Stat(name)
	if err != nil {
		return nil, newPathError("failed to stat", dir, err)
	}
	if !info.IsDir() {
		return []outputfs.FileStatus{newFileStatus(dir, info)}, nil
	}

	entries, err := os.ReadDir(name)
	if err != nil {
		return nil, newPathError("failed to read directory", dir, err)
	}
	return statusesOf(dir, entries)
}

// statusesOf returns the statuses of the entries read from dir.
// Entries removed between reading dir and stating them are skipped.
func statusesOf(dir outputfs.Path, entries []fs.DirEntry) (statuses []outputfs.FileStatus, err error) {
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, newPathError("failed to stat", dir, err)
		}
		statuses = append(statuses, newFileStatus(outputfs.Path(path.Join(string(dir), entry.Name())), info))
	}
	return statuses, nil
}

// Create opens p for writing, creating missing parent directories.
func (f *FS) Create(p outputfs.Path, overwrite bool) (w io.WriteCloser, err error) {
	name := f.resolve(p)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			err = errors.Join(fserrors.ErrNotWritable, err)
		}
		return nil, newPathError("failed to create parent directories of", p, err)
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag |= os.O_EXCL
	}
	file, err := os.OpenFile(name, flag, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			err = errors.Join(fserrors.ErrNotWritable, err)
		}
		return nil, newPathError("failed to create", p, err)
	}
	return file, nil
}

func (f *FS) resolve(p outputfs.Path) string {
	if f.root == "" {
		return filepath.FromSlash(string(p))
	}
	return filepath.Join(f.root, filepath.FromSlash(path.Clean("/"+string(p))))
}

func newFileStatus(p outputfs.Path, info fs.FileInfo) outputfs.FileStatus {
	return outputfs.FileStatus{
		Path:   p,
		Name:   info.Name(),
		IsFile: info.Mode().IsRegular(),
		Size:   info.Size(),
	}
}

func newPathError(msg string, p outputfs.Path, cause error) error {
	msg = fmt.Sprintf("%s '%s'", msg, p)
	switch {
	case errors.Is(cause, fs.ErrNotExist):
		return fserrors.NewNotFoundError(msg, cause)
	case errors.Is(cause, fs.ErrExist):
		return fmt.Errorf("%s: %w: %w", msg, fserrors.ErrAlreadyExists, cause)
	default:
		return fserrors.NewIOError(msg, cause)
	}
}
