// Package hdfsfs implements outputfs.FileSystem on HDFS.
package hdfsfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	osuser "os/user"
	"path"

	"github.com/Jumpaku/go-outputfs"
	fserrors "github.com/Jumpaku/go-outputfs/errors"
	"github.com/colinmarc/hdfs/v2"
)

type FS struct {
	client *hdfs.Client
}

var _ outputfs.FileSystem = (*FS)(nil)

// New creates an FS using the given client.
func New(client *hdfs.Client) *FS {
	return &FS{client: client}
}

// Dial connects to the namenode at address as user.
// An empty user falls back to HADOOP_USER_NAME, then to the current OS user.
func Dial(address, user string) (*FS, error) {
	opts := hdfs.ClientOptions{Addresses: []string{address}, User: user}
	if opts.User == "" {
		opts.User = os.Getenv("HADOOP_USER_NAME")
	}
	if opts.User == "" {
		if u, err := osuser.Current(); err == nil {
			opts.User = u.Username
		}
	}
	client, err := hdfs.NewClient(opts)
	if err != nil {
		return nil, fserrors.NewAPIError(fmt.Sprintf("failed to connect to namenode '%s'", address), err)
	}
	return New(client), nil
}

// Close closes the connection to the namenode.
func (f *FS) Close() error {
	return f.client.Close()
}

// ListStatus returns the entries of dir sorted by name.
// If dir is a regular file, the status of that file alone is returned.
func (f *FS) ListStatus(dir outputfs.Path) (statuses []outputfs.FileStatus, err error) {
	info, err := f.client.Stat(string(dir))
	if err != nil {
		return nil, newPathError("failed to stat", dir, err)
	}
	if !info.IsDir() {
		return []outputfs.FileStatus{newFileStatus(dir, info)}, nil
	}
	infos, err := f.client.ReadDir(string(dir))
	if err != nil {
		return nil, newPathError("failed to read directory", dir, err)
	}
	for _, info := range infos {
		statuses = append(statuses, newFileStatus(outputfs.Path(path.Join(string(dir), info.Name())), info))
	}
	return statuses, nil
}

// Create opens p for writing, creating missing parent directories.
// With overwrite, an existing file is removed before the new one is created.
func (f *FS) Create(p outputfs.Path, overwrite bool) (w io.WriteCloser, err error) {
	if err := f.client.MkdirAll(path.Dir(string(p)), 0o755); err != nil {
		return nil, newPathError("failed to create parent directories of", p, err)
	}
	if overwrite {
		if err := f.client.Remove(string(p)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, newPathError("failed to remove", p, err)
		}
	}
	fw, err := f.client.Create(string(p))
	if err != nil {
		return nil, newPathError("failed to create", p, err)
	}
	return fw, nil
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
	case errors.Is(cause, fs.ErrPermission):
		return fserrors.NewIOError(msg, errors.Join(fserrors.ErrNotWritable, cause))
	default:
		return fserrors.NewIOError(msg, cause)
	}
}
