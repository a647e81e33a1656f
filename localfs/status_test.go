package localfs

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/Jumpaku/go-outputfs"
	fserrors "github.com/Jumpaku/go-outputfs/errors"
	"github.com/stretchr/testify/require"
)

// staleEntry is a directory entry whose file is gone by the time it is stated.
type staleEntry struct {
	name string
	err  error
}

func (e staleEntry) Name() string               { return e.name }
func (e staleEntry) IsDir() bool                { return false }
func (e staleEntry) Type() fs.FileMode          { return 0 }
func (e staleEntry) Info() (fs.FileInfo, error) { return nil, e.err }

func readEntries(t *testing.T) []fs.DirEntry {
	t.Helper()
	entries, err := fs.ReadDir(fstest.MapFS{
		"a.txt":      {Data: []byte("abc")},
		"part-00000": {Data: []byte("x")},
		"sub/b.txt":  {Data: []byte("b")},
	}, ".")
	require.NoError(t, err)
	return entries
}

func TestStatusesOf_SkipsRemovedEntries(t *testing.T) {
	entries := readEntries(t)
	entries = append(entries, staleEntry{name: "_temporary", err: &fs.PathError{Op: "lstat", Path: "_temporary", Err: fs.ErrNotExist}})

	statuses, err := statusesOf("/out", entries)
	require.NoError(t, err)
	require.Equal(t, []outputfs.FileStatus{
		{Path: "/out/a.txt", Name: "a.txt", IsFile: true, Size: 3},
		{Path: "/out/part-00000", Name: "part-00000", IsFile: true, Size: 1},
		{Path: "/out/sub", Name: "sub", IsFile: false, Size: 0},
	}, statuses)
}

func TestStatusesOf_StatFailure(t *testing.T) {
	entries := readEntries(t)
	entries = append(entries, staleEntry{name: "locked", err: &fs.PathError{Op: "lstat", Path: "locked", Err: fs.ErrPermission}})

	_, err := statusesOf("/out", entries)
	require.ErrorIs(t, err, fserrors.ErrIOError)
	require.ErrorIs(t, err, fs.ErrPermission)
}
