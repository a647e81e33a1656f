// Package memfs implements outputfs.FileSystem in memory.
//
// Entries are listed in the order they were created. The filesystem keeps count of
// writers that have not been closed yet, and can be told to reject writes under a
// path or to run out of space, so tests can observe how callers handle failures.
package memfs

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/Jumpaku/go-outputfs"
	fserrors "github.com/Jumpaku/go-outputfs/errors"
)

// FS is an in-memory filesystem. FS is safe for concurrent use.
type FS struct {
	mu          sync.Mutex
	root        *node
	readOnly    map[string]bool
	capacity    int64
	used        int64
	openWriters int
}

type node struct {
	name     string
	dir      bool
	data     []byte
	children []*node
}

var _ outputfs.FileSystem = (*FS)(nil)

// New creates an empty filesystem containing only the root directory "/".
// The capacity is unlimited until SetCapacity is called.
func New() *FS {
	return &FS{
		root:     &node{dir: true},
		readOnly: map[string]bool{},
		capacity: -1,
	}
}

// MkdirAll creates the directory at p along with any missing parents.
func (f *FS) MkdirAll(p outputfs.Path) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, err = f.mkdirAll(splitPath(p))
	return err
}

// WriteFile stores data at p, creating missing parents and replacing existing content.
// WriteFile ignores read-only marks and capacity.
func (f *FS) WriteFile(p outputfs.Path, data []byte) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, err := f.createNode(p, true)
	if err != nil {
		return err
	}
	f.used += int64(len(data)) - int64(len(n.data))
	n.data = append([]byte{}, data...)
	return nil
}

// ReadFile returns a copy of the content of the file at p.
func (f *FS) ReadFile(p outputfs.Path) (data []byte, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, found := f.lookup(splitPath(p))
	if !found {
		return nil, fserrors.NewNotFoundError(fmt.Sprintf("file '%s' not found", p), nil)
	}
	if n.dir {
		return nil, fserrors.NewIOError(fmt.Sprintf("'%s' is a directory", p), fs.ErrInvalid)
	}
	return append([]byte{}, n.data...), nil
}

// SetWritable marks the subtree rooted at p as writable or read-only for Create.
func (f *FS) SetWritable(p outputfs.Path, writable bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := cleanPath(p)
	if writable {
		delete(f.readOnly, key)
	} else {
		f.readOnly[key] = true
	}
}

// SetCapacity limits the total number of bytes stored. A negative capacity means unlimited.
func (f *FS) SetCapacity(capacity int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.capacity = capacity
}

// OpenWriters returns the number of writers returned by Create that have not been closed.
func (f *FS) OpenWriters() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.openWriters
}

// ListStatus returns the entries of dir in creation order.
// If dir is a regular file, the status of that file alone is returned.
// Returned paths keep the form of dir as given, so listing "out" yields "out/a".
func (f *FS) ListStatus(dir outputfs.Path) (statuses []outputfs.FileStatus, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n, found := f.lookup(splitPath(dir))
	if !found {
		return nil, fserrors.NewNotFoundError(fmt.Sprintf("directory '%s' not found", dir), fs.ErrNotExist)
	}
	if !n.dir {
		return []outputfs.FileStatus{newFileStatus(dir, n)}, nil
	}
	for _, child := range n.children {
		statuses = append(statuses, newFileStatus(outputfs.Path(path.Join(string(dir), child.name)), child))
	}
	return statuses, nil
}

// Create opens p for writing, creating missing parent directories.
// With overwrite, an existing file is truncated before Create returns.
func (f *FS) Create(p outputfs.Path, overwrite bool) (w io.WriteCloser, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isReadOnly(p) {
		return nil, fserrors.NewIOError(fmt.Sprintf("cannot create '%s'", p), fserrors.ErrNotWritable)
	}
	n, err := f.createNode(p, overwrite)
	if err != nil {
		return nil, err
	}
	f.used -= int64(len(n.data))
	n.data = nil
	f.openWriters++
	return &writer{fs: f, node: n, path: p}, nil
}

func (f *FS) createNode(p outputfs.Path, overwrite bool) (n *node, err error) {
	parts := splitPath(p)
	if len(parts) == 0 {
		return nil, fserrors.NewIOError(fmt.Sprintf("cannot create '%s'", p), fs.ErrInvalid)
	}
	parent, err := f.mkdirAll(parts[:len(parts)-1])
	if err != nil {
		return nil, err
	}
	name := parts[len(parts)-1]
	for _, child := range parent.children {
		if child.name != name {
			continue
		}
		if child.dir {
			return nil, fserrors.NewIOError(fmt.Sprintf("'%s' is a directory", p), fs.ErrInvalid)
		}
		if !overwrite {
			return nil, fmt.Errorf("file '%s' exists: %w", p, fserrors.ErrAlreadyExists)
		}
		return child, nil
	}
	n = &node{name: name}
	parent.children = append(parent.children, n)
	return n, nil
}

func (f *FS) mkdirAll(parts []string) (n *node, err error) {
	n = f.root
	for i, part := range parts {
		var next *node
		for _, child := range n.children {
			if child.name == part {
				next = child
				break
			}
		}
		if next == nil {
			next = &node{name: part, dir: true}
			n.children = append(n.children, next)
		}
		if !next.dir {
			return nil, fserrors.NewIOError(fmt.Sprintf("'/%s' is not a directory", strings.Join(parts[:i+1], "/")), fs.ErrInvalid)
		}
		n = next
	}
	return n, nil
}

func (f *FS) lookup(parts []string) (n *node, found bool) {
	n = f.root
	for _, part := range parts {
		if !n.dir {
			return nil, false
		}
		var next *node
		for _, child := range n.children {
			if child.name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		n = next
	}
	return n, true
}

func (f *FS) isReadOnly(p outputfs.Path) bool {
	for current := cleanPath(p); ; current = path.Dir(current) {
		if f.readOnly[current] {
			return true
		}
		if current == "/" {
			return false
		}
	}
}

type writer struct {
	fs     *FS
	node   *node
	path   outputfs.Path
	closed bool
}

func (w *writer) Write(b []byte) (n int, err error) {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()

	if w.closed {
		return 0, fserrors.NewIOError(fmt.Sprintf("write '%s'", w.path), fs.ErrClosed)
	}
	n = len(b)
	if w.fs.capacity >= 0 && w.fs.used+int64(n) > w.fs.capacity {
		n = int(max(w.fs.capacity-w.fs.used, 0))
		err = fserrors.NewIOError(fmt.Sprintf("no space left to write '%s'", w.path), io.ErrShortWrite)
	}
	w.node.data = append(w.node.data, b[:n]...)
	w.fs.used += int64(n)
	return n, err
}

func (w *writer) Close() error {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()

	if w.closed {
		return fserrors.NewIOError(fmt.Sprintf("close '%s'", w.path), fs.ErrClosed)
	}
	w.closed = true
	w.fs.openWriters--
	return nil
}

func newFileStatus(p outputfs.Path, n *node) outputfs.FileStatus {
	return outputfs.FileStatus{
		Path:   p,
		Name:   n.name,
		IsFile: !n.dir,
		Size:   int64(len(n.data)),
	}
}

func cleanPath(p outputfs.Path) string {
	return path.Clean("/" + string(p))
}

func splitPath(p outputfs.Path) (parts []string) {
	for _, part := range strings.Split(cleanPath(p), "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
