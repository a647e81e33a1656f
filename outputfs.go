// Package outputfs provides helpers for integration tests that inspect and prepare
// files on a hierarchical filesystem, such as the output directory of a data-processing job.
//
// The filesystem itself is supplied by the caller through the FileSystem interface.
// Backends for memory, the local disk, Google Drive and HDFS are provided by the
// memfs, localfs, drivefs and hdfsfs packages.
package outputfs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	fserrors "github.com/Jumpaku/go-outputfs/errors"
)

// PathSeparator is the separator inserted by JoinPathFragments.
const PathSeparator = '/'

// FileSystem is the capability the helpers are built on.
type FileSystem interface {
	// ListStatus returns the direct entries of dir in the order the filesystem reports them.
	// It fails with an error matching ErrNotFound if dir does not exist.
	ListStatus(dir Path) (statuses []FileStatus, err error)
	// Create opens path for writing. If overwrite is true, existing content is replaced.
	// If overwrite is false and path exists, it fails with an error matching ErrAlreadyExists.
	Create(path Path, overwrite bool) (w io.WriteCloser, err error)
}

// ListOutputFiles returns the regular files directly inside dir, skipping hidden entries.
// The order is the order reported by fsys. An empty directory yields an empty slice.
func ListOutputFiles(fsys FileSystem, dir Path) (files []Path, err error) {
	return ListFiles(fsys, dir, FilterHiddenFiles)
}

// ListFiles returns the regular files directly inside dir that are accepted by filter.
// A nil filter accepts every entry. Subdirectories are never descended into.
func ListFiles(fsys FileSystem, dir Path, filter PathFilter) (files []Path, err error) {
	statuses, err := fsys.ListStatus(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory '%s': %w", dir, err)
	}
	log := currentLogger()
	files = []Path{}
	for _, status := range statuses {
		if filter != nil && !filter(status.Path) {
			continue
		}
		log.Debug("found output file",
			slog.String("path", string(status.Path)),
			slog.Int64("size", status.Size),
			slog.Bool("isFile", status.IsFile))
		if status.IsFile {
			files = append(files, status.Path)
		}
	}
	return files, nil
}

// CreateFile creates the file at path, replacing any existing content, and writes each line
// UTF-8 encoded followed by '\n'. Invalid UTF-8 sequences are replaced with U+FFFD.
// The stream returned by fsys is closed on every return path. If writing fails midway,
// the lines written so far may remain on the filesystem.
func CreateFile(fsys FileSystem, path Path, lines ...string) (err error) {
	w, err := fsys.Create(path, true)
	if err != nil {
		return fmt.Errorf("failed to create file '%s': %w", path, err)
	}
	defer func() {
		closeErr := w.Close()
		if closeErr != nil {
			closeErr = fmt.Errorf("failed to close file '%s': %w", path, closeErr)
		}
		err = errors.Join(err, closeErr)
	}()

	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(strings.ToValidUTF8(line, "\uFFFD")); err != nil {
			return fmt.Errorf("failed to write file '%s': %w", path, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write file '%s': %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}

// JoinPathFragments concatenates paths, appending PathSeparator after each fragment that
// does not already end with one. The result ends with PathSeparator unless no fragment is given.
// It fails with an error matching ErrInvalidPath if any fragment is empty.
func JoinPathFragments(paths ...string) (joined string, err error) {
	var b strings.Builder
	for i, p := range paths {
		if p == "" {
			return "", fmt.Errorf("fragment %d is empty: %w", i, fserrors.ErrInvalidPath)
		}
		b.WriteString(p)
		if p[len(p)-1] != PathSeparator {
			b.WriteByte(PathSeparator)
		}
	}
	return b.String(), nil
}
