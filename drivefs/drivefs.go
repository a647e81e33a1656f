// Package drivefs implements outputfs.FileSystem on Google Drive.
//
// Paths are resolved by name from a root folder, so "/out/part-00000" is the file named
// "part-00000" in the folder "out" directly under the root. Google Drive allows several
// entries with the same name in one folder; such ambiguous paths are rejected with
// ErrMultipleMatches.
package drivefs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/Jumpaku/go-outputfs"
	fserrors "github.com/Jumpaku/go-outputfs/errors"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

type DriveFS struct {
	service *drive.Service
	rootID  string
}

var _ outputfs.FileSystem = (*DriveFS)(nil)

// New creates a new DriveFS resolving paths from the folder with the given rootID.
func New(service *drive.Service, rootID string) *DriveFS {
	return &DriveFS{service: service, rootID: rootID}
}

// ListStatus lists the files and folders in the folder at dir, excluding trashed items.
// If dir is not a folder, the status of dir alone is returned.
func (s *DriveFS) ListStatus(dir outputfs.Path) (statuses []outputfs.FileStatus, err error) {
	parts, err := validateAndSplitPath(string(dir))
	if err != nil {
		return nil, fmt.Errorf("path validation failed: %w", err)
	}
	file, err := s.resolve(parts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory '%s': %w", dir, err)
	}
	if !isFolder(file) {
		return []outputfs.FileStatus{newFileStatus(outputfs.Path(joinParts(parts)), file)}, nil
	}

	files, err := findAllIn(s.service, file.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory contents: %w", err)
	}
	for _, f := range files {
		statuses = append(statuses, newFileStatus(outputfs.Path(path.Join(joinParts(parts), f.Name)), f))
	}
	return statuses, nil
}

// Create opens the file at p for writing. The parent folder must exist.
// The file is created if it does not exist. Written data replaces the whole content
// of the file when the returned writer is closed.
func (s *DriveFS) Create(p outputfs.Path, overwrite bool) (w io.WriteCloser, err error) {
	parts, err := validateAndSplitPath(string(p))
	if err != nil {
		return nil, fmt.Errorf("path validation failed: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("cannot create root folder: %w", fserrors.ErrInvalidPath)
	}
	parent, err := s.resolve(parts[:len(parts)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parent of '%s': %w", p, err)
	}
	if !isFolder(parent) {
		return nil, fserrors.NewNotFoundError(fmt.Sprintf("parent of '%s' is not a folder", p), nil)
	}

	name := parts[len(parts)-1]
	files, err := findAllByNameIn(s.service, parent.Id, name)
	if err != nil {
		return nil, fmt.Errorf("failed to find file '%s': %w", p, err)
	}
	var fileID string
	switch len(files) {
	case 0:
		file, err := createFileIn(s.service, parent.Id, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create file '%s': %w", p, err)
		}
		fileID = file.Id
	case 1:
		if !overwrite {
			return nil, fmt.Errorf("file '%s' exists: %w", p, fserrors.ErrAlreadyExists)
		}
		if !isRegularFile(files[0]) {
			return nil, fserrors.NewIOError(fmt.Sprintf("'%s' is not a regular file", p), fserrors.ErrNotWritable)
		}
		fileID = files[0].Id
	default:
		return nil, fmt.Errorf("multiple files '%s' exist: %w", p, fserrors.ErrMultipleMatches)
	}
	return &uploadWriter{service: s.service, fileID: fileID}, nil
}

func (s *DriveFS) resolve(parts []string) (file *drive.File, err error) {
	file, found, err := findByID(s.service, s.rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to find root folder: %w", err)
	}
	if !found {
		return nil, fserrors.NewNotFoundError(fmt.Sprintf("root folder '%s' not found", s.rootID), nil)
	}
	for i, part := range parts {
		if !isFolder(file) {
			return nil, fserrors.NewNotFoundError(fmt.Sprintf("'%s' is not a folder", joinParts(parts[:i])), nil)
		}
		files, err := findAllByNameIn(s.service, file.Id, part)
		if err != nil {
			return nil, fmt.Errorf("failed to find '%s' in '%s': %w", part, file.Id, err)
		}
		switch len(files) {
		case 0:
			return nil, fserrors.NewNotFoundError(fmt.Sprintf("'%s' not found", joinParts(parts[:i+1])), nil)
		case 1:
			file = files[0]
		default:
			return nil, fmt.Errorf("multiple entries '%s' exist: %w", joinParts(parts[:i+1]), fserrors.ErrMultipleMatches)
		}
	}
	return file, nil
}

func joinParts(parts []string) string {
	return "/" + strings.Join(parts, "/")
}

func validateAndSplitPath(p string) (parts []string, err error) {
	if p == "" {
		return nil, fmt.Errorf("empty path: %w", fserrors.ErrInvalidPath)
	}
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("path must be absolute and start with '/': %w", fserrors.ErrInvalidPath)
	}

	for _, part := range strings.Split(p, "/") {
		if part == "." || part == ".." {
			return nil, fmt.Errorf("relative path components are not allowed: %w", fserrors.ErrInvalidPath)
		}
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}

	return parts, nil
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}

const (
	driveFileFields  = "parents,id,name,mimeType,size"
	driveFilesFields = "nextPageToken,files(parents,id,name,mimeType,size)"
)

func newFileStatus(p outputfs.Path, f *drive.File) outputfs.FileStatus {
	return outputfs.FileStatus{
		Path:   p,
		Name:   f.Name,
		IsFile: isRegularFile(f),
		Size:   f.Size,
	}
}

func queryFiles(s *drive.Service, query string) (results []*drive.File, err error) {
	err = s.Files.List().
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Q(query).
		Fields(driveFilesFields).
		Pages(context.Background(), func(list *drive.FileList) error {
			results = append(results, list.Files...)
			return nil
		})
	if err != nil {
		return nil, fserrors.NewAPIError("failed to query files", err)
	}
	return results, nil
}

func findAllByNameIn(s *drive.Service, parentID string, name string) (files []*drive.File, err error) {
	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", escapeQuery(name), escapeQuery(parentID))
	return queryFiles(s, q)
}

func findAllIn(s *drive.Service, parentID string) (files []*drive.File, err error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(parentID))
	return queryFiles(s, q)
}

func findByID(s *drive.Service, fileID string) (file *drive.File, found bool, err error) {
	file, err = s.Files.Get(fileID).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			if gErr.Code == http.StatusNotFound {
				return nil, false, nil
			}
		}
		return nil, false, fserrors.NewAPIError("failed to get files", err)
	}
	return file, true, nil
}

func createFileIn(s *drive.Service, parentID, name string) (file *drive.File, err error) {
	file, err = s.Files.Create(&drive.File{
		Name:    name,
		Parents: []string{parentID},
	}).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Do()
	if err != nil {
		return nil, newWriteError("failed to create file", err)
	}
	return file, nil
}

func uploadFile(s *drive.Service, fileID string, data []byte) (err error) {
	_, err = s.Files.Update(fileID, &drive.File{}).
		SupportsAllDrives(true).
		Media(bytes.NewReader(data)).
		Do()
	if err != nil {
		return newWriteError("failed to upload file", err)
	}
	return nil
}

// newWriteError reports a failed write request. Authorization failures also match ErrNotWritable.
func newWriteError(msg string, err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && (gErr.Code == http.StatusUnauthorized || gErr.Code == http.StatusForbidden) {
		err = errors.Join(fserrors.ErrNotWritable, err)
	}
	return fserrors.NewAPIError(msg, err)
}
