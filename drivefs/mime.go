package drivefs

import (
	"strings"

	"google.golang.org/api/drive/v3"
)

const (
	mimeTypeGoogleAppFolder   = "application/vnd.google-apps.folder"
	mimeTypeGoogleAppShortcut = "application/vnd.google-apps.shortcut"
	mimeTypePrefixGoogleApp   = "application/vnd.google-apps."
)

func isFolder(f *drive.File) bool {
	return f.MimeType == mimeTypeGoogleAppFolder
}

// isRegularFile reports whether f holds downloadable content.
// Folders, shortcuts and Google Apps documents are not regular files.
func isRegularFile(f *drive.File) bool {
	return !strings.HasPrefix(f.MimeType, mimeTypePrefixGoogleApp)
}
