package outputfs

// FileStatus holds the attributes reported by a FileSystem for a single entry.
type FileStatus struct {
	Path   Path
	Name   string
	IsFile bool
	Size   int64
}

// IsDir reports whether the entry is not a regular file.
func (s FileStatus) IsDir() bool {
	return !s.IsFile
}
