package outputfs

import "strings"

// PathFilter reports whether a path should be kept.
type PathFilter func(path Path) bool

// FilterHiddenFiles rejects paths whose final name starts with '_' or '.'.
// Data-processing jobs use such names for markers and temporary artifacts
// (e.g., "_SUCCESS", "_logs", ".part-00000.crc").
var FilterHiddenFiles PathFilter = func(path Path) bool {
	return !IsHidden(path.Name())
}

// IsHidden reports whether name starts with '_' or '.'.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}
