package outputfs

import "strings"

// Path represents a location in a hierarchical filesystem.
// Paths use forward slashes as separators (e.g., "/jobs/output/part-m-00000").
// The meaning of a Path beyond that is left to the FileSystem that receives it.
type Path string

// Name returns the final name component of the path.
// A single trailing '/' is ignored, so Path("/a/b/").Name() is "b".
func (p Path) Name() string {
	s := strings.TrimSuffix(string(p), "/")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func (p Path) String() string {
	return string(p)
}
