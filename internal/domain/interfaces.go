package domain

// FileSystem is the virtual file tree a lint pass runs against.
// Paths are package-relative, slash-separated, and usually carry the
// "./" prefix they have inside the manifest. Implementations must be
// safe for concurrent readers; a pass never writes.
type FileSystem interface {
	// ReadFile returns the file contents, or an error satisfying
	// os.IsNotExist semantics when the path is absent
	ReadFile(path string) ([]byte, error)
	// ReadDir returns the child names of a directory
	ReadDir(path string) ([]string, error)
	// Exists reports whether the path refers to a file or directory
	Exists(path string) bool
	// IsDir reports whether the path refers to a directory
	IsDir(path string) bool
}
