// Package vfs provides the virtual file tree implementations a lint
// pass runs against: an OS directory rooted at the package dir and an
// in-memory tree for tests and embedded callers. Both normalize the
// "./"-prefixed package-relative paths used throughout the manifest.
package vfs

import (
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/packlint/packlint/internal/domain"
)

// FS implements domain.FileSystem over an afero filesystem
type FS struct {
	fs afero.Fs
}

var _ domain.FileSystem = (*FS)(nil)

// NewOSDir returns a read-only file system rooted at dir
func NewOSDir(dir string) *FS {
	base := afero.NewBasePathFs(afero.NewOsFs(), dir)
	return &FS{fs: afero.NewReadOnlyFs(base)}
}

// NewMemory returns an in-memory file system seeded with the given
// files, keyed by package-relative path
func NewMemory(files map[string]string) *FS {
	mem := afero.NewMemMapFs()
	for p, content := range files {
		abs := normalize(p)
		_ = mem.MkdirAll(path.Dir(abs), 0o755)
		_ = afero.WriteFile(mem, abs, []byte(content), 0o644)
	}
	return &FS{fs: mem}
}

// ReadFile returns the contents of a package-relative path
func (f *FS) ReadFile(p string) ([]byte, error) {
	return afero.ReadFile(f.fs, normalize(p))
}

// ReadDir returns the child names of a directory
func (f *FS) ReadDir(p string) ([]string, error) {
	infos, err := afero.ReadDir(f.fs, normalize(p))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name()
	}
	return names, nil
}

// Exists reports whether the path exists
func (f *FS) Exists(p string) bool {
	_, err := f.fs.Stat(normalize(p))
	return err == nil || !os.IsNotExist(err)
}

// IsDir reports whether the path is a directory
func (f *FS) IsDir(p string) bool {
	info, err := f.fs.Stat(normalize(p))
	return err == nil && info.IsDir()
}

// normalize maps a manifest-style path ("./dist/index.js", ".", "dist")
// onto the rooted afero namespace
func normalize(p string) string {
	p = path.Clean("/" + strings.TrimPrefix(p, "./"))
	return p
}
