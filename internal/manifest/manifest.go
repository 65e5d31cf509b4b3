package manifest

import (
	"fmt"
	"os"

	"github.com/packlint/packlint/internal/domain"
)

// Manifest is one parsed package.json, read-only for the duration of
// a lint pass
type Manifest struct {
	Root *Value
}

// Load reads and parses package.json from the root of the given file
// system. A missing or unparseable manifest is pass-fatal.
func Load(fs domain.FileSystem) (*Manifest, error) {
	data, err := fs.ReadFile("./package.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrManifestNotFound
		}
		return nil, fmt.Errorf("reading package.json: %w", err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, domain.NewManifestError(".", fmt.Errorf("%w: %v", domain.ErrManifestInvalid, err))
	}
	if !root.IsObject() {
		return nil, domain.NewManifestError(".", fmt.Errorf("%w: root value is %s, expected object", domain.ErrManifestInvalid, root.Kind))
	}
	return &Manifest{Root: root}, nil
}

// Field returns a top-level field value, or nil when absent
func (m *Manifest) Field(name string) *Value {
	return m.Root.Get(name)
}

// PublishedField returns the field value a consumer of the published
// package would see: a publishConfig sub-mapping shadows the top-level
// field of the same name. The returned path locates whichever value won.
func (m *Manifest) PublishedField(name string) (*Value, domain.Path) {
	if pc := m.Root.Get("publishConfig"); pc.IsObject() {
		if v := pc.Get(name); v != nil {
			return v, domain.Path{"publishConfig", name}
		}
	}
	if v := m.Root.Get(name); v != nil {
		return v, domain.Path{name}
	}
	return nil, nil
}

// Name returns the package name, or "" when absent
func (m *Manifest) Name() string {
	if v := m.Root.Get("name"); v.IsString() {
		return v.Str
	}
	return ""
}
