package format

import (
	"strings"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/manifest"
	"github.com/packlint/packlint/internal/vfs"
)

// Expected derives the module format a consumer assumes for a file
// path: an explicit dual-format extension always wins, otherwise the
// nearest ancestor package.json carrying a "type" field decides.
// A trailing native-addon marker is stripped before the extension
// rules apply. Malformed ancestor manifests are skipped silently.
func Expected(fs domain.FileSystem, filePath string) domain.CodeFormat {
	p := strings.TrimSuffix(filePath, ".node")

	switch {
	case strings.HasSuffix(p, ".mjs"), strings.HasSuffix(p, ".d.mts"), strings.HasSuffix(p, ".mts"):
		return domain.FormatESM
	case strings.HasSuffix(p, ".cjs"), strings.HasSuffix(p, ".d.cts"), strings.HasSuffix(p, ".cts"):
		return domain.FormatCJS
	}

	dir := vfs.Dir(p)
	for {
		if data, err := fs.ReadFile(vfs.Join(dir, "package.json")); err == nil {
			if root, perr := manifest.Parse(data); perr == nil {
				if t := root.Get("type"); t.IsString() {
					if t.Str == "module" {
						return domain.FormatESM
					}
					return domain.FormatCJS
				}
			}
		}
		if dir == "." {
			break
		}
		dir = vfs.Dir(dir)
	}
	return domain.FormatCJS
}

// HasExplicitExtension reports whether the path's extension pins the
// format regardless of any ancestor manifest
func HasExplicitExtension(p string) bool {
	p = strings.TrimSuffix(p, ".node")
	for _, ext := range []string{".mjs", ".cjs", ".d.mts", ".d.cts", ".mts", ".cts"} {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// Extension returns the conventional code extension for a format
func Extension(f domain.CodeFormat) string {
	if f == domain.FormatESM {
		return ".mjs"
	}
	return ".cjs"
}

// DeclarationExtension returns the conventional declaration extension
// for a format
func DeclarationExtension(f domain.CodeFormat) string {
	if f == domain.FormatESM {
		return ".d.mts"
	}
	return ".d.cts"
}

// IsDeclaration reports whether the path is a type declaration file
func IsDeclaration(p string) bool {
	return strings.HasSuffix(p, ".d.ts") || strings.HasSuffix(p, ".d.mts") || strings.HasSuffix(p, ".d.cts")
}

// IsRawTypeScript reports whether the path is raw TypeScript source,
// as opposed to a declaration file or emitted JavaScript
func IsRawTypeScript(p string) bool {
	if IsDeclaration(p) {
		return false
	}
	for _, ext := range []string{".ts", ".mts", ".cts", ".tsx"} {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// DeclarationFor maps a code file path onto its paired declaration
// path by suffix substitution, e.g. ./index.mjs -> ./index.d.mts.
// Returns "" when the extension has no declaration pairing.
func DeclarationFor(codePath string) string {
	for ext, dts := range map[string]string{
		".mjs": ".d.mts",
		".cjs": ".d.cts",
		".js":  ".d.ts",
	} {
		if strings.HasSuffix(codePath, ext) {
			return strings.TrimSuffix(codePath, ext) + dts
		}
	}
	return ""
}

// DeclarationFormat returns the format pinned by an explicit
// declaration extension, or FormatUnknown for plain .d.ts
func DeclarationFormat(p string) domain.CodeFormat {
	switch {
	case strings.HasSuffix(p, ".d.mts"):
		return domain.FormatESM
	case strings.HasSuffix(p, ".d.cts"):
		return domain.FormatCJS
	default:
		return domain.FormatUnknown
	}
}
