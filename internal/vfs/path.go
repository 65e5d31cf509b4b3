package vfs

import (
	"path"
	"strings"
)

// Join joins package-relative segments, preserving the "./" prefix
// convention of manifest values
func Join(segments ...string) string {
	cleaned := make([]string, 0, len(segments))
	for _, s := range segments {
		cleaned = append(cleaned, strings.TrimPrefix(s, "./"))
	}
	joined := path.Join(cleaned...)
	if joined == "" || joined == "." {
		return "."
	}
	return "./" + joined
}

// Dir returns the parent of a package-relative path. The parent of
// the package root is the root itself.
func Dir(p string) string {
	d := path.Dir(strings.TrimPrefix(p, "./"))
	if d == "." || d == "/" {
		return "."
	}
	return "./" + d
}

// Ext returns the longest recognized extension of a path, so that
// declaration files report ".d.ts"/".d.mts"/".d.cts" rather than ".ts"
func Ext(p string) string {
	base := path.Base(p)
	for _, ext := range []string{".d.mts", ".d.cts", ".d.ts"} {
		if strings.HasSuffix(base, ext) {
			return ext
		}
	}
	return path.Ext(base)
}

// Normalize rewrites a manifest value into canonical "./"-prefixed form
func Normalize(p string) string {
	trimmed := path.Clean(strings.TrimPrefix(p, "./"))
	if trimmed == "." || trimmed == "" {
		return "."
	}
	return "./" + trimmed
}

// IsRelative reports whether a manifest value is an explicit
// package-relative path
func IsRelative(p string) bool {
	return strings.HasPrefix(p, "./")
}
