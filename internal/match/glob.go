// Package match expands subpath patterns (paths containing a single
// wildcard marker) into concrete files of the virtual tree, honoring
// pack-list scoping and the null-keyed exclusions of an exports map.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/manifest"
	"github.com/packlint/packlint/internal/vfs"
)

// Options scope an expansion
type Options struct {
	// PackList, when non-nil, restricts matches to files that would
	// actually be published
	PackList []string
	// ConditionKey is the exports/imports key whose value is being
	// expanded, used to reconstruct candidate keys for exclusion tests
	ConditionKey string
	// Siblings is the condition map containing ConditionKey; members
	// mapped to null act as exclusions
	Siblings *manifest.Value
}

// Expand resolves a wildcard pattern against the file tree. The
// pattern may interpolate the wildcard more than once; every captured
// instance must then be textually identical for a file to match. A
// pattern without a wildcard names at most the one exact file.
func Expand(fs domain.FileSystem, pattern string, opts Options) []string {
	if !strings.Contains(pattern, "*") {
		file := vfs.Normalize(pattern)
		if !fs.Exists(file) {
			return nil
		}
		if opts.PackList != nil && !Published(file, opts.PackList) {
			return nil
		}
		return []string{file}
	}

	re, err := compile(pattern)
	if err != nil {
		return nil
	}

	root := literalPrefixDir(pattern)
	if !fs.IsDir(root) {
		return nil
	}

	var matched []string
	walk(fs, root, func(file string) {
		captures := re.FindStringSubmatch(file)
		if captures == nil {
			return
		}
		sub := captures[1]
		for _, c := range captures[2:] {
			if c != sub {
				return
			}
		}
		if opts.PackList != nil && !Published(file, opts.PackList) {
			return
		}
		if excluded(sub, opts) {
			return
		}
		matched = append(matched, file)
	})
	return matched
}

// compile turns a wildcard pattern into an anchored regexp with one
// capturing group per wildcard occurrence
func compile(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	re, err := regexp.Compile("^" + strings.Join(quoted, "(.+)") + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrBadPattern, pattern)
	}
	return re, nil
}

// literalPrefixDir returns the deepest directory named entirely by the
// literal portion before the wildcard
func literalPrefixDir(pattern string) string {
	prefix := pattern[:strings.Index(pattern, "*")]
	slash := strings.LastIndex(prefix, "/")
	if slash < 0 {
		return "."
	}
	return vfs.Normalize(prefix[:slash])
}

func walk(fs domain.FileSystem, dir string, visit func(file string)) {
	names, err := fs.ReadDir(dir)
	if err != nil {
		return
	}
	for _, name := range names {
		child := vfs.Join(dir, name)
		if fs.IsDir(child) {
			walk(fs, child, visit)
		} else {
			visit(child)
		}
	}
}

// Published reports whether a file is covered by the pack list. The
// list holds the paths that will ship; a candidate qualifies when it
// is a prefix of some listed path.
func Published(file string, packList []string) bool {
	f := vfs.Normalize(file)
	for _, p := range packList {
		if strings.HasPrefix(vfs.Normalize(p), f) {
			return true
		}
	}
	return false
}

// excluded substitutes the captured wildcard value back into the
// condition key template and checks whether the reconstructed key is
// claimed by a null-valued sibling
func excluded(capture string, opts Options) bool {
	if opts.Siblings == nil || opts.ConditionKey == "" {
		return false
	}
	candidateKey := strings.Replace(opts.ConditionKey, "*", capture, 1)
	for _, m := range opts.Siblings.Members {
		if !m.Value.IsNull() || m.Key == opts.ConditionKey {
			continue
		}
		if keyMatches(m.Key, candidateKey) {
			return true
		}
	}
	return false
}

// keyMatches tests a (possibly wildcarded) exclusion key against a
// concrete candidate key
func keyMatches(key, candidate string) bool {
	if !strings.Contains(key, "*") {
		return key == candidate
	}
	re, err := compile(key)
	if err != nil {
		return false
	}
	return re.MatchString(candidate)
}
