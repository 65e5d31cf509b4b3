package lint

import (
	"context"
	"strconv"
	"strings"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/format"
	"github.com/packlint/packlint/internal/manifest"
	"github.com/packlint/packlint/internal/match"
	"github.com/packlint/packlint/internal/vfs"
)

// platformConditions are condition keys selecting a target runtime
// class rather than a module format
var platformConditions = map[string]bool{
	"node":         true,
	"browser":      true,
	"worker":       true,
	"electron":     true,
	"deno":         true,
	"react-native": true,
}

// crawlContext threads the resolver state through one condition chain
type crawlContext struct {
	imports bool
	// afterNode suppresses format checks below a matched node
	// condition: engines other than node never see those leaves
	afterNode bool
	// underBrowser suppresses format checks below a browser condition
	underBrowser bool
	// underModule demands ESM below the bundler-specific module condition
	underModule bool
	// underPlatform marks chains below any platform condition key,
	// where the legacy browser field can shadow the resolved value
	underPlatform bool
	// subpathKey is the exports/imports key whose subtree is being
	// crawled, kept as the template for glob exclusions and the
	// wildcard-coexistence lookup
	subpathKey string
	// siblings is the map holding subpathKey
	siblings *manifest.Value
}

func (l *Linter) checkExports(_ context.Context) {
	v, p := l.exportsVal, l.exportsPath
	if v == nil {
		return
	}
	switch v.Kind {
	case manifest.KindString, manifest.KindArray:
		// Sugar for {".": value}
		l.crawl(v, p, crawlContext{subpathKey: "."})
	case manifest.KindObject:
		if !hasSubpathKeys(v) {
			l.crawl(v, p, crawlContext{subpathKey: "."})
			return
		}
		if v.Get(".") == nil {
			l.suggest(domain.CodeExportsMissingRootEntrypoint, p, nil)
		}
		for _, m := range v.Members {
			if !strings.HasPrefix(m.Key, ".") {
				// Subpath and condition keys cannot be mixed at one level
				l.error(domain.CodeExportsValueInvalid, p.Child(m.Key), map[string]any{
					"value":        m.Key,
					"suggestValue": "./" + m.Key,
				})
				continue
			}
			l.crawl(m.Value, p.Child(m.Key), crawlContext{subpathKey: m.Key, siblings: v})
		}
	default:
		l.invalidValueType(p, v, "string | object | array")
	}
}

func (l *Linter) checkImports(_ context.Context) {
	v, p := l.pkg.PublishedField("imports")
	if v == nil {
		return
	}
	if !v.IsObject() {
		l.invalidValueType(p, v, "object")
		return
	}
	for _, m := range v.Members {
		kp := p.Child(m.Key)
		if !strings.HasPrefix(m.Key, "#") {
			l.error(domain.CodeImportsKeyInvalid, kp, map[string]any{
				"suggestKey": "#" + strings.TrimLeft(m.Key, "#/"),
			})
		}
		l.crawl(m.Value, kp, crawlContext{imports: true, subpathKey: m.Key, siblings: v})
	}
}

// crawl walks one condition tree, enforcing the ordering invariants of
// every condition map against its declared key order and expanding
// each leaf into concrete file checks
func (l *Linter) crawl(v *manifest.Value, p domain.Path, c crawlContext) {
	switch v.Kind {
	case manifest.KindNull:
		// Explicit exclusion marker, consumed by the matcher
	case manifest.KindString:
		l.crawlLeaf(v.Str, p, c)
	case manifest.KindArray:
		code := domain.CodeExportsFallbackArrayUse
		if c.imports {
			code = domain.CodeImportsFallbackArrayUse
		}
		l.warn(code, p, nil)
		for i, el := range v.Arr {
			l.crawl(el, p.Child(strconv.Itoa(i)), c)
		}
	case manifest.KindObject:
		l.checkConditionOrder(v, p, c)
		for _, m := range v.Members {
			child := c
			switch {
			case m.Key == "node":
				child.afterNode = true
				child.underPlatform = true
			case m.Key == "browser":
				child.underBrowser = true
				child.underPlatform = true
			case platformConditions[m.Key]:
				child.underPlatform = true
			case m.Key == "module":
				child.underModule = true
			}
			l.crawl(m.Value, p.Child(m.Key), child)
		}
	default:
		l.invalidValueType(p, v, "string | object | array | null")
	}
}

// checkConditionOrder enforces the declared-key-order invariants of a
// single condition map
func (l *Linter) checkConditionOrder(v *manifest.Value, p domain.Path, c crawlContext) {
	if ti := v.Index("types"); ti > 0 {
		// Keys before types are tolerated when they are themselves
		// types-like or resolve to raw TypeScript sources, which
		// type-checkers match directly
		exempt := true
		for _, m := range v.Members[:ti] {
			if strings.HasPrefix(m.Key, "types") || resolvesToTypeScript(m.Value) {
				continue
			}
			exempt = false
			break
		}
		if !exempt {
			l.error(domain.CodeExportsTypesShouldBeFirst, p.Child("types"), nil)
		}
	}

	if mi, ri := v.Index("module"), v.Index("require"); mi >= 0 && ri >= 0 && mi > ri {
		code := domain.CodeExportsModuleShouldPrecedeRequire
		if c.imports {
			code = domain.CodeImportsModuleShouldPrecedeRequire
		}
		l.error(code, p.Child("module"), nil)
	}

	if di := v.Index("default"); di >= 0 && di != len(v.Members)-1 {
		code := domain.CodeExportsDefaultShouldBeLast
		if c.imports {
			code = domain.CodeImportsDefaultShouldBeLast
		}
		l.error(code, p.Child("default"), nil)
	}
}

// crawlLeaf validates a terminal path value and fans out into
// per-file checks
func (l *Linter) crawlLeaf(value string, p domain.Path, c crawlContext) {
	if value == "" || (strings.HasPrefix(value, ".") && !strings.HasPrefix(value, "./")) {
		l.error(l.valueInvalidCode(c), p, map[string]any{
			"value":        value,
			"suggestValue": "./" + strings.TrimLeft(value, "./"),
		})
		return
	}
	if !strings.HasPrefix(value, "./") {
		if c.imports {
			// Bare specifier: imports may remap onto external packages
			return
		}
		l.error(domain.CodeExportsValueInvalid, p, map[string]any{
			"value":        value,
			"suggestValue": "./" + value,
		})
		return
	}

	if strings.HasSuffix(value, "/") {
		value = l.rewriteFolderMapping(value, p, c)
	}

	if strings.Contains(value, "*") {
		files := match.Expand(l.fs, value, match.Options{
			PackList:     l.packList,
			ConditionKey: c.subpathKey,
			Siblings:     c.siblings,
		})
		if len(files) == 0 {
			code := domain.CodeExportsGlobNoMatchedFiles
			if c.imports {
				code = domain.CodeImportsGlobNoMatchedFiles
			}
			l.warn(code, p, map[string]any{"pattern": value})
			return
		}
		for _, f := range files {
			l.leafFile(f, p, c)
		}
		return
	}

	l.leafFile(vfs.Normalize(value), p, c)
}

// rewriteFolderMapping flags the deprecated trailing-slash subpath
// folder mapping and rewrites it to the wildcard form before matching
// continues. The deprecation downgrades to a suggestion when a
// forward-looking wildcard mapping for the same key already coexists.
func (l *Linter) rewriteFolderMapping(value string, p domain.Path, c crawlContext) string {
	sev := domain.SeverityWarning
	if c.siblings != nil && strings.HasSuffix(c.subpathKey, "/") {
		if c.siblings.Get(c.subpathKey+"*") != nil {
			sev = domain.SeveritySuggestion
		}
	}
	code := domain.CodeExportsGlobNoDeprecatedSubpath
	if c.imports {
		code = domain.CodeImportsGlobNoDeprecatedSubpath
	}
	l.emit(code, sev, p, map[string]any{
		"value":        value,
		"suggestValue": value + "*",
	})
	return value + "*"
}

// leafFile runs the per-file checks for one concrete resolved path
func (l *Linter) leafFile(filePath string, p domain.Path, c crawlContext) {
	if l.browserObj != nil && c.underPlatform {
		if key, ok := l.browserRemap(filePath); ok {
			l.error(domain.CodeExportsValueConflictsWithBrowser, p, map[string]any{
				"filePath":   filePath,
				"browserKey": key,
			})
		}
	}

	opts := fileCheckOptions{
		diagPath:   p,
		skipFormat: c.underBrowser || c.afterNode,
	}
	if c.underModule {
		opts.requireESM = domain.CodeExportsModuleShouldBeESM
		opts.esmSeverity = domain.SeverityError
	}
	l.checkFile(filePath, opts)
}

// browserRemap reports whether the legacy browser object remaps the
// given file
func (l *Linter) browserRemap(filePath string) (string, bool) {
	for _, m := range l.browserObj.Members {
		if strings.HasPrefix(m.Key, "./") && vfs.Normalize(m.Key) == filePath {
			return m.Key, true
		}
	}
	return "", false
}

func (l *Linter) valueInvalidCode(c crawlContext) domain.Code {
	if c.imports {
		return domain.CodeImportsValueInvalid
	}
	return domain.CodeExportsValueInvalid
}

// hasSubpathKeys reports whether an exports object maps subpaths
// rather than conditions
func hasSubpathKeys(v *manifest.Value) bool {
	for _, m := range v.Members {
		if strings.HasPrefix(m.Key, ".") {
			return true
		}
	}
	return false
}

// resolvesToTypeScript reports whether a condition subtree terminates
// in (or contains) a raw TypeScript source file
func resolvesToTypeScript(v *manifest.Value) bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case manifest.KindString:
		return format.IsRawTypeScript(v.Str)
	case manifest.KindArray:
		for _, el := range v.Arr {
			if resolvesToTypeScript(el) {
				return true
			}
		}
	case manifest.KindObject:
		for _, m := range v.Members {
			if resolvesToTypeScript(m.Value) {
				return true
			}
		}
	}
	return false
}
