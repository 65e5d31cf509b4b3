package lint

import (
	"context"
	"strconv"
	"strings"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/format"
	"github.com/packlint/packlint/internal/manifest"
	"github.com/packlint/packlint/internal/vfs"
)

// typeResolution is one distinct outcome of resolving the root entry
// point for a format/platform combination with the types condition
type typeResolution struct {
	dts       *domain.ResolvedEntry
	code      *domain.ResolvedEntry
	condition string
	env       string
}

// checkTypesExported mirrors a type-checker's bundler-mode resolution:
// it re-resolves the root exports entry across the cross-product of
// {import, require} x {default, node, browser, worker} with the types
// condition requested, and verifies each distinct declaration file
// agrees in format with its paired code file. A resolution mode whose
// types request falls through to a code file is still typed when the
// suffix-substituted declaration sits next to that file. Nested entry
// points beyond the root "." are not resolved here.
func (l *Linter) checkTypesExported(_ context.Context) {
	rootDts, _ := l.rootDeclaration()
	if l.exportsVal == nil {
		return
	}

	root, rp := l.exportsVal, l.exportsPath
	if root.IsObject() && hasSubpathKeys(root) {
		root = root.Get(".")
		rp = rp.Child(".")
		if root == nil {
			return
		}
	}

	matched, missing, anyTypes := l.resolveTypesCombinations(root, rp)

	if !anyTypes {
		if rootDts != "" {
			// An exports map hides everything it does not declare,
			// including the conventional declaration file
			l.warn(domain.CodeTypesNotExported, l.exportsPath, map[string]any{
				"types":     rootDts,
				"condition": "all",
				"note":      "add a \"types\" condition to the exports map",
			})
		}
		return
	}

	for _, r := range matched {
		l.checkTypeResolution(r)
	}
	for _, r := range missing {
		l.reportUntypedMode(r, rootDts)
	}
}

// resolveTypesCombinations collects the distinct declaration
// resolutions. Entries are deduplicated by resolved path, but a
// second entry is kept when import and require resolve to genuinely
// different code files, so that both halves of a dual publish get
// their formats verified. Modes whose types request resolves to a
// code file count as typed when the adjacent declaration exists and
// are returned as missing otherwise.
func (l *Linter) resolveTypesCombinations(root *manifest.Value, rp domain.Path) (matched, missing []typeResolution, anyTypes bool) {
	seenMatched := make(map[string]bool)
	seenMissing := make(map[string]bool)

	for _, cond := range []string{"import", "require"} {
		for _, env := range []string{"", "node", "browser", "worker"} {
			conds := map[string]bool{cond: true, "types": true}
			if env != "" {
				conds[env] = true
			}
			dts := resolveConditions(root, conds, rp)
			if dts == nil || strings.Contains(dts.Value, "*") {
				continue
			}

			if !format.IsDeclaration(dts.Value) {
				// No types condition matched; the declaration paired
				// with the resolved code file still resolves by
				// suffix substitution
				adj := format.DeclarationFor(vfs.Normalize(dts.Value))
				if adj != "" && l.fs.Exists(adj) {
					anyTypes = true
					continue
				}
				if seenMissing[dts.Value] {
					continue
				}
				seenMissing[dts.Value] = true
				missing = append(missing, typeResolution{code: dts, condition: cond, env: env})
				continue
			}
			anyTypes = true

			codeConds := map[string]bool{cond: true}
			if env != "" {
				codeConds[env] = true
			}
			code := resolveConditions(root, codeConds, rp)

			key := dts.Value
			if code != nil {
				key += "\x00" + code.Value
			}
			if seenMatched[key] {
				continue
			}
			seenMatched[key] = true
			matched = append(matched, typeResolution{dts: dts, code: code, condition: cond, env: env})
		}
	}
	return matched, missing, anyTypes
}

// reportUntypedMode flags a resolution mode that reaches a code file
// with no declaration, adjacent or conditioned, to serve it
func (l *Linter) reportUntypedMode(r typeResolution, rootDts string) {
	codePath := vfs.Normalize(r.code.Value)
	adj := format.DeclarationFor(codePath)

	note := "no declaration file resolves for this mode"
	if adj != "" {
		note = "consider adding " + adj + " or a \"types\" condition"
	}
	types := rootDts
	if types == "" {
		types = adj
	}
	l.warn(domain.CodeTypesNotExported, r.code.Path, map[string]any{
		"types":     types,
		"condition": r.conditionLabel(),
		"note":      note,
	})
}

func (l *Linter) checkTypeResolution(r typeResolution) {
	dtsPath := vfs.Normalize(r.dts.Value)
	condFormat := domain.FormatCJS
	if r.condition == "import" {
		condFormat = domain.FormatESM
	}

	// The sibling code file's actual syntax takes precedence over the
	// condition name, tolerating intentional CJS-with-ESM-types setups
	expected := condFormat
	if r.code != nil {
		if data, err := l.fs.ReadFile(vfs.Normalize(r.code.Value)); err == nil {
			if actual := format.Classify(data); actual.Explicit() {
				expected = actual
			}
		}
	}

	if dtsFormat := format.DeclarationFormat(dtsPath); dtsFormat.Explicit() {
		// Dual-format extension: the declaration pins its own format
		if dtsFormat != expected {
			l.warn(domain.CodeTypesExportsInvalidFormat, r.dts.Path, map[string]any{
				"filePath":        dtsPath,
				"actualFormat":    dtsFormat,
				"expectFormat":    expected,
				"expectExtension": format.DeclarationExtension(expected),
				"condition":       r.conditionLabel(),
			})
		}
		return
	}

	// Plain .d.ts: its format follows the ancestor manifest walk
	if format.Expected(l.fs, dtsPath) == expected {
		return
	}
	if r.code != nil {
		if adj := format.DeclarationFor(vfs.Normalize(r.code.Value)); adj != "" && adj != dtsPath && l.fs.Exists(adj) {
			return
		}
	}
	l.warn(domain.CodeTypesNotExported, r.dts.Path, map[string]any{
		"types":     dtsPath,
		"condition": r.conditionLabel(),
		"note":      "consider a " + format.DeclarationExtension(expected) + " declaration for this resolution mode",
	})
}

func (r typeResolution) conditionLabel() string {
	if r.env == "" {
		return r.condition
	}
	return r.condition + "." + r.env
}

// rootDeclaration finds the conventional top-level declaration file:
// the explicit declaration field, else the default declaration name
func (l *Linter) rootDeclaration() (string, domain.Path) {
	for _, field := range []string{"types", "typings"} {
		if v, p := l.pkg.PublishedField(field); v.IsString() {
			return vfs.Normalize(v.Str), p
		}
	}
	if l.fs.Exists("./index.d.ts") {
		return "./index.d.ts", domain.Path{"types"}
	}
	return "", nil
}

// resolveConditions walks an ordered condition map with the runtime
// matching algorithm restricted to the requested condition set. A
// null branch resolves to nothing, fallback arrays take their first
// resolvable element.
func resolveConditions(v *manifest.Value, conditions map[string]bool, p domain.Path) *domain.ResolvedEntry {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case manifest.KindString:
		if !strings.HasPrefix(v.Str, "./") {
			return nil
		}
		return &domain.ResolvedEntry{Value: v.Str, Path: p}
	case manifest.KindArray:
		for i, el := range v.Arr {
			if r := resolveConditions(el, conditions, p.Child(strconv.Itoa(i))); r != nil {
				return r
			}
		}
	case manifest.KindObject:
		for _, m := range v.Members {
			if m.Key != "default" && !conditions[m.Key] {
				continue
			}
			if r := resolveConditions(m.Value, conditions, p.Child(m.Key)); r != nil {
				return r
			}
		}
	}
	return nil
}
