package lint

import (
	"strings"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/format"
	"github.com/packlint/packlint/internal/match"
	"github.com/packlint/packlint/internal/vfs"
)

// fileCheckOptions tune a single resolved-file verification
type fileCheckOptions struct {
	diagPath domain.Path
	// skipFormat keeps the existence checks but drops the syntax
	// agreement check (browser-keyed and post-node subtrees)
	skipFormat bool
	// requireESM, when set, demands the file classify as module
	// syntax and reports violations under this code
	requireESM  domain.Code
	esmSeverity domain.Severity
}

// checkFile verifies one resolved file: existence, pack-list
// membership, and syntactic format agreement. Mixed and unknown
// classifications are never treated as mismatches.
func (l *Linter) checkFile(filePath string, opts fileCheckOptions) {
	if strings.HasSuffix(filePath, ".jsx") {
		l.error(domain.CodeFileInvalidJSXExtension, opts.diagPath, map[string]any{"filePath": filePath})
	}

	if !l.fs.Exists(filePath) {
		l.error(domain.CodeFileDoesNotExist, opts.diagPath, map[string]any{"filePath": filePath})
		return
	}
	if l.packList != nil && !match.Published(filePath, l.packList) {
		l.error(domain.CodeFileNotPublished, opts.diagPath, map[string]any{"filePath": filePath})
		return
	}

	// Declaration files are paired by the types resolver, raw
	// TypeScript has no runtime format to agree with
	if format.IsDeclaration(filePath) || format.IsRawTypeScript(filePath) {
		return
	}

	data, err := l.fs.ReadFile(filePath)
	if err != nil {
		return
	}
	actual := format.Classify(data)
	if !actual.Explicit() {
		return
	}

	if opts.requireESM != "" {
		if actual == domain.FormatCJS {
			sev := opts.esmSeverity
			if sev == "" {
				sev = domain.SeverityError
			}
			l.emit(opts.requireESM, sev, opts.diagPath, map[string]any{
				"filePath":     filePath,
				"actualFormat": actual,
			})
		}
		return
	}
	if opts.skipFormat {
		return
	}

	expected := format.Expected(l.fs, filePath)
	if actual == expected {
		return
	}

	if format.HasExplicitExtension(filePath) {
		// The extension pins the format, so disagreement means the
		// file is unloadable, not merely misinterpreted
		l.error(domain.CodeFileInvalidExplicitFormat, opts.diagPath, map[string]any{
			"filePath":        filePath,
			"actualFormat":    actual,
			"expectFormat":    expected,
			"actualExtension": vfs.Ext(filePath),
			"expectExtension": format.Extension(actual),
		})
		return
	}

	l.warn(domain.CodeFileInvalidFormat, opts.diagPath, map[string]any{
		"filePath":     filePath,
		"actualFormat": actual,
		"expectFormat": expected,
	})
}
