package report

import (
	"fmt"
	"io"

	"github.com/packlint/packlint/internal/domain"
)

// arg fetches a rendered argument, with a placeholder for absent keys
// so a malformed diagnostic still produces readable output
func arg(d domain.Diagnostic, key string) string {
	if v, ok := d.Args[key]; ok {
		return fmt.Sprint(v)
	}
	return "<" + key + ">"
}

// Render produces the human-readable message for a diagnostic
func Render(d domain.Diagnostic) string {
	at := d.Path.String()
	switch d.Code {
	case domain.CodeImplicitIndexJSInvalidFormat:
		return fmt.Sprintf("index.js is the implicit entry point but is written in %s while the package expects %s", arg(d, "actualFormat"), arg(d, "expectFormat"))
	case domain.CodeFileInvalidFormat:
		return fmt.Sprintf("%s: %s is written in %s, but is interpreted as %s", at, arg(d, "filePath"), arg(d, "actualFormat"), arg(d, "expectFormat"))
	case domain.CodeFileInvalidExplicitFormat:
		return fmt.Sprintf("%s: %s ends with %s but is written in %s; rename to end with %s", at, arg(d, "filePath"), arg(d, "actualExtension"), arg(d, "actualFormat"), arg(d, "expectExtension"))
	case domain.CodeFileInvalidJSXExtension:
		return fmt.Sprintf("%s: %s has a .jsx extension, which runtimes do not resolve", at, arg(d, "filePath"))
	case domain.CodeFileDoesNotExist:
		return fmt.Sprintf("%s: file %s does not exist", at, arg(d, "filePath"))
	case domain.CodeFileNotPublished:
		return fmt.Sprintf("%s: file %s exists but is not included in the published files", at, arg(d, "filePath"))
	case domain.CodeModuleShouldBeESM:
		return fmt.Sprintf("%s: the module entry should be written in ESM, but %s is %s", at, arg(d, "filePath"), arg(d, "actualFormat"))
	case domain.CodeHasModuleButNoExports:
		return "the \"module\" field is bundler-specific; prefer declaring an \"exports\" map with an \"import\" condition"
	case domain.CodeHasESMMainButNoExports:
		return "\"main\" points to an ESM file but there is no \"exports\" field; runtimes that respect \"exports\" would benefit from one"
	case domain.CodeExportsGlobNoMatchedFiles:
		return fmt.Sprintf("%s: glob %s matches no published files", at, arg(d, "pattern"))
	case domain.CodeImportsGlobNoMatchedFiles:
		return fmt.Sprintf("%s: glob %s matches no published files", at, arg(d, "pattern"))
	case domain.CodeExportsGlobNoDeprecatedSubpath, domain.CodeImportsGlobNoDeprecatedSubpath:
		return fmt.Sprintf("%s: trailing-slash subpath folder mappings are deprecated; use %s instead", at, arg(d, "suggestValue"))
	case domain.CodeExportsTypesShouldBeFirst:
		return fmt.Sprintf("%s: the \"types\" condition must come first so type-checkers can match it", at)
	case domain.CodeExportsModuleShouldPrecedeRequire, domain.CodeImportsModuleShouldPrecedeRequire:
		return fmt.Sprintf("%s: the \"module\" condition must precede \"require\", otherwise it is never matched", at)
	case domain.CodeExportsDefaultShouldBeLast, domain.CodeImportsDefaultShouldBeLast:
		return fmt.Sprintf("%s: the \"default\" condition must be declared last", at)
	case domain.CodeExportsModuleShouldBeESM:
		return fmt.Sprintf("%s: files behind the \"module\" condition must be ESM, but %s is %s", at, arg(d, "filePath"), arg(d, "actualFormat"))
	case domain.CodeExportsValueInvalid:
		return fmt.Sprintf("%s: value %q is invalid; did you mean %q?", at, arg(d, "value"), arg(d, "suggestValue"))
	case domain.CodeImportsValueInvalid:
		return fmt.Sprintf("%s: value %q is invalid; did you mean %q?", at, arg(d, "value"), arg(d, "suggestValue"))
	case domain.CodeExportsMissingRootEntrypoint:
		return fmt.Sprintf("%s: the exports map declares subpaths but no root \".\" entry point", at)
	case domain.CodeExportsValueConflictsWithBrowser:
		return fmt.Sprintf("%s: %s is also remapped by the \"browser\" field (%s), which shadows this entry in browser-targeting bundlers", at, arg(d, "filePath"), arg(d, "browserKey"))
	case domain.CodeExportsFallbackArrayUse, domain.CodeImportsFallbackArrayUse:
		return fmt.Sprintf("%s: fallback arrays are deprecated and behave inconsistently across consumers; declare a single value", at)
	case domain.CodeImportsKeyInvalid:
		return fmt.Sprintf("%s: imports keys must start with \"#\"; did you mean %q?", at, arg(d, "suggestKey"))
	case domain.CodeUseExportsBrowser:
		return "the \"browser\" field duplicates what a \"browser\" condition in \"exports\" expresses more portably"
	case domain.CodeUseExportsOrImportsBrowser:
		return "the \"browser\" mapping object can be expressed with \"browser\" conditions in \"exports\"/\"imports\""
	case domain.CodeUseFiles:
		return "no \"files\" allow-list; the published tarball may contain unintended files"
	case domain.CodeUseType:
		return "no \"type\" field; files are interpreted as CommonJS by default, consider declaring \"type\" explicitly"
	case domain.CodeUseLicense:
		return "no \"license\" field"
	case domain.CodeTypesNotExported:
		return fmt.Sprintf("%s: types are not exported for the %s resolution mode; %s", at, arg(d, "condition"), arg(d, "note"))
	case domain.CodeTypesExportsInvalidFormat:
		return fmt.Sprintf("%s: declaration %s is typed as %s but the paired code resolves as %s; rename to end with %s", at, arg(d, "filePath"), arg(d, "actualFormat"), arg(d, "expectFormat"), arg(d, "expectExtension"))
	case domain.CodeFieldInvalidValueType:
		return fmt.Sprintf("%s: invalid value type %s, expected %s", at, arg(d, "actualType"), arg(d, "expectTypes"))
	case domain.CodeInvalidRepositoryValue:
		return fmt.Sprintf("%s: the repository value is not a resolvable git URL", at)
	case domain.CodeDeprecatedFieldJSNext:
		return fmt.Sprintf("%s: field is deprecated; use \"module\" or an \"exports\" map instead", at)
	case domain.CodeBinFileNotExecutableFormat:
		return fmt.Sprintf("%s: bin target %s is written in %s but would be executed as %s", at, arg(d, "filePath"), arg(d, "actualFormat"), arg(d, "expectFormat"))
	case domain.CodeLocalDependency:
		return fmt.Sprintf("%s: dependency %q resolves to a local path and will break for consumers", at, arg(d, "dependency"))
	case domain.CodePublishConfigDirectoryGlob:
		return fmt.Sprintf("%s: \"publishConfig.directory\" does not support glob patterns", at)
	case domain.CodeManifestNotParsable:
		return fmt.Sprintf("package.json could not be parsed: %s", arg(d, "error"))
	default:
		return fmt.Sprintf("%s: %s", at, d.Code)
	}
}

// Print writes the rendered diagnostics grouped by severity
func Print(w io.Writer, diags []domain.Diagnostic) {
	order := []domain.Severity{domain.SeverityError, domain.SeverityWarning, domain.SeveritySuggestion}
	label := map[domain.Severity]string{
		domain.SeverityError:      "Errors",
		domain.SeverityWarning:    "Warnings",
		domain.SeveritySuggestion: "Suggestions",
	}
	for _, sev := range order {
		first := true
		for _, d := range diags {
			if d.Severity != sev {
				continue
			}
			if first {
				fmt.Fprintf(w, "%s:\n", label[sev])
				first = false
			}
			fmt.Fprintf(w, "  %s\n", Render(d))
		}
		if !first {
			fmt.Fprintln(w)
		}
	}
	if len(diags) == 0 {
		fmt.Fprintln(w, "All good!")
	}
}
