package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Severity is the reporting tier of a diagnostic
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Rank returns the numeric weight of a severity, higher is more severe
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeveritySuggestion:
		return 1
	default:
		return 0
	}
}

// ParseSeverity parses a severity string, defaulting to suggestion
// so that unknown values report everything
func ParseSeverity(s string) Severity {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError
	case "warning", "warn":
		return SeverityWarning
	default:
		return SeveritySuggestion
	}
}

// CodeFormat is the module syntax of a unit of source text
type CodeFormat string

const (
	FormatESM     CodeFormat = "ESM"
	FormatCJS     CodeFormat = "CJS"
	FormatMixed   CodeFormat = "mixed"
	FormatUnknown CodeFormat = "unknown"
)

// Explicit reports whether the format is one of the two concrete
// module syntaxes rather than a heuristic non-answer
func (f CodeFormat) Explicit() bool {
	return f == FormatESM || f == FormatCJS
}

// Code identifies a lint finding. The vocabulary is fixed; consumers
// key message rendering and suppression off these values.
type Code string

const (
	CodeImplicitIndexJSInvalidFormat        Code = "IMPLICIT_INDEX_JS_INVALID_FORMAT"
	CodeFileInvalidFormat                   Code = "FILE_INVALID_FORMAT"
	CodeFileInvalidExplicitFormat           Code = "FILE_INVALID_EXPLICIT_FORMAT"
	CodeFileInvalidJSXExtension             Code = "FILE_INVALID_JSX_EXTENSION"
	CodeFileDoesNotExist                    Code = "FILE_DOES_NOT_EXIST"
	CodeFileNotPublished                    Code = "FILE_NOT_PUBLISHED"
	CodeModuleShouldBeESM                   Code = "MODULE_SHOULD_BE_ESM"
	CodeHasModuleButNoExports               Code = "HAS_MODULE_BUT_NO_EXPORTS"
	CodeHasESMMainButNoExports              Code = "HAS_ESM_MAIN_BUT_NO_EXPORTS"
	CodeExportsGlobNoMatchedFiles           Code = "EXPORTS_GLOB_NO_MATCHED_FILES"
	CodeExportsGlobNoDeprecatedSubpath      Code = "EXPORTS_GLOB_NO_DEPRECATED_SUBPATH_MAPPING"
	CodeExportsTypesShouldBeFirst           Code = "EXPORTS_TYPES_SHOULD_BE_FIRST"
	CodeExportsModuleShouldPrecedeRequire   Code = "EXPORTS_MODULE_SHOULD_PRECEDE_REQUIRE"
	CodeExportsDefaultShouldBeLast          Code = "EXPORTS_DEFAULT_SHOULD_BE_LAST"
	CodeExportsModuleShouldBeESM            Code = "EXPORTS_MODULE_SHOULD_BE_ESM"
	CodeExportsValueInvalid                 Code = "EXPORTS_VALUE_INVALID"
	CodeExportsMissingRootEntrypoint        Code = "EXPORTS_MISSING_ROOT_ENTRYPOINT"
	CodeExportsValueConflictsWithBrowser    Code = "EXPORTS_VALUE_CONFLICTS_WITH_BROWSER"
	CodeExportsFallbackArrayUse             Code = "EXPORTS_FALLBACK_ARRAY_USE"
	CodeImportsKeyInvalid                   Code = "IMPORTS_KEY_INVALID"
	CodeImportsValueInvalid                 Code = "IMPORTS_VALUE_INVALID"
	CodeImportsGlobNoMatchedFiles           Code = "IMPORTS_GLOB_NO_MATCHED_FILES"
	CodeImportsGlobNoDeprecatedSubpath      Code = "IMPORTS_GLOB_NO_DEPRECATED_SUBPATH_MAPPING"
	CodeImportsDefaultShouldBeLast          Code = "IMPORTS_DEFAULT_SHOULD_BE_LAST"
	CodeImportsModuleShouldPrecedeRequire   Code = "IMPORTS_MODULE_SHOULD_PRECEDE_REQUIRE"
	CodeImportsFallbackArrayUse             Code = "IMPORTS_FALLBACK_ARRAY_USE"
	CodeUseExportsBrowser                   Code = "USE_EXPORTS_BROWSER"
	CodeUseExportsOrImportsBrowser          Code = "USE_EXPORTS_OR_IMPORTS_BROWSER"
	CodeUseFiles                            Code = "USE_FILES"
	CodeUseType                             Code = "USE_TYPE"
	CodeUseLicense                          Code = "USE_LICENSE"
	CodeTypesNotExported                    Code = "TYPES_NOT_EXPORTED"
	CodeTypesExportsInvalidFormat           Code = "TYPES_EXPORTS_INVALID_FORMAT"
	CodeFieldInvalidValueType               Code = "FIELD_INVALID_VALUE_TYPE"
	CodeInvalidRepositoryValue              Code = "INVALID_REPOSITORY_VALUE"
	CodeDeprecatedFieldJSNext               Code = "DEPRECATED_FIELD_JSNEXT"
	CodeBinFileNotExecutableFormat          Code = "BIN_FILE_NOT_EXECUTABLE_FORMAT"
	CodeLocalDependency                     Code = "LOCAL_DEPENDENCY"
	CodePublishConfigDirectoryGlob          Code = "PUBLISH_CONFIG_DIRECTORY_GLOB"
	CodeManifestNotParsable                 Code = "MANIFEST_NOT_PARSABLE"
)

// identLikeRE matches path segments that can be rendered with dot notation
var identLikeRE = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Path locates a position inside the manifest as an ordered sequence
// of object keys and array indices
type Path []string

// Child returns a new path extended with the given segments. The
// receiver's backing array is never shared with the result.
func (p Path) Child(segments ...string) Path {
	out := make(Path, 0, len(p)+len(segments))
	out = append(out, p...)
	out = append(out, segments...)
	return out
}

// String renders the path in the manifest's own notation, e.g.
// exports["."].import.types
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, seg := range p {
		if i == 0 || identLikeRE.MatchString(seg) {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg)
		} else {
			fmt.Fprintf(&b, "[%q]", seg)
		}
	}
	return b.String()
}

// Diagnostic is a single structured finding. It is immutable once
// appended to a sink; the only mutation in the whole pass is the
// strict-mode severity escalation applied on the sink's snapshot.
type Diagnostic struct {
	Code     Code           `json:"code"`
	Severity Severity       `json:"severity"`
	Path     Path           `json:"path"`
	Args     map[string]any `json:"args,omitempty"`
}

// SortKey returns a stable comparison key. Emission order across
// concurrent checks is not guaranteed, so consumers sort by this.
func (d Diagnostic) SortKey() string {
	keys := make([]string, 0, len(d.Args))
	for k := range d.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(string(d.Code))
	b.WriteByte('\x00')
	b.WriteString(d.Path.String())
	for _, k := range keys {
		fmt.Fprintf(&b, "\x00%s=%v", k, d.Args[k])
	}
	return b.String()
}

// ResolvedEntry is the outcome of matching one condition chain
type ResolvedEntry struct {
	Value string
	Path  Path
}
