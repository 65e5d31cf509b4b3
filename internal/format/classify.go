// Package format decides what module syntax a source file actually
// uses and what syntax its path implies it should use. Detection is a
// lint-speed heuristic over regular expressions, not a parse: markers
// inside string literals can misclassify, which is an accepted
// limitation surfaced through the mixed/unknown results.
package format

import (
	"regexp"

	"github.com/packlint/packlint/internal/domain"
)

var (
	lineCommentRE  = regexp.MustCompile(`//[^\n]*`)
	blockCommentRE = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// Module-syntax markers: import/export statement heads and
	// import.meta property access
	esmRE = regexp.MustCompile(`(?m)(^|;|\s)(import|export)[\s{*'"]|import\.meta\.`)

	// CommonJS markers: module.exports, named exports assignment,
	// require calls and defineProperty-style exports
	cjsRE = regexp.MustCompile(`(?m)(^|;|\s)(module\.exports|exports\.\w|exports\[|require\s*\(|Object\.defineProperty\(\s*(module\.)?exports)`)
)

// StripComments removes line and block comments so commented-out code
// does not count as a syntax marker
func StripComments(code string) string {
	code = blockCommentRE.ReplaceAllString(code, "")
	return lineCommentRE.ReplaceAllString(code, "")
}

// Classify infers the module syntax of a unit of source text. Files
// matching both marker sets report FormatMixed, files matching
// neither report FormatUnknown; neither is ever treated as a
// mismatch downstream.
func Classify(code []byte) domain.CodeFormat {
	stripped := StripComments(string(code))
	isESM := esmRE.MatchString(stripped)
	isCJS := cjsRE.MatchString(stripped)
	switch {
	case isESM && isCJS:
		return domain.FormatMixed
	case isESM:
		return domain.FormatESM
	case isCJS:
		return domain.FormatCJS
	default:
		return domain.FormatUnknown
	}
}
