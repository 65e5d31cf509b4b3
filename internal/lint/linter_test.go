package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/vfs"
)

// runPass lints an in-memory file tree and returns the finalized
// diagnostics
func runPass(t *testing.T, files map[string]string, mods ...func(*Options)) []domain.Diagnostic {
	t.Helper()
	opts := Options{FS: vfs.NewMemory(files)}
	for _, mod := range mods {
		mod(&opts)
	}
	result, err := New(opts).Run(context.Background())
	require.NoError(t, err)
	return result.Diagnostics
}

// hasCode reports whether any diagnostic carries the code
func hasCode(diags []domain.Diagnostic, code domain.Code) bool {
	return len(withCode(diags, code)) > 0
}

// withCode filters diagnostics by code
func withCode(diags []domain.Diagnostic, code domain.Code) []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// TestRun_CleanPackage verifies a well-formed package produces no
// diagnostics at all
func TestRun_CleanPackage(t *testing.T) {
	diags := runPass(t, map[string]string{
		"package.json": `{
			"name": "demo",
			"version": "1.0.0",
			"type": "module",
			"license": "MIT",
			"files": ["dist"],
			"repository": "github:demo/demo",
			"main": "./dist/index.js",
			"exports": {
				".": {
					"types": "./dist/index.d.ts",
					"default": "./dist/index.js"
				}
			}
		}`,
		"dist/index.js":   "export const answer = 42",
		"dist/index.d.ts": "export declare const answer: number",
	})

	assert.Empty(t, diags)
}

// TestRun_MissingManifest verifies a missing root manifest is pass-fatal
func TestRun_MissingManifest(t *testing.T) {
	l := New(Options{FS: vfs.NewMemory(map[string]string{"index.js": ""})})
	_, err := l.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

// TestRun_UnparseableManifest verifies a broken manifest is pass-fatal
func TestRun_UnparseableManifest(t *testing.T) {
	l := New(Options{FS: vfs.NewMemory(map[string]string{"package.json": `{"name":`})})
	_, err := l.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrManifestInvalid)
}

// TestRun_Cancellation verifies a canceled context aborts the pass
func TestRun_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(Options{FS: vfs.NewMemory(map[string]string{"package.json": `{"name": "x"}`})})
	_, err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestRun_ExplicitExtensionMismatch covers an ESM-extension entry
// written in CommonJS: exactly one diagnostic, and it is an error
// because the file cannot load at all
func TestRun_ExplicitExtensionMismatch(t *testing.T) {
	diags := runPass(t, map[string]string{
		"package.json": `{"name": "demo", "main": "./index.mjs"}`,
		"index.mjs":    "module.exports = {}",
	})

	mismatches := withCode(diags, domain.CodeFileInvalidExplicitFormat)
	require.Len(t, mismatches, 1)

	d := mismatches[0]
	assert.Equal(t, domain.SeverityError, d.Severity)
	assert.Equal(t, domain.Path{"main"}, d.Path)
	assert.Equal(t, domain.FormatCJS, d.Args["actualFormat"])
	assert.Equal(t, domain.FormatESM, d.Args["expectFormat"])
	assert.Equal(t, ".mjs", d.Args["actualExtension"])
	assert.Equal(t, ".cjs", d.Args["expectExtension"])

	assert.False(t, hasCode(diags, domain.CodeFileInvalidFormat))
}

// TestRun_Idempotent verifies two passes over the same tree produce
// identical diagnostics despite concurrent checks
func TestRun_Idempotent(t *testing.T) {
	files := map[string]string{
		"package.json": `{
			"name": "messy",
			"main": "./index.js",
			"module": "./index.cjs.js",
			"jsnext:main": "./index.js",
			"exports": {
				"./feature": "./feature.js",
				".": {"default": "./index.js", "import": "./index.js"}
			}
		}`,
		"index.js":     "module.exports = {}",
		"index.cjs.js": "module.exports = {}",
	}

	first := runPass(t, files, func(o *Options) { o.Workers = 4 })
	second := runPass(t, files, func(o *Options) { o.Workers = 4 })

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

// TestRun_StrictEscalatesWarnings verifies strict mode promotes
// warnings to errors in the final snapshot
func TestRun_StrictEscalatesWarnings(t *testing.T) {
	files := map[string]string{
		"package.json": `{"name": "demo", "type": "module", "main": "./index.js"}`,
		"index.js":     "module.exports = {}",
	}

	relaxed := runPass(t, files)
	mismatch := withCode(relaxed, domain.CodeFileInvalidFormat)
	require.Len(t, mismatch, 1)
	assert.Equal(t, domain.SeverityWarning, mismatch[0].Severity)

	strict := runPass(t, files, func(o *Options) { o.Strict = true })
	mismatch = withCode(strict, domain.CodeFileInvalidFormat)
	require.Len(t, mismatch, 1)
	assert.Equal(t, domain.SeverityError, mismatch[0].Severity)
}

// TestRun_LevelFilter verifies the minimum-severity filter
func TestRun_LevelFilter(t *testing.T) {
	files := map[string]string{
		"package.json": `{"name": "demo", "type": "module", "main": "./index.js"}`,
		"index.js":     "module.exports = {}",
	}

	all := runPass(t, files)
	assert.True(t, hasCode(all, domain.CodeUseFiles))

	errorsOnly := runPass(t, files, func(o *Options) { o.Level = domain.SeverityError })
	for _, d := range errorsOnly {
		assert.Equal(t, domain.SeverityError, d.Severity)
	}
	assert.False(t, hasCode(errorsOnly, domain.CodeUseFiles))
	assert.False(t, hasCode(errorsOnly, domain.CodeFileInvalidFormat))
}

// TestRun_SeverityOrdering verifies errors sort before warnings and
// suggestions in the snapshot
func TestRun_SeverityOrdering(t *testing.T) {
	diags := runPass(t, map[string]string{
		"package.json": `{"name": "demo", "type": "module", "main": "./missing.js", "module": "./index.js"}`,
		"index.js":     "module.exports = {}",
	})

	require.NotEmpty(t, diags)
	lastRank := diags[0].Severity.Rank()
	for _, d := range diags[1:] {
		assert.LessOrEqual(t, d.Severity.Rank(), lastRank)
		lastRank = d.Severity.Rank()
	}
}

// TestRun_PackListScope verifies resolution is restricted to files
// that will actually be published
func TestRun_PackListScope(t *testing.T) {
	files := map[string]string{
		"package.json":  `{"name": "demo", "main": "./dist/index.js"}`,
		"dist/index.js": "module.exports = {}",
	}

	unscoped := runPass(t, files)
	assert.False(t, hasCode(unscoped, domain.CodeFileNotPublished))

	scoped := runPass(t, files, func(o *Options) {
		o.PackList = []string{"./package.json", "./README.md"}
	})
	unpublished := withCode(scoped, domain.CodeFileNotPublished)
	require.Len(t, unpublished, 1)
	assert.Equal(t, "./dist/index.js", unpublished[0].Args["filePath"])
}
