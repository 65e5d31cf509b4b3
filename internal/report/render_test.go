package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packlint/packlint/internal/domain"
)

// TestRender tests message rendering for representative codes
func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		diag     domain.Diagnostic
		contains []string
	}{
		{
			name: "missing file",
			diag: domain.Diagnostic{
				Code: domain.CodeFileDoesNotExist,
				Path: domain.Path{"main"},
				Args: map[string]any{"filePath": "./dist/index.js"},
			},
			contains: []string{"main", "./dist/index.js", "does not exist"},
		},
		{
			name: "explicit format mismatch",
			diag: domain.Diagnostic{
				Code: domain.CodeFileInvalidExplicitFormat,
				Path: domain.Path{"main"},
				Args: map[string]any{
					"filePath":        "./index.mjs",
					"actualFormat":    domain.FormatCJS,
					"actualExtension": ".mjs",
					"expectExtension": ".cjs",
				},
			},
			contains: []string{"./index.mjs", ".mjs", "CJS", ".cjs"},
		},
		{
			name: "imports key",
			diag: domain.Diagnostic{
				Code: domain.CodeImportsKeyInvalid,
				Path: domain.Path{"imports", "foo"},
				Args: map[string]any{"suggestKey": "#foo"},
			},
			contains: []string{"imports.foo", "#foo"},
		},
		{
			name: "types not exported",
			diag: domain.Diagnostic{
				Code: domain.CodeTypesNotExported,
				Path: domain.Path{"exports"},
				Args: map[string]any{"types": "./index.d.ts", "condition": "all", "note": "add a types condition"},
			},
			contains: []string{"exports", "all", "add a types condition"},
		},
		{
			name:     "missing argument renders a placeholder",
			diag:     domain.Diagnostic{Code: domain.CodeFileDoesNotExist, Path: domain.Path{"main"}},
			contains: []string{"<filePath>"},
		},
		{
			name:     "unknown code falls back to the code itself",
			diag:     domain.Diagnostic{Code: domain.Code("SOMETHING_NEW"), Path: domain.Path{"main"}},
			contains: []string{"SOMETHING_NEW"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Render(tt.diag)
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

// TestPrint tests severity-grouped output
func TestPrint(t *testing.T) {
	t.Run("grouped sections", func(t *testing.T) {
		var buf bytes.Buffer
		Print(&buf, []domain.Diagnostic{
			{Code: domain.CodeFileDoesNotExist, Severity: domain.SeverityError, Path: domain.Path{"main"}, Args: map[string]any{"filePath": "./a.js"}},
			{Code: domain.CodeUseFiles, Severity: domain.SeveritySuggestion},
		})

		out := buf.String()
		assert.Contains(t, out, "Errors:")
		assert.Contains(t, out, "Suggestions:")
		assert.NotContains(t, out, "Warnings:")
	})

	t.Run("empty report", func(t *testing.T) {
		var buf bytes.Buffer
		Print(&buf, nil)
		assert.Contains(t, buf.String(), "All good!")
	})
}
