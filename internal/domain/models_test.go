package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseSeverity tests severity parsing with fallback
func TestParseSeverity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Severity
	}{
		{"error", "error", SeverityError},
		{"error uppercase", "ERROR", SeverityError},
		{"warning", "warning", SeverityWarning},
		{"warn alias", "warn", SeverityWarning},
		{"suggestion", "suggestion", SeveritySuggestion},
		{"unknown reports everything", "bogus", SeveritySuggestion},
		{"empty reports everything", "", SeveritySuggestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSeverity(tt.input))
		})
	}
}

// TestSeverity_Rank verifies the severity ordering
func TestSeverity_Rank(t *testing.T) {
	assert.Greater(t, SeverityError.Rank(), SeverityWarning.Rank())
	assert.Greater(t, SeverityWarning.Rank(), SeveritySuggestion.Rank())
	assert.Greater(t, SeveritySuggestion.Rank(), Severity("").Rank())
}

// TestCodeFormat_Explicit tests the explicit format predicate
func TestCodeFormat_Explicit(t *testing.T) {
	assert.True(t, FormatESM.Explicit())
	assert.True(t, FormatCJS.Explicit())
	assert.False(t, FormatMixed.Explicit())
	assert.False(t, FormatUnknown.Explicit())
}

// TestPath_String tests path rendering in manifest notation
func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"empty", nil, ""},
		{"single field", Path{"main"}, "main"},
		{"nested fields", Path{"repository", "url"}, "repository.url"},
		{"quoted subpath key", Path{"exports", "."}, `exports["."]`},
		{"mixed notation", Path{"exports", ".", "import", "types"}, `exports["."].import.types`},
		{"wildcard key", Path{"exports", "./feature/*"}, `exports["./feature/*"]`},
		{"array index", Path{"exports", ".", "0"}, `exports["."]["0"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

// TestPath_Child verifies children never alias the parent's backing array
func TestPath_Child(t *testing.T) {
	base := Path{"exports", "."}
	a := base.Child("import")
	b := base.Child("require")

	assert.Equal(t, Path{"exports", ".", "import"}, a)
	assert.Equal(t, Path{"exports", ".", "require"}, b)
	assert.Equal(t, Path{"exports", "."}, base)
}

// TestDiagnostic_SortKey tests key stability and discrimination
func TestDiagnostic_SortKey(t *testing.T) {
	d1 := Diagnostic{
		Code: CodeFileDoesNotExist,
		Path: Path{"main"},
		Args: map[string]any{"filePath": "./a.js", "extra": 1},
	}
	d2 := Diagnostic{
		Code: CodeFileDoesNotExist,
		Path: Path{"main"},
		Args: map[string]any{"extra": 1, "filePath": "./a.js"},
	}
	d3 := Diagnostic{
		Code: CodeFileDoesNotExist,
		Path: Path{"main"},
		Args: map[string]any{"filePath": "./b.js", "extra": 1},
	}

	assert.Equal(t, d1.SortKey(), d2.SortKey())
	assert.NotEqual(t, d1.SortKey(), d3.SortKey())
	assert.NotEqual(t, d1.SortKey(), Diagnostic{Code: CodeFileNotPublished, Path: Path{"main"}}.SortKey())
}
