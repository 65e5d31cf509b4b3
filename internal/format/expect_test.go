package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/vfs"
)

// TestExpected tests format expectation from extensions and ancestor
// manifests
func TestExpected(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		path  string
		want  domain.CodeFormat
	}{
		{
			name: "mjs extension wins over commonjs package",
			files: map[string]string{
				"package.json": `{"type": "commonjs"}`,
			},
			path: "./index.mjs",
			want: domain.FormatESM,
		},
		{
			name: "cjs extension wins over module package",
			files: map[string]string{
				"package.json": `{"type": "module"}`,
			},
			path: "./index.cjs",
			want: domain.FormatCJS,
		},
		{
			name:  "d.mts is ESM",
			files: map[string]string{},
			path:  "./index.d.mts",
			want:  domain.FormatESM,
		},
		{
			name:  "d.cts is CJS",
			files: map[string]string{},
			path:  "./index.d.cts",
			want:  domain.FormatCJS,
		},
		{
			name: "native addon marker is stripped before extension rules",
			files: map[string]string{
				"package.json": `{"type": "module"}`,
			},
			path: "./build/addon.cjs.node",
			want: domain.FormatCJS,
		},
		{
			name:  "js with no manifest defaults to CJS",
			files: map[string]string{},
			path:  "./index.js",
			want:  domain.FormatCJS,
		},
		{
			name: "js under module package",
			files: map[string]string{
				"package.json": `{"name": "x", "type": "module"}`,
			},
			path: "./dist/deep/index.js",
			want: domain.FormatESM,
		},
		{
			name: "nearest manifest overrides the root",
			files: map[string]string{
				"package.json":      `{"type": "module"}`,
				"dist/package.json": `{"type": "commonjs"}`,
			},
			path: "./dist/index.js",
			want: domain.FormatCJS,
		},
		{
			name: "manifest without type keeps walking up",
			files: map[string]string{
				"package.json":      `{"type": "module"}`,
				"dist/package.json": `{"sideEffects": false}`,
			},
			path: "./dist/index.js",
			want: domain.FormatESM,
		},
		{
			name: "malformed intermediate manifest is skipped",
			files: map[string]string{
				"package.json":      `{"type": "module"}`,
				"dist/package.json": `{"type":`,
			},
			path: "./dist/index.js",
			want: domain.FormatESM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := vfs.NewMemory(tt.files)
			assert.Equal(t, tt.want, Expected(fs, tt.path))
		})
	}
}

// TestHasExplicitExtension tests the format-pinning extension set
func TestHasExplicitExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"./a.mjs", true},
		{"./a.cjs", true},
		{"./a.d.mts", true},
		{"./a.d.cts", true},
		{"./a.mts", true},
		{"./a.cjs.node", true},
		{"./a.js", false},
		{"./a.d.ts", false},
		{"./a.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, HasExplicitExtension(tt.path))
		})
	}
}

// TestDeclarationHelpers tests declaration path classification and
// pairing
func TestDeclarationHelpers(t *testing.T) {
	assert.True(t, IsDeclaration("./index.d.ts"))
	assert.True(t, IsDeclaration("./index.d.mts"))
	assert.True(t, IsDeclaration("./index.d.cts"))
	assert.False(t, IsDeclaration("./index.ts"))

	assert.True(t, IsRawTypeScript("./src/index.ts"))
	assert.True(t, IsRawTypeScript("./src/index.tsx"))
	assert.True(t, IsRawTypeScript("./src/index.mts"))
	assert.False(t, IsRawTypeScript("./index.d.ts"))
	assert.False(t, IsRawTypeScript("./index.js"))

	assert.Equal(t, "./index.d.mts", DeclarationFor("./index.mjs"))
	assert.Equal(t, "./index.d.cts", DeclarationFor("./index.cjs"))
	assert.Equal(t, "./index.d.ts", DeclarationFor("./index.js"))
	assert.Equal(t, "", DeclarationFor("./index.wasm"))

	assert.Equal(t, domain.FormatESM, DeclarationFormat("./index.d.mts"))
	assert.Equal(t, domain.FormatCJS, DeclarationFormat("./index.d.cts"))
	assert.Equal(t, domain.FormatUnknown, DeclarationFormat("./index.d.ts"))

	assert.Equal(t, ".mjs", Extension(domain.FormatESM))
	assert.Equal(t, ".cjs", Extension(domain.FormatCJS))
	assert.Equal(t, ".d.mts", DeclarationExtension(domain.FormatESM))
	assert.Equal(t, ".d.cts", DeclarationExtension(domain.FormatCJS))
}
