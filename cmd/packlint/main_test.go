package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePackage(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (exitCode int, err error) {
	t.Helper()

	exitCode = 0
	prevExit := exitFunc
	exitFunc = func(code int) { exitCode = code }
	defer func() { exitFunc = prevExit }()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	return exitCode, rootCmd.Execute()
}

// TestRun_CleanPackage verifies a healthy package exits zero
func TestRun_CleanPackage(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"package.json": `{
			"name": "demo",
			"version": "1.0.0",
			"type": "module",
			"license": "MIT",
			"files": ["index.js"],
			"repository": "github:demo/demo",
			"main": "./index.js",
			"exports": "./index.js"
		}`,
		"index.js": "export const answer = 42",
	})

	code, err := execute(t, dir, "--json")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

// TestRun_ErrorDiagnosticsExitNonzero verifies error findings set the
// exit code
func TestRun_ErrorDiagnosticsExitNonzero(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"package.json": `{"name": "demo", "main": "./missing.js"}`,
	})

	code, err := execute(t, dir, "--json")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

// TestRun_MissingManifest verifies a directory without package.json
// fails outright
func TestRun_MissingManifest(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// TestRun_UnparseableManifest verifies a broken manifest is reported
// as a diagnostic with a nonzero exit
func TestRun_UnparseableManifest(t *testing.T) {
	dir := writePackage(t, map[string]string{
		"package.json": `{"name":`,
	})

	code, err := execute(t, dir, "--json")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}
