package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrManifestNotFound indicates no package.json exists at the root.
	// This is the only pass-fatal condition besides a parse failure.
	ErrManifestNotFound = errors.New("package.json not found")

	// ErrManifestInvalid indicates the root package.json is not valid JSON
	ErrManifestInvalid = errors.New("package.json is not valid JSON")

	// ErrBadPattern indicates a subpath pattern that does not compile
	// into a matcher
	ErrBadPattern = errors.New("invalid subpath pattern")
)

// ManifestError carries the manifest location alongside the cause
type ManifestError struct {
	Dir string
	Err error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest error in %s: %v", e.Dir, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// NewManifestError creates a new ManifestError
func NewManifestError(dir string, err error) *ManifestError {
	return &ManifestError{Dir: dir, Err: err}
}
