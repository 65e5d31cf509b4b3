package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSentinelErrors verifies sentinel errors are defined
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check string
	}{
		{"ErrManifestNotFound", ErrManifestNotFound, "not found"},
		{"ErrManifestInvalid", ErrManifestInvalid, "not valid JSON"},
		{"ErrBadPattern", ErrBadPattern, "invalid subpath pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.Contains(t, tt.err.Error(), tt.check)
		})
	}
}

// TestManifestError tests wrapping and unwrapping
func TestManifestError(t *testing.T) {
	err := NewManifestError("./nested", ErrManifestInvalid)

	assert.Contains(t, err.Error(), "./nested")
	assert.True(t, errors.Is(err, ErrManifestInvalid))
	assert.Equal(t, ErrManifestInvalid, err.Unwrap())
}
