package iodb

import (
	"errors"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDBOpenError_Structure verifies error structure.
func TestDBOpenError_Structure(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := DBOpenError("/tmp/app.db", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, errcode.DBOpenError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 1)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestDBScriptError_Truncates verifies long statements are shortened.
func TestDBScriptError_Truncates(t *testing.T) {
	originalErr := errors.New("CHECK constraint failed")
	err := DBScriptError(4, strings.Repeat("x", 200), originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBScriptError, gnErr.Code)
	assert.Equal(t, 5, gnErr.Vars[0])
	assert.Len(t, gnErr.Vars[1], 83)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestDBQueryError_Structure verifies error structure.
func TestDBQueryError_Structure(t *testing.T) {
	originalErr := errors.New("no such table")
	err := DBQueryError("SELECT 1", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBQueryError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
