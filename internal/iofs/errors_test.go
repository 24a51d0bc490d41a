package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Structure verifies code, vars and wrapping of every
// file system error.
func TestErrors_Structure(t *testing.T) {
	originalErr := errors.New("permission denied")
	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		path string
		msg  string
	}{
		{"create dir", CreateDirError("/test/dir", originalErr),
			errcode.CreateDirError, "/test/dir", "cannot create directory"},
		{"copy file", CopyFileError("/test/a.jpg", originalErr),
			errcode.CopyFileError, "/test/a.jpg", "cannot copy"},
		{"read file", ReadFileError("/test/data.csv", originalErr),
			errcode.ReadFileError, "/test/data.csv", "cannot read /test/data.csv"},
		{"remove file", RemoveFileError("/test/app.db-wal", originalErr),
			errcode.RemoveFileError, "/test/app.db-wal", "cannot remove"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])
			assert.ErrorIs(t, gnErr.Err, originalErr)
			assert.Contains(t, gnErr.Err.Error(), tt.msg)
			assert.Contains(t, gnErr.Err.Error(), "iofs.TestErrors_Structure",
				"Error should name the calling function")
		})
	}
}
