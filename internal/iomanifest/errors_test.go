package iomanifest

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Structure(t *testing.T) {
	originalErr := errors.New("unexpected EOF")
	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		vars int
	}{
		{"invalid", ManifestInvalidError("/p/manifest.json", originalErr),
			errcode.ManifestInvalidError, 2},
		{"incompatible", IncompatiblePackError("2.0", "1.0"),
			errcode.IncompatiblePackError, 2},
		{"tampered", ManifestTamperedError("aa", "bb", nil),
			errcode.ManifestTamperedError, 2},
		{"signature", SignatureInvalidError("bad", originalErr),
			errcode.SignatureInvalidError, 1},
		{"no key", PublicKeyMissingError(),
			errcode.PublicKeyMissingError, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.Len(t, gnErr.Vars, tt.vars)
			assert.NotEmpty(t, gnErr.Msg)
			require.NotNil(t, gnErr.Err)
		})
	}

	gnErr := ManifestInvalidError("x", originalErr).(*gn.Error)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
