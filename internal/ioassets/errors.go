package ioassets

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// ImageHashMismatchError is returned when image content does not match
// the hash in its file name. err lists every mismatching file.
func ImageHashMismatchError(count int, err error) error {
	msg := "<em>%d</em> image(s) do not match the hash in their names"
	return &gn.Error{
		Code: errcode.ImageHashMismatchError,
		Msg:  msg,
		Vars: []any{count},
		Err:  fmt.Errorf("image hash mismatch: %w", err),
	}
}

// AssetSyncError is returned when an asset cannot be copied to the
// live directory.
func AssetSyncError(path string, err error) error {
	msg := "Cannot sync asset <em>%s</em>"
	return &gn.Error{
		Code: errcode.AssetSyncError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("asset sync of %s: %w", path, err),
	}
}
