package ioimport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// ArchiveExtractError is returned when the pack archive cannot be
// unpacked.
func ArchiveExtractError(path string, err error) error {
	msg := "Cannot extract pack <em>%s</em>"
	return &gn.Error{
		Code: errcode.ArchiveExtractError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("extract %s: %w", path, err),
	}
}

// ImportLogError is returned when the import record cannot be written.
func ImportLogError(path string, err error) error {
	msg := "Cannot write import log <em>%s</em>"
	return &gn.Error{
		Code: errcode.ImportLogError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("import log %s: %w", path, err),
	}
}
