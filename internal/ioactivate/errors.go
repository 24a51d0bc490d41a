package ioactivate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// StagedDatabaseMissingError is returned when there is nothing to
// activate.
func StagedDatabaseMissingError(path string) error {
	msg := `Staged database not found at <em>%s</em>

Run <em>kioskpack import-pack</em> first`
	return &gn.Error{
		Code: errcode.StagedDatabaseMissingError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("staged database %s does not exist", path),
	}
}

// NoBackupAvailableError is returned when there is nothing to roll
// back to.
func NoBackupAvailableError(path string) error {
	msg := "No backup database found at <em>%s</em>"
	return &gn.Error{
		Code: errcode.NoBackupAvailableError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("backup database %s does not exist", path),
	}
}

// ActivationRenameError is returned when a database file cannot be
// moved into the active path.
func ActivationRenameError(src, dst string, err error) error {
	msg := "Cannot move <em>%s</em> to <em>%s</em>"
	return &gn.Error{
		Code: errcode.ActivationRenameError,
		Msg:  msg,
		Vars: []any{src, dst},
		Err:  fmt.Errorf("rename %s to %s: %w", src, dst, err),
	}
}
