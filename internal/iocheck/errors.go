package iocheck

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// DatabaseMissingError is returned when the database to work on does
// not exist.
func DatabaseMissingError(path string) error {
	msg := "Database not found at <em>%s</em>"
	return &gn.Error{
		Code: errcode.DatabaseMissingError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("database %s does not exist", path),
	}
}
