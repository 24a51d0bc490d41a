package iotables

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// TableReadFailureError is returned when a declared table cannot be
// read or parsed.
func TableReadFailureError(table, path string, err error) error {
	msg := "Unable to read <em>%s</em> table at <em>%s</em>"
	return &gn.Error{
		Code: errcode.TableReadFailureError,
		Msg:  msg,
		Vars: []any{table, path},
		Err:  fmt.Errorf("table %s at %s: %w", table, path, err),
	}
}
