package iolock

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// LockHeldError is returned when another operation holds the lock.
func LockHeldError(path, holder string) error {
	msg := `Another operation is in progress (<em>%s</em>)

If no other kioskpack command is running, remove the stale lock:
  <em>rm %s</em>`

	return &gn.Error{
		Code: errcode.LockHeldError,
		Msg:  msg,
		Vars: []any{holder, path},
		Err:  fmt.Errorf("lock %s held by %s", path, holder),
	}
}

// LockCreateError is returned when the lock file cannot be written.
func LockCreateError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create lock file <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create lock %s: %w", path, err),
	}
}
