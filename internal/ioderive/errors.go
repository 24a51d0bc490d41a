package ioderive

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// DerivativeToolUnavailableError describes an image that cannot be
// rendered. It is logged and never returned: such images are copied
// as-is.
func DerivativeToolUnavailableError(path string, err error) error {
	msg := "Cannot render <em>%s</em>"
	return &gn.Error{
		Code: errcode.DerivativeToolUnavailableError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("render %s: %w", path, err),
	}
}

// WriteDerivativeError is returned when a rendition cannot be saved.
func WriteDerivativeError(path string, err error) error {
	msg := "Cannot write derivative <em>%s</em>"
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("write derivative %s: %w", path, err),
	}
}
