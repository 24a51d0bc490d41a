package iomanifest

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// ManifestInvalidError is returned when manifest.json is absent or does
// not match the manifest schema.
func ManifestInvalidError(path string, err error) error {
	msg := `Pack manifest is invalid: <em>%s</em>

%s`
	return &gn.Error{
		Code: errcode.ManifestInvalidError,
		Msg:  msg,
		Vars: []any{path, err.Error()},
		Err:  fmt.Errorf("invalid manifest %s: %w", path, err),
	}
}

// IncompatiblePackError is returned when the pack needs a newer app.
func IncompatiblePackError(required, current string) error {
	msg := "Pack requires app version <em>>= %s</em>, current is <em>%s</em>"
	return &gn.Error{
		Code: errcode.IncompatiblePackError,
		Msg:  msg,
		Vars: []any{required, current},
		Err:  fmt.Errorf("pack requires %s, current %s", required, current),
	}
}

// ManifestTamperedError is returned when the manifest hash does not match
// the checksum file.
func ManifestTamperedError(expected, actual string, err error) error {
	msg := `Manifest hash mismatch

  expected: <em>%s</em>
  received: <em>%s</em>`
	if err == nil {
		err = errors.New("hash mismatch")
	}
	return &gn.Error{
		Code: errcode.ManifestTamperedError,
		Msg:  msg,
		Vars: []any{expected, actual},
		Err: fmt.Errorf("manifest hash expected %q, received %q: %w",
			expected, actual, err),
	}
}

// SignatureInvalidError is returned when strict verification fails.
func SignatureInvalidError(reason string, err error) error {
	if err == nil {
		err = errors.New(reason)
	}
	return &gn.Error{
		Code: errcode.SignatureInvalidError,
		Msg:  "Manifest signature verification failed: <em>%s</em>",
		Vars: []any{reason},
		Err:  fmt.Errorf("signature: %s: %w", reason, err),
	}
}

// PublicKeyMissingError is returned when verification is requested
// without a public key.
func PublicKeyMissingError() error {
	msg := `Signature verification requires a public key

Use <em>--public-key</em> or set <em>import.public_key</em> in config.yaml`
	return &gn.Error{
		Code: errcode.PublicKeyMissingError,
		Msg:  msg,
		Err:  errors.New("public key is not set"),
	}
}
