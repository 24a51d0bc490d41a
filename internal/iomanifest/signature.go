package iomanifest

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kioskware/kioskpack/pkg/manifest"
)

var nonBase64 = regexp.MustCompile(`[^A-Za-z0-9+/=]`)

// VerifySignature checks the detached Ed25519 signature of raw and
// returns the signature bytes.
func VerifySignature(dir string, raw []byte, key ed25519.PublicKey) ([]byte, error) {
	path := filepath.Join(dir, manifest.SignatureFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SignatureInvalidError("signature file is missing", err)
	}

	sig, err := decodeSignature(data)
	if err != nil {
		return nil, SignatureInvalidError("signature is malformed", err)
	}

	if !ed25519.Verify(key, raw, sig) {
		return nil, SignatureInvalidError("signature does not match manifest", nil)
	}
	return sig, nil
}

// ReadPublicKey reads an Ed25519 public key file.
func ReadPublicKey(path string) (ed25519.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SignatureInvalidError("cannot read public key", err)
	}
	key, err := ParsePublicKey(data)
	if err != nil {
		return nil, SignatureInvalidError("public key is malformed", err)
	}
	return key, nil
}

// ParsePublicKey accepts a PEM block (SPKI or raw key), base64 text or
// raw 32 bytes. Without PEM markers every non-base64 character is
// stripped before decoding.
func ParsePublicKey(data []byte) (ed25519.PublicKey, error) {
	if strings.Contains(string(data), "-----BEGIN") {
		block, _ := pem.Decode(data)
		if block == nil {
			return nil, errors.New("cannot decode PEM block")
		}
		return keyFromBytes(block.Bytes)
	}

	if len(data) == ed25519.PublicKeySize {
		return ed25519.PublicKey(data), nil
	}

	text := nonBase64.ReplaceAllString(string(data), "")
	der, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("cannot decode base64 key: %w", err)
	}
	return keyFromBytes(der)
}

func keyFromBytes(b []byte) (ed25519.PublicKey, error) {
	if len(b) == ed25519.PublicKeySize {
		return ed25519.PublicKey(b), nil
	}
	pub, err := x509.ParsePKIXPublicKey(b)
	if err != nil {
		return nil, err
	}
	key, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("key of type %T is not Ed25519", pub)
	}
	return key, nil
}

// decodeSignature accepts raw 64 bytes or base64 text.
func decodeSignature(data []byte) ([]byte, error) {
	if len(data) == ed25519.SignatureSize {
		return data, nil
	}
	text := nonBase64.ReplaceAllString(string(data), "")
	sig, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, err
	}
	if len(sig) != ed25519.SignatureSize {
		return nil, fmt.Errorf("signature has %d bytes, want %d",
			len(sig), ed25519.SignatureSize)
	}
	return sig, nil
}
