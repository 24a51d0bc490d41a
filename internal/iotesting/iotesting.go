// Package iotesting provides shared test utilities: isolated
// configurations and content packs built on the fly.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/stretchr/testify/require"
)

// Config returns a configuration with a content root and home directory
// inside t.TempDir(), so tests never touch real content.
func Config(t *testing.T) *config.Config {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptContentRoot(filepath.Join(tmp, "content")),
		config.OptHomeDir(filepath.Join(tmp, "home")),
		config.OptJobsNumber(2),
		config.OptDerivativesThumbSize(16),
		config.OptDerivativesScreenSize(32),
	})
	return cfg
}

// JPEG returns an encoded JPEG image of the given size.
func JPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 120, B: 40, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

// PNG returns an encoded PNG image of the given size.
func PNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 10, G: 60, B: 220, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

// Sha returns the hex SHA-256 of data.
func Sha(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// KeyPair returns a deterministic Ed25519 key pair for tests.
func KeyPair() (ed25519.PublicKey, ed25519.PrivateKey) {
	seed := bytes.Repeat([]byte{7}, ed25519.SeedSize)
	priv := ed25519.NewKeyFromSeed(seed)
	return priv.Public().(ed25519.PublicKey), priv
}
