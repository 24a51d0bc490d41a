package iomanifest_test

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/internal/iomanifest"
	"github.com/kioskware/kioskpack/internal/iotesting"
	"github.com/kioskware/kioskpack/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	return gnErr.Code
}

func TestVerifyValidPack(t *testing.T) {
	dir := iotesting.NewPack(t).WriteDir(t)

	v, err := iomanifest.Verify(dir, iomanifest.Options{AppVersion: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "alumni-2024-05", v.Manifest.PackID)
	assert.Equal(t, 3, v.Manifest.ContentVersion)
	assert.Equal(t, iotesting.Sha(v.Raw), v.Hash)
	assert.Nil(t, v.Signature)

	tbl, ok := v.Manifest.FindTable("person")
	require.True(t, ok)
	assert.Equal(t, "csv", tbl.Format)
}

func TestVerifyTampered(t *testing.T) {
	p := iotesting.NewPack(t)
	p.Tamper = true
	dir := p.WriteDir(t)

	_, err := iomanifest.Verify(dir, iomanifest.Options{AppVersion: "1.0.0"})
	assert.Equal(t, errcode.ManifestTamperedError, errCode(t, err))
}

func TestVerifyMissingChecksum(t *testing.T) {
	dir := iotesting.NewPack(t).WriteDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "checksums", "manifest.sha256")))

	_, err := iomanifest.Verify(dir, iomanifest.Options{AppVersion: "1.0.0"})
	assert.Equal(t, errcode.ManifestTamperedError, errCode(t, err))
}

func TestVersionGate(t *testing.T) {
	tests := []struct {
		msg, min, app string
		ok            bool
	}{
		{"higher minimum", "2.1", "2.0.9", false},
		{"equal", "2.1.0", "2.1", true},
		{"lower", "1.9.9", "2.0.0", true},
		{"v prefix", "v1.2", "1.10", true},
	}
	for _, v := range tests {
		p := iotesting.NewPack(t)
		p.MinAppSemver = v.min
		dir := p.WriteDir(t)

		_, err := iomanifest.Verify(dir, iomanifest.Options{AppVersion: v.app})
		if v.ok {
			assert.NoError(t, err, v.msg)
			continue
		}
		assert.Equal(t, errcode.IncompatiblePackError, errCode(t, err), v.msg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		msg, body string
	}{
		{"not json", "{"},
		{"missing tables", `{"pack_id":"x","content_version":1,"created_utc":"t",
			"assets":{"images":{"path":"i"},"flipbooks":{"path":"f"}}}`},
		{"wrong type", `{"pack_id":"x","content_version":"1","created_utc":"t","tables":[],
			"assets":{"images":{"path":"i"},"flipbooks":{"path":"f"}}}`},
		{"fractional version", `{"pack_id":"x","content_version":1.5,"created_utc":"t","tables":[],
			"assets":{"images":{"path":"i"},"flipbooks":{"path":"f"}}}`},
		{"bad format", `{"pack_id":"x","content_version":1,"created_utc":"t",
			"tables":[{"name":"person","path":"p.csv","format":"xml"}],
			"assets":{"images":{"path":"i"},"flipbooks":{"path":"f"}}}`},
	}
	for _, v := range tests {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(v.body), 0644))
		_, _, err := iomanifest.Load(dir)
		assert.Equal(t, errcode.ManifestInvalidError, errCode(t, err), v.msg)
	}

	_, _, err := iomanifest.Load(t.TempDir())
	assert.Equal(t, errcode.ManifestInvalidError, errCode(t, err))
}

func TestVerifySignature(t *testing.T) {
	pub, priv := iotesting.KeyPair()
	keyPath := filepath.Join(t.TempDir(), "pack.pub")
	require.NoError(t, os.WriteFile(keyPath, pub, 0644))

	p := iotesting.NewPack(t)
	p.SigningKey = priv
	dir := p.WriteDir(t)

	opts := iomanifest.Options{AppVersion: "1.0.0", Strict: true, PublicKey: keyPath}
	v, err := iomanifest.Verify(dir, opts)
	require.NoError(t, err)
	assert.Len(t, v.Signature, 64)

	t.Run("unsigned pack", func(t *testing.T) {
		dir := iotesting.NewPack(t).WriteDir(t)
		_, err := iomanifest.Verify(dir, opts)
		assert.Equal(t, errcode.SignatureInvalidError, errCode(t, err))
	})

	t.Run("wrong key", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "other.pub")
		bad := make([]byte, 32)
		bad[0] = 1
		require.NoError(t, os.WriteFile(other, bad, 0644))
		o := opts
		o.PublicKey = other
		_, err := iomanifest.Verify(dir, o)
		assert.Equal(t, errcode.SignatureInvalidError, errCode(t, err))
	})

	t.Run("no key", func(t *testing.T) {
		o := opts
		o.PublicKey = ""
		_, err := iomanifest.Verify(dir, o)
		assert.Equal(t, errcode.PublicKeyMissingError, errCode(t, err))
	})

	t.Run("tampered signed pack", func(t *testing.T) {
		p := iotesting.NewPack(t)
		p.SigningKey = priv
		p.Tamper = true
		_, err := iomanifest.Verify(p.WriteDir(t), opts)
		assert.Equal(t, errcode.ManifestTamperedError, errCode(t, err))
	})
}

func TestParsePublicKey(t *testing.T) {
	pub, _ := iotesting.KeyPair()
	der, err := x509.MarshalPKIXPublicKey(pub)
	require.NoError(t, err)

	spki := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	rawPEM := pem.EncodeToMemory(&pem.Block{Type: "ED25519 PUBLIC KEY", Bytes: pub})
	b64 := base64.StdEncoding.EncodeToString(pub)

	inputs := map[string][]byte{
		"raw":          pub,
		"spki pem":     spki,
		"raw pem":      rawPEM,
		"base64":       []byte(b64 + "\n"),
		"base64 noisy": []byte(" " + b64[:10] + "\n" + b64[10:] + " \n"),
		"spki base64":  []byte(base64.StdEncoding.EncodeToString(der)),
	}
	for name, in := range inputs {
		key, err := iomanifest.ParsePublicKey(in)
		require.NoError(t, err, name)
		assert.Equal(t, []byte(pub), []byte(key), name)
	}

	_, err = iomanifest.ParsePublicKey([]byte("not a key"))
	assert.Error(t, err)
}
