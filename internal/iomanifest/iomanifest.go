// Package iomanifest loads the manifest of an extracted content pack and
// verifies its compatibility, checksum and signature. Verification works
// on the exact bytes read from disk.
package iomanifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/pkg/manifest"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed manifest.schema.json
var schemaJSON []byte

const schemaID = "inmemory://manifest.schema.json"

var (
	compiled    *jsonschema.Schema
	compileErr  error
	compileOnce sync.Once
)

// Verified is a manifest that passed every requested check.
type Verified struct {
	Manifest *manifest.Manifest
	// Raw is the manifest exactly as stored in the pack.
	Raw []byte
	// Hash is the hex SHA-256 of Raw.
	Hash string
	// Signature is the detached signature, nil when not verified.
	Signature []byte
}

// Options control which checks Verify runs.
type Options struct {
	AppVersion string
	// Strict requires a valid signature made by PublicKey.
	Strict    bool
	PublicKey string
}

// Verify loads the manifest of the pack in dir and runs the version
// gate, the checksum check and, in strict mode, the signature check.
func Verify(dir string, opts Options) (*Verified, error) {
	m, raw, err := Load(dir)
	if err != nil {
		return nil, err
	}

	if err = CheckCompat(m, opts.AppVersion); err != nil {
		return nil, err
	}

	res := &Verified{Manifest: m, Raw: raw}
	if res.Hash, err = VerifyHash(dir, raw); err != nil {
		return nil, err
	}

	if opts.Strict {
		if opts.PublicKey == "" {
			return nil, PublicKeyMissingError()
		}
		key, err := ReadPublicKey(opts.PublicKey)
		if err != nil {
			return nil, err
		}
		if res.Signature, err = VerifySignature(dir, raw, key); err != nil {
			return nil, err
		}
	}

	slog.Info("Manifest verified",
		"pack_id", m.PackID,
		"content_version", m.ContentVersion,
		"hash", res.Hash,
		"signed", res.Signature != nil,
	)
	return res, nil
}

// Load reads manifest.json, validates it against the manifest JSON
// schema and returns the typed manifest with its raw bytes.
func Load(dir string) (*manifest.Manifest, []byte, error) {
	path := filepath.Join(dir, manifest.FileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, ManifestInvalidError(path, err)
	}

	if err = validate(raw); err != nil {
		return nil, nil, ManifestInvalidError(path, err)
	}

	var res manifest.Manifest
	if err = json.Unmarshal(raw, &res); err != nil {
		return nil, nil, ManifestInvalidError(path, err)
	}
	for i := range res.Tables {
		if res.Tables[i].Format == "" {
			res.Tables[i].Format = manifest.DefaultFormat
		}
	}
	return &res, raw, nil
}

// CheckCompat fails if the pack needs a newer application.
func CheckCompat(m *manifest.Manifest, appVersion string) error {
	if m.IsCompatible(appVersion) {
		return nil
	}
	return IncompatiblePackError(m.MinAppVersion(), appVersion)
}

// VerifyHash compares the SHA-256 of raw with the first token of the
// checksum file and returns the computed hash.
func VerifyHash(dir string, raw []byte) (string, error) {
	actual := iofs.HashBytes(raw)
	path := filepath.Join(dir, filepath.FromSlash(manifest.ChecksumFile))
	data, err := os.ReadFile(path)
	if err != nil {
		return actual, ManifestTamperedError("", actual, err)
	}

	var expected string
	if fields := strings.Fields(string(data)); len(fields) > 0 {
		expected = strings.ToLower(fields[0])
	}
	if expected != actual {
		return actual, ManifestTamperedError(expected, actual, nil)
	}
	return actual, nil
}

func validate(raw []byte) error {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if compileErr = c.AddResource(schemaID, bytes.NewReader(schemaJSON)); compileErr != nil {
			return
		}
		compiled, compileErr = c.Compile(schemaID)
	})
	if compileErr != nil {
		return compileErr
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return compiled.Validate(doc)
}
