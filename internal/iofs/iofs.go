// Package iofs provides file system operations for kioskpack: home
// directories, the default config file, the content layout and file
// helpers shared by the pipeline.
package iofs

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/facette/natsort"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/kioskware/kioskpack/pkg/layout"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config and log directories in homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureLayout creates every directory of the content tree.
func EnsureLayout(p layout.Paths) error {
	for _, v := range p.Dirs() {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex SHA-256 of a file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ReadFileError(path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err = io.Copy(h, f); err != nil {
		return "", ReadFileError(path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Within joins a slash-separated relative path to dir. Leading slashes
// are ignored. Paths that escape dir are rejected.
func Within(dir, rel string) (string, error) {
	rel = strings.TrimLeft(rel, "/")
	path := filepath.Join(dir, filepath.FromSlash(rel))
	inside, err := filepath.Rel(dir, path)
	if err != nil || inside == ".." ||
		strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside of %s", rel, dir)
	}
	return path, nil
}

// CopyFile copies src to dst, creating parent directories of dst.
// An existing dst is overwritten.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return CopyFileError(dst, err)
	}
	defer in.Close()

	if err = touchDir(filepath.Dir(dst)); err != nil {
		return err
	}

	tmp := dst + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return CopyFileError(dst, err)
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return CopyFileError(dst, err)
	}
	if err = out.Close(); err != nil {
		os.Remove(tmp)
		return CopyFileError(dst, err)
	}
	if err = os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return CopyFileError(dst, err)
	}
	return nil
}

// CopyDir recursively copies the content of src into dst, overwriting
// files that already exist.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return ReadFileError(path, err)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return ReadFileError(path, err)
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return touchDir(target)
		}
		return CopyFile(path, target)
	})
}

// ListFiles returns paths of regular files under dir relative to dir,
// in natural order.
func ListFiles(dir string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		res = append(res, rel)
		return nil
	})
	if err != nil {
		return nil, ReadFileError(dir, err)
	}
	natsort.Sort(res)
	return res, nil
}

// RemoveSidecars deletes WAL and SHM files of a database.
func RemoveSidecars(dbPath string) error {
	for _, v := range layout.Sidecars(dbPath) {
		if err := os.Remove(v); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return RemoveFileError(v, err)
		}
	}
	return nil
}

// RemoveDB deletes a database file together with its sidecars.
func RemoveDB(dbPath string) error {
	err := os.Remove(dbPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return RemoveFileError(dbPath, err)
	}
	return RemoveSidecars(dbPath)
}
