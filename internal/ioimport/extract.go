package ioimport

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/klauspost/compress/zip"
)

// extract unpacks a zip archive into dir. Entries that would land
// outside of dir are rejected.
func extract(archive, dir string) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return ArchiveExtractError(archive, err)
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := iofs.Within(dir, f.Name)
		if err != nil {
			return ArchiveExtractError(archive, err)
		}
		if f.FileInfo().IsDir() {
			if err = os.MkdirAll(target, 0755); err != nil {
				return iofs.CreateDirError(target, err)
			}
			continue
		}
		if err = extractFile(f, target); err != nil {
			return ArchiveExtractError(archive, err)
		}
	}

	slog.Info("Pack extracted", "archive", archive, "files", len(r.File))
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
