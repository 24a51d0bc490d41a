// Package ioassets copies image files and flipbook bundles from an
// extracted pack into the live asset directories.
//
// Image files must be named {sha256}.{ext}. Every matching file is
// hashed before anything is copied, so a pack with a single corrupted
// image leaves the live image directory untouched.
package ioassets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/kioskware/kioskpack/pkg/manifest"
)

var imageName = regexp.MustCompile(`^([a-fA-F0-9]{64})\.(\w+)$`)

// Stats summarises an asset sync.
type Stats struct {
	// Images is the number of copied image files.
	Images int

	// Skipped is the number of files ignored because of their names.
	Skipped int

	// Flipbooks is true if the pack carried a flipbook directory.
	Flipbooks bool
}

// Sync copies assets declared in the manifest from packDir into the
// live directories of p.
func Sync(packDir string, m *manifest.Manifest, p layout.Paths) (*Stats, error) {
	res := &Stats{}

	imgDir, err := iofs.Within(packDir, m.Assets.Images.Path)
	if err != nil {
		return nil, AssetSyncError(m.Assets.Images.Path, err)
	}
	res.Images, res.Skipped, err = SyncImages(imgDir, p.ImagesDir)
	if err != nil {
		return nil, err
	}

	fbDir, err := iofs.Within(packDir, m.Assets.Flipbooks.Path)
	if err != nil {
		return nil, AssetSyncError(m.Assets.Flipbooks.Path, err)
	}
	res.Flipbooks, err = SyncFlipbooks(fbDir, p.FlipbooksDir)
	if err != nil {
		return nil, err
	}
	return res, nil
}

type image struct {
	rel string
	sha string
}

// SyncImages verifies and copies images from src to dst, preserving
// relative paths. It returns numbers of copied and skipped files.
// A missing src directory is not an error.
func SyncImages(src, dst string) (int, int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Info("Pack has no images directory", "path", src)
		return 0, 0, nil
	}

	files, err := iofs.ListFiles(src)
	if err != nil {
		return 0, 0, err
	}

	var images []image
	var skipped int
	for _, rel := range files {
		m := imageName.FindStringSubmatch(filepath.Base(rel))
		if m == nil {
			iologger.Warn("Skipping <em>%s</em>: name is not {sha256}.{ext}", rel)
			skipped++
			continue
		}
		images = append(images, image{rel: rel, sha: strings.ToLower(m[1])})
	}

	if err = verify(src, images); err != nil {
		return 0, skipped, err
	}

	if len(images) == 0 {
		return 0, skipped, nil
	}

	bar := pb.Full.Start(len(images))
	bar.Set("prefix", "Copying images: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for _, v := range images {
		err = iofs.CopyFile(filepath.Join(src, v.rel), filepath.Join(dst, v.rel))
		if err != nil {
			return 0, skipped, AssetSyncError(v.rel, err)
		}
		bar.Increment()
	}
	slog.Info("Images synced", "copied", len(images), "skipped", skipped)
	return len(images), skipped, nil
}

// verify hashes every image and reports all mismatches at once.
func verify(src string, images []image) error {
	var errs *multierror.Error
	for _, v := range images {
		sha, err := iofs.HashFile(filepath.Join(src, v.rel))
		if err != nil {
			return err
		}
		if sha != v.sha {
			errs = multierror.Append(errs,
				fmt.Errorf("%s: content hash is %s", v.rel, sha))
		}
	}
	if errs == nil {
		return nil
	}
	return ImageHashMismatchError(errs.Len(), errs)
}

// SyncFlipbooks copies the flipbook directory over dst. It returns
// false if the pack has no flipbooks.
func SyncFlipbooks(src, dst string) (bool, error) {
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		slog.Info("Pack has no flipbooks directory", "path", src)
		return false, nil
	}
	if err = iofs.CopyDir(src, dst); err != nil {
		return false, AssetSyncError(src, err)
	}
	slog.Info("Flipbooks synced", "path", dst)
	return true, nil
}
