// Package ioderive implements lifecycle.Deriver. It renders square
// thumbnails and screen-sized copies of every image in the live image
// directory.
package ioderive

import (
	"context"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/cheggaaa/pb/v3"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/kioskware/kioskpack/pkg/lifecycle"
	"golang.org/x/sync/errgroup"
)

var supported = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// decodable are MIME types the imaging package can decode and encode.
var decodable = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
}

type deriver struct {
	cfg   *config.Config
	paths layout.Paths
}

// New creates a Deriver working in the content root of cfg.
func New(cfg *config.Config) lifecycle.Deriver {
	return &deriver{cfg: cfg, paths: layout.FromConfig(cfg)}
}

type counters struct {
	generated atomic.Int64
	skipped   atomic.Int64
	copied    atomic.Int64
}

// Generate creates missing thumbnail and screen renditions. With
// Derivatives.Force all renditions are recreated.
func (d *deriver) Generate(ctx context.Context) (*lifecycle.DeriveStats, error) {
	res := &lifecycle.DeriveStats{}
	if !iofs.Exists(d.paths.ImagesDir) {
		iologger.Warn("No images available for derivative generation")
		return res, nil
	}

	files, err := iofs.ListFiles(d.paths.ImagesDir)
	if err != nil {
		return nil, err
	}
	var images []string
	for _, v := range files {
		if _, ok := supported[strings.ToLower(filepath.Ext(v))]; ok {
			images = append(images, v)
		}
	}
	res.Images = len(images)
	if len(images) == 0 {
		iologger.Warn("No images available for derivative generation")
		return res, nil
	}

	bar := pb.Full.Start(len(images))
	bar.Set("prefix", "Generating derivatives: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var cnt counters
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(d.cfg.JobsNumber, 1))
	for _, rel := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			defer bar.Increment()
			return d.derive(rel, &cnt)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	res.Generated = int(cnt.generated.Load())
	res.Skipped = int(cnt.skipped.Load())
	res.Copied = int(cnt.copied.Load())
	slog.Info("Derivatives generated",
		"images", res.Images,
		"generated", res.Generated,
		"skipped", res.Skipped,
		"copied", res.Copied,
	)
	return res, nil
}

type rendition struct {
	target string
	render func(img image.Image) image.Image
}

func (d *deriver) derive(rel string, cnt *counters) error {
	src := filepath.Join(d.paths.ImagesDir, rel)
	size := d.cfg.Derivatives

	var todo []rendition
	thumb := filepath.Join(d.paths.ThumbDir, rel)
	if size.Force || !iofs.Exists(thumb) {
		todo = append(todo, rendition{
			target: thumb,
			render: func(img image.Image) image.Image {
				return imaging.Fill(img, size.ThumbSize, size.ThumbSize,
					imaging.Center, imaging.Lanczos)
			},
		})
	}
	screen := filepath.Join(d.paths.ScreenDir, rel)
	if size.Force || !iofs.Exists(screen) {
		todo = append(todo, rendition{
			target: screen,
			render: func(img image.Image) image.Image {
				return imaging.Fit(img, size.ScreenSize, size.ScreenSize,
					imaging.Lanczos)
			},
		})
	}
	if len(todo) == 0 {
		cnt.skipped.Add(1)
		return nil
	}

	img, err := d.open(src)
	if err != nil {
		slog.Warn("Falling back to a copy of the original",
			"error", DerivativeToolUnavailableError(rel, err))
		iologger.Warn("Cannot render <em>%s</em>, copying the original", rel)
		for _, v := range todo {
			if err = iofs.CopyFile(src, v.target); err != nil {
				return err
			}
		}
		cnt.copied.Add(1)
		return nil
	}

	for _, v := range todo {
		if err = d.save(v.render(img), v.target); err != nil {
			return err
		}
	}
	cnt.generated.Add(1)
	return nil
}

// open decodes an image applying its EXIF orientation.
func (d *deriver) open(path string) (image.Image, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}
	if _, ok := decodable[mt.String()]; !ok {
		return nil, &unsupportedError{mime: mt.String()}
	}
	return imaging.Open(path, imaging.AutoOrientation(true))
}

func (d *deriver) save(img image.Image, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return iofs.CreateDirError(filepath.Dir(target), err)
	}
	tmp := target + ".part" + filepath.Ext(target)
	err := imaging.Save(img, tmp, imaging.JPEGQuality(d.cfg.Derivatives.JPEGQuality))
	if err != nil {
		os.Remove(tmp)
		return WriteDerivativeError(target, err)
	}
	if err = os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return WriteDerivativeError(target, err)
	}
	return nil
}

type unsupportedError struct {
	mime string
}

func (e *unsupportedError) Error() string {
	return "no decoder for " + e.mime
}
