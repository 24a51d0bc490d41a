package ioassets_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/internal/ioassets"
	"github.com/kioskware/kioskpack/internal/iomanifest"
	"github.com/kioskware/kioskpack/internal/iotesting"
	"github.com/kioskware/kioskpack/pkg/errcode"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync(t *testing.T) {
	p := iotesting.NewPack(t)
	p.Images["readme.txt"] = []byte("not an image")
	dir := p.WriteDir(t)
	m, _, err := iomanifest.Load(dir)
	require.NoError(t, err)

	paths := layout.New(t.TempDir())
	stats, err := ioassets.Sync(dir, m, paths)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Images)
	assert.Equal(t, 1, stats.Skipped)
	assert.True(t, stats.Flipbooks)

	assert.FileExists(t, paths.ImagePath(p.ImageSha, "jpg"))
	assert.NoFileExists(t, filepath.Join(paths.ImagesDir, "readme.txt"))
	assert.FileExists(t, filepath.Join(paths.FlipbooksDir, "gazette", "manifest.json"))

	// second sync overwrites without errors
	_, err = ioassets.Sync(dir, m, paths)
	require.NoError(t, err)
}

func TestSyncHashMismatch(t *testing.T) {
	p := iotesting.NewPack(t)
	bad := iotesting.Sha([]byte("something else"))
	p.Images[bad+".jpg"] = iotesting.JPEG(t, 8, 8)
	dir := p.WriteDir(t)
	m, _, err := iomanifest.Load(dir)
	require.NoError(t, err)

	paths := layout.New(t.TempDir())
	_, err = ioassets.Sync(dir, m, paths)
	require.Error(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ImageHashMismatchError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), bad+".jpg")

	assert.NoFileExists(t, paths.ImagePath(bad, "jpg"))
	assert.NoFileExists(t, paths.ImagePath(p.ImageSha, "jpg"),
		"valid images are not copied when any image is rejected")
}

func TestSyncOptionalDirs(t *testing.T) {
	p := iotesting.NewPack(t)
	p.Images = nil
	p.Flipbooks = nil
	dir := p.WriteDir(t)
	m, _, err := iomanifest.Load(dir)
	require.NoError(t, err)

	paths := layout.New(t.TempDir())
	stats, err := ioassets.Sync(dir, m, paths)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Images)
	assert.False(t, stats.Flipbooks)

	_, err = os.Stat(paths.FlipbooksDir)
	assert.True(t, os.IsNotExist(err))
}
