package iotesting

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/kioskware/kioskpack/pkg/manifest"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// Pack describes a content pack to be written by tests.
type Pack struct {
	PackID         string
	ContentVersion int
	MinAppSemver   string

	// Tables maps table names to CSV content. They are stored under
	// tables/{name}.csv.
	Tables map[string]string

	// Images maps file names to content, stored under assets/images.
	Images map[string][]byte

	// Flipbooks maps relative paths to content, stored under
	// assets/flipbooks.
	Flipbooks map[string][]byte

	// SigningKey signs the manifest when set.
	SigningKey ed25519.PrivateKey

	// Tamper changes one byte of the manifest after its checksum is
	// computed.
	Tamper bool

	// ImageSha is the hash of the default image.
	ImageSha string
}

// NewPack returns a small consistent pack: three people, two cohorts,
// one photo, a publication with a flipbook and an archive item.
func NewPack(t *testing.T) *Pack {
	t.Helper()
	img := JPEG(t, 64, 48)
	sha := Sha(img)

	return &Pack{
		PackID:         "alumni-2024-05",
		ContentVersion: 3,
		ImageSha:       sha,
		Tables: map[string]string{
			"person": "\ufeffid,first_name,middle_name,last_name,suffix,display_name,slug,bio,is_faculty\r\n" +
				",Jane,,Doe,,,,,\r\n" +
				"p-roe,John,Q,Roe,Jr.,,,Class clown,no\r\n" +
				"p-smith,Ann,,Smith,,Dr. Ann Smith,ann-smith,Chemistry,yes\r\n" +
				",,,,,,,,\r\n",
			"cohort": "id,year,label\n" +
				"c-1999,1999,\n" +
				",2000,Millennium Class\n",
			"person_cohort": "person_id,cohort_id,is_class_president,homeroom,notes\n" +
				"p-roe,c-1999,true,12B,\n" +
				"auto-6a616e652d646f65,c-1999,0,,\n",
			"photo": "id,sha256,ext,width,height,bytes,caption,credit\n" +
				fmt.Sprintf("ph-1,%s,.JPG,64,48,%d,Senior portrait,Yearbook staff\n", sha, len(img)),
			"person_photo": "person_id,photo_id,kind,is_primary\n" +
				"p-roe,ph-1,,1\n",
			"publication": "id,title,issue_date,volume,number,slug,cover_photo_id,flipbook_manifest_path\n" +
				",Spring Gazette,1999-04-01,12,3,,ph-1,assets/flipbooks/gazette/manifest.json\n",
			"archive_item": "id,title,year,kind,photo_id,flipbook_manifest_path,description\n" +
				"a-1,Old gym,1970,photo,ph-1,,Before the fire\n",
		},
		Images: map[string][]byte{
			sha + ".jpg": img,
		},
		Flipbooks: map[string][]byte{
			"gazette/manifest.json": []byte(`{"pages":["p1.jpg"]}`),
			"gazette/p1.jpg":        JPEG(t, 20, 30),
		},
	}
}

// Manifest returns the manifest of the pack.
func (p *Pack) Manifest() manifest.Manifest {
	var names []string
	for k := range p.Tables {
		names = append(names, k)
	}
	sort.Strings(names)

	imgCount, fbCount := len(p.Images), len(p.Flipbooks)
	res := manifest.Manifest{
		PackID:         p.PackID,
		ContentVersion: p.ContentVersion,
		CreatedUTC:     "2024-05-01T12:00:00Z",
		Assets: manifest.Assets{
			Images:    manifest.AssetDir{Path: "assets/images", Count: &imgCount},
			Flipbooks: manifest.AssetDir{Path: "assets/flipbooks", Count: &fbCount},
		},
	}
	for _, n := range names {
		res.Tables = append(res.Tables, manifest.Table{
			Name: n, Path: "tables/" + n + ".csv",
		})
	}
	if p.MinAppSemver != "" {
		res.Compat = &manifest.Compat{MinAppSemver: p.MinAppSemver}
	}
	return res
}

// files returns every file of the extracted pack.
func (p *Pack) files(t *testing.T) map[string][]byte {
	t.Helper()
	raw, err := json.MarshalIndent(p.Manifest(), "", "  ")
	require.NoError(t, err)

	res := map[string][]byte{
		manifest.ChecksumFile: fmt.Appendf(nil, "%s  manifest.json\n", Sha(raw)),
	}
	if p.SigningKey != nil {
		res[manifest.SignatureFile] = ed25519.Sign(p.SigningKey, raw)
	}
	if p.Tamper {
		raw = bytes.Replace(raw, []byte(`"pack_id": "`), []byte(`"pack_id": "X`), 1)
	}
	res[manifest.FileName] = raw

	for k, v := range p.Tables {
		res["tables/"+k+".csv"] = []byte(v)
	}
	for k, v := range p.Images {
		res["assets/images/"+k] = v
	}
	for k, v := range p.Flipbooks {
		res["assets/flipbooks/"+k] = v
	}
	return res
}

// WriteDir writes the pack as an extracted directory and returns it.
func (p *Pack) WriteDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range p.files(t) {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, data, 0644))
	}
	return dir
}

// WriteZip writes the pack as a zip archive and returns its path.
func (p *Pack) WriteZip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), p.PackID+".zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	files := p.files(t)
	var names []string
	for k := range files {
		names = append(names, k)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}
