package ioimport

import (
	"os"

	"github.com/gnames/gnfmt"
	kioskpack "github.com/kioskware/kioskpack/pkg"
	"github.com/kioskware/kioskpack/pkg/lifecycle"
)

// Log is the audit record of one import.
type Log struct {
	PackID         string                 `json:"pack_id"`
	PackUUID       string                 `json:"pack_uuid"`
	ContentVersion int                    `json:"content_version"`
	ManifestHash   string                 `json:"manifest_hash"`
	Signature      *string                `json:"signature"`
	ImportedAt     string                 `json:"imported_at"`
	Tables         map[string]int         `json:"tables"`
	Dropped        map[string]int         `json:"dropped,omitempty"`
	StagedDB       string                 `json:"staged_db"`
	ContentRoot    string                 `json:"content_root"`
	PackSha256     string                 `json:"pack_sha256"`
	AppVersion     string                 `json:"app_version"`
	Images         int                    `json:"images"`
	Flipbooks      bool                   `json:"flipbooks"`
	Derivatives    *lifecycle.DeriveStats `json:"derivatives,omitempty"`
}

func (i *importer) writeLog(path string, r *run) error {
	m := r.verified.Manifest
	res := Log{
		PackID:         m.PackID,
		PackUUID:       r.packUUID,
		ContentVersion: m.ContentVersion,
		ManifestHash:   r.verified.Hash,
		ImportedAt:     r.importedAt.Format(isoMillis),
		Tables:         r.tables.Tables.Counts(),
		Dropped:        r.tables.Dropped,
		StagedDB:       i.paths.StagedDB,
		ContentRoot:    i.paths.Root,
		PackSha256:     r.packSha256,
		AppVersion:     kioskpack.Version,
		Derivatives:    r.derive,
	}
	if sig := r.signature(); sig != "" {
		res.Signature = &sig
	}
	if r.assets != nil {
		res.Images = r.assets.Images
		res.Flipbooks = r.assets.Flipbooks
	}

	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(res)
	if err != nil {
		return ImportLogError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return ImportLogError(path, err)
	}
	return nil
}
