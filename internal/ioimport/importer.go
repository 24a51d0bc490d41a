// Package ioimport implements lifecycle.Importer. It turns a content
// pack archive into a staged database and live assets.
//
// The pipeline runs the stages Extracting, ManifestVerifying,
// TableLoading, DatabaseStaging, AssetSyncing, DerivativeGenerating and
// LogWriting. A failure at any stage aborts the run. Nothing touches
// the staged database before the manifest and every table are
// verified, and the database content is written in one transaction.
package ioimport

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/kioskware/kioskpack/internal/ioassets"
	"github.com/kioskware/kioskpack/internal/iodb"
	"github.com/kioskware/kioskpack/internal/ioderive"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/internal/iolock"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/kioskware/kioskpack/internal/iomanifest"
	"github.com/kioskware/kioskpack/internal/iotables"
	kioskpack "github.com/kioskware/kioskpack/pkg"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/kioskware/kioskpack/pkg/db"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/kioskware/kioskpack/pkg/lifecycle"
	"github.com/kioskware/kioskpack/pkg/normalize"
	"github.com/kioskware/kioskpack/pkg/schema"
)

// isoMillis matches timestamps written by the pack authoring tools.
const isoMillis = "2006-01-02T15:04:05.000Z"

type importer struct {
	cfg   *config.Config
	paths layout.Paths
	op    db.Operator
	now   func() time.Time
}

// New creates an Importer writing into the content root of cfg.
func New(cfg *config.Config) lifecycle.Importer {
	return &importer{
		cfg:   cfg,
		paths: layout.FromConfig(cfg),
		op:    iodb.NewSQLiteOperator(),
		now:   time.Now,
	}
}

// run carries state between stages of one import.
type run struct {
	packPath   string
	packSha256 string
	packUUID   string
	tmpDir     string
	importedAt time.Time
	verified   *iomanifest.Verified
	tables     *iotables.Result
	assets     *ioassets.Stats
	derive     *lifecycle.DeriveStats
}

// Import runs the whole pipeline for the pack at packPath and returns
// the path of the written import log.
func (i *importer) Import(ctx context.Context, packPath string) (string, error) {
	start := time.Now()
	packPath, err := filepath.Abs(packPath)
	if err != nil {
		return "", ArchiveExtractError(packPath, err)
	}
	iologger.Info("Importing content pack <em>%s</em>", packPath)

	r := &run{packPath: packPath, importedAt: i.now().UTC()}
	r.tmpDir, err = os.MkdirTemp("", "kioskpack-")
	if err != nil {
		return "", iofs.CreateDirError(os.TempDir(), err)
	}
	defer func() {
		if err := os.RemoveAll(r.tmpDir); err != nil {
			slog.Warn("Cannot remove extraction directory",
				"path", r.tmpDir, "error", err)
		}
	}()

	if err = step(ctx, Extracting); err != nil {
		return "", err
	}
	if err = extract(packPath, r.tmpDir); err != nil {
		return "", err
	}

	if err = step(ctx, ManifestVerifying); err != nil {
		return "", err
	}
	r.verified, err = iomanifest.Verify(r.tmpDir, iomanifest.Options{
		AppVersion: kioskpack.Version,
		Strict:     i.cfg.Import.Verify,
		PublicKey:  i.cfg.Import.PublicKey,
	})
	if err != nil {
		return "", err
	}
	if r.verified.Signature != nil {
		iologger.Info("Signature verification passed")
	}

	if err = step(ctx, TableLoading); err != nil {
		return "", err
	}
	r.tables, err = iotables.LoadAll(
		r.tmpDir, r.verified.Manifest, r.importedAt.Format(isoMillis),
	)
	if err != nil {
		return "", err
	}
	for table, n := range r.tables.Dropped {
		iologger.Warn("Dropped <em>%s</em> %s rows without a usable key",
			humanize.Comma(int64(n)), table)
	}

	if err = step(ctx, DatabaseStaging); err != nil {
		return "", err
	}
	if err = iofs.EnsureLayout(i.paths); err != nil {
		return "", err
	}
	lock, err := iolock.Acquire(i.paths.LockFile, "import-pack")
	if err != nil {
		return "", err
	}
	defer lock.Release()

	if r.packSha256, err = iofs.HashFile(packPath); err != nil {
		return "", err
	}
	r.packUUID = gnuuid.New(r.packSha256).String()
	if err = i.stage(ctx, r); err != nil {
		return "", err
	}

	if err = step(ctx, AssetSyncing); err != nil {
		return "", err
	}
	r.assets, err = ioassets.Sync(r.tmpDir, r.verified.Manifest, i.paths)
	if err != nil {
		return "", err
	}

	if err = step(ctx, DerivativeGenerating); err != nil {
		return "", err
	}
	if i.cfg.Import.SkipDerivatives {
		iologger.Info("Skipping derivative generation as requested")
	} else {
		r.derive, err = ioderive.New(i.cfg).Generate(ctx)
		if err != nil {
			return "", err
		}
	}

	if err = step(ctx, LogWriting); err != nil {
		return "", err
	}
	logPath := i.paths.ImportLogPath(r.importedAt)
	if err = i.writeLog(logPath, r); err != nil {
		return "", err
	}

	slog.Info("Import finished", "stage", Done.String(), "log", logPath)
	iologger.Success(
		"Import completed in %s. Review <em>%s</em>",
		gnfmt.TimeString(time.Since(start).Seconds()), logPath,
	)
	iologger.Info(
		"Next step: run <em>kioskpack activate-staged</em> to make the content live",
	)
	return logPath, nil
}

// step announces a stage. It fails if the import was canceled, so the
// pipeline stops at the next stage boundary.
func step(ctx context.Context, s Stage) error {
	if err := ctx.Err(); err != nil {
		slog.Warn("Import canceled", "stage", s.String())
		return err
	}
	iologger.Step("(%d/%d) %s", int(s), StagesNumber, s)
	return nil
}

// stage rebuilds the staged database from scratch and fills it in one
// transaction.
func (i *importer) stage(ctx context.Context, r *run) error {
	if err := iofs.RemoveDB(i.paths.StagedDB); err != nil {
		return err
	}
	if err := i.op.Open(ctx, i.paths.StagedDB); err != nil {
		return err
	}
	defer i.op.Close()

	if err := i.op.Initialise(ctx); err != nil {
		return err
	}

	stmts := Script(r.tables.Tables, i.meta(r))
	if err := i.op.RunScript(ctx, stmts, true); err != nil {
		return err
	}

	for table, n := range r.tables.Tables.Counts() {
		slog.Info("Rows staged", "table", table, "rows", n)
	}
	iologger.Info("Database staged at <em>%s</em>", i.paths.StagedDB)
	return nil
}

// Script returns statements that replace all content of a database
// with tables and meta, and rebuild the full-text index.
func Script(tables *normalize.Tables, meta []schema.Meta) []db.Statement {
	var res []db.Statement
	for _, m := range schema.AllModels() {
		res = append(res, iodb.DeleteAll(m.TableName()))
	}
	for _, m := range schema.ContentModels() {
		res = append(res, iodb.InsertModels(m, tables.Rows(m.TableName()))...)
	}

	rows := make([]any, len(meta))
	for i := range meta {
		rows[i] = meta[i]
	}
	res = append(res, iodb.InsertModels(schema.Meta{}, rows)...)
	res = append(res, db.Statement{SQL: schema.FTSRebuild()})
	return res
}

func (i *importer) meta(r *run) []schema.Meta {
	m := r.verified.Manifest
	res := []schema.Meta{
		{Key: schema.MetaContentVersion, Value: strconv.Itoa(m.ContentVersion)},
		{Key: schema.MetaPackID, Value: m.PackID},
		{Key: schema.MetaPackUUID, Value: r.packUUID},
		{Key: schema.MetaCreatedUTC, Value: m.CreatedUTC},
		{Key: schema.MetaManifestHash, Value: r.verified.Hash},
		{Key: schema.MetaPackSha256, Value: r.packSha256},
	}
	if sig := r.signature(); sig != "" {
		res = append(res, schema.Meta{Key: schema.MetaPackSignature, Value: sig})
	}
	res = append(res,
		schema.Meta{Key: schema.MetaAppVersion, Value: kioskpack.Version},
		schema.Meta{Key: schema.MetaImportedAt, Value: r.importedAt.Format(isoMillis)},
	)
	return res
}

func (r *run) signature() string {
	if len(r.verified.Signature) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(r.verified.Signature)
}
