package iocheck_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/internal/iocheck"
	"github.com/kioskware/kioskpack/internal/iodb"
	"github.com/kioskware/kioskpack/internal/ioimport"
	"github.com/kioskware/kioskpack/internal/iotesting"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/kioskware/kioskpack/pkg/db"
	"github.com/kioskware/kioskpack/pkg/errcode"
	"github.com/kioskware/kioskpack/pkg/integrity"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "expected *gn.Error, got %v", err)
	return gnErr.Code
}

// imported returns a config whose staged database holds the default
// test pack.
func imported(t *testing.T) (*config.Config, *iotesting.Pack) {
	t.Helper()
	cfg := iotesting.Config(t)
	cfg.Import.SkipDerivatives = true
	cfg.Check.Target = iocheck.TargetStaged
	p := iotesting.NewPack(t)
	_, err := ioimport.New(cfg).Import(context.Background(), p.WriteZip(t))
	require.NoError(t, err)
	return cfg, p
}

func TestCheckClean(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test")
	}
	cfg, _ := imported(t)
	cfg.Check.Level = integrity.LevelStrict

	r, err := iocheck.New(cfg).Check(context.Background())
	require.NoError(t, err)
	assert.True(t, r.OK(), "issues: %v", r.Issues)
	assert.Equal(t, iocheck.TargetStaged, r.Target)
	assert.Equal(t, layout.FromConfig(cfg).StagedDB, r.Database)
	assert.Equal(t, 3, r.People.Total)
	assert.Equal(t, 2, r.Cohorts.Total)
	assert.Equal(t, 1, r.Photos.Total)
	assert.Equal(t, "alumni-2024-05", r.Meta.Entries["pack_id"])
	assert.Equal(t, "3", r.Meta.Entries["content_version"])
}

func TestCheckMissingFiles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test")
	}
	cfg, p := imported(t)
	paths := layout.FromConfig(cfg)
	img := paths.ImagePath(p.ImageSha, "jpg")
	require.NoError(t, os.Remove(img))
	require.NoError(t, os.RemoveAll(filepath.Join(paths.FlipbooksDir, "gazette")))

	r, err := iocheck.New(cfg).Check(context.Background())
	require.NoError(t, err)
	assert.False(t, r.OK())
	assert.Equal(t, []string{
		integrity.IssueMissingImages,
		integrity.IssueMissingFlipbooks,
	}, r.Issues)
	require.Len(t, r.Photos.MissingFiles, 1)
	assert.Equal(t, img, r.Photos.MissingFiles[0].Expected)
	require.Len(t, r.Flipbooks.MissingManifests, 1)
	assert.Equal(t,
		filepath.Join(paths.FlipbooksDir, "gazette", "manifest.json"),
		r.Flipbooks.MissingManifests[0],
	)
}

// TestCheckStrict runs the checker against a database created without
// key constraints, as written by older tooling.
func TestCheckStrict(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test")
	}
	ctx := context.Background()
	cfg := iotesting.Config(t)
	cfg.Check.Level = "STRICT"
	paths := layout.FromConfig(cfg)
	require.NoError(t, os.MkdirAll(paths.DBDir, 0755))

	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, paths.ActiveDB))
	stmts := []string{
		"CREATE TABLE person (id TEXT, display_name TEXT, slug TEXT)",
		"CREATE TABLE cohort (id TEXT)",
		"CREATE TABLE person_cohort (person_id TEXT, cohort_id TEXT)",
		"CREATE TABLE photo (id TEXT, sha256 TEXT, ext TEXT)",
		"CREATE TABLE publication (flipbook_manifest_path TEXT)",
		"CREATE TABLE archive_item (flipbook_manifest_path TEXT)",
		"CREATE TABLE meta (key TEXT, value TEXT)",
		"INSERT INTO person VALUES ('p1', 'Ann', 'ann'), ('p2', ' ', 'ann')",
		"INSERT INTO cohort VALUES ('c1')",
		"INSERT INTO person_cohort VALUES ('p1', 'c1'), ('p9', 'c1')",
		"INSERT INTO photo VALUES ('ph1', 'aa', 'jpg'), ('ph2', 'aa', '.png'), ('ph3', '', 'jpg')",
		"INSERT INTO publication VALUES ('/assets/flipbooks/none.json'), ('  ')",
	}
	var script []db.Statement
	for _, v := range stmts {
		script = append(script, db.Statement{SQL: v})
	}
	require.NoError(t, op.RunScript(ctx, script, true))
	require.NoError(t, op.Close())

	r, err := iocheck.New(cfg).Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, integrity.LevelStrict, r.Level)
	assert.Equal(t, iocheck.TargetActive, r.Target)
	assert.Equal(t, 2, r.People.Total)
	assert.Equal(t, []string{"p2"}, r.People.MissingDisplayName)
	assert.Equal(t, []integrity.CohortLink{{PersonID: "p9", CohortID: "c1"}},
		r.Cohorts.Orphans)

	require.Len(t, r.Photos.MissingFiles, 3)
	assert.Equal(t, paths.ImagePath("aa", "png"), r.Photos.MissingFiles[1].Expected)
	assert.Equal(t, "missing sha256", r.Photos.MissingFiles[2].Reason)

	assert.Equal(t, []string{paths.ContentPath("assets/flipbooks/none.json")},
		r.Flipbooks.MissingManifests)
	assert.Equal(t, []integrity.Duplicate{{Value: "ann", Count: 2}},
		r.People.DuplicateSlugs)
	assert.Equal(t, []integrity.Duplicate{{Value: "aa", Count: 2}},
		r.Photos.DuplicateHashes)
	assert.Len(t, r.Issues, 6)
	assert.Empty(t, r.Meta.Entries)
}

func TestCheckMissingDatabase(t *testing.T) {
	cfg := iotesting.Config(t)
	_, err := iocheck.New(cfg).Check(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.DatabaseMissingError, errCode(t, err))

	err = iocheck.NewIndexer(cfg).Reindex(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.DatabaseMissingError, errCode(t, err))
}

func TestReindex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test")
	}
	ctx := context.Background()
	cfg, _ := imported(t)
	paths := layout.FromConfig(cfg)
	cfg.ActiveDB = paths.StagedDB

	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, paths.StagedDB))
	require.NoError(t, op.RunScript(ctx, []db.Statement{
		{SQL: "UPDATE person SET last_name = 'Fawkes' WHERE id = 'p-roe'"},
	}, false))
	require.NoError(t, op.Close())

	require.NoError(t, iocheck.NewIndexer(cfg).Reindex(ctx))
	assert.NoFileExists(t, paths.LockFile)

	require.NoError(t, op.Open(ctx, paths.StagedDB))
	defer op.Close()
	rows, err := op.Query(ctx,
		"SELECT rowid FROM person_fts WHERE person_fts MATCH 'last_name:fawkes'")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestEncode(t *testing.T) {
	r := integrity.New("app.db", iocheck.TargetActive, integrity.LevelBasic)
	r.People.Total = 2
	r.AddIssue(integrity.IssueMissingImages)

	data, err := iocheck.Encode(r, "json")
	require.NoError(t, err)
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, "app.db", fromJSON["database"])
	assert.Equal(t, []any{integrity.IssueMissingImages}, fromJSON["issues"])

	data, err = iocheck.Encode(r, "YAML")
	require.NoError(t, err)
	var fromYAML integrity.Report
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, 2, fromYAML.People.Total)
	assert.Equal(t, "active", fromYAML.Target)
}
