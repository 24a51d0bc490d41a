// Package iocheck implements lifecycle.Checker and lifecycle.Indexer.
// The checker runs read-only consistency queries against the staged or
// the active database and cross-checks referenced files on disk.
package iocheck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kioskware/kioskpack/internal/iodb"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/kioskware/kioskpack/pkg/db"
	"github.com/kioskware/kioskpack/pkg/integrity"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/kioskware/kioskpack/pkg/lifecycle"
)

// Check targets.
const (
	TargetActive = "active"
	TargetStaged = "staged"
)

type checker struct {
	cfg   *config.Config
	paths layout.Paths
	op    db.Operator
}

// New creates a Checker. The database, level and target are taken from
// cfg.Check and the layout of cfg.
func New(cfg *config.Config) lifecycle.Checker {
	return &checker{
		cfg:   cfg,
		paths: layout.FromConfig(cfg),
		op:    iodb.NewSQLiteOperator(),
	}
}

// Database returns the checked database path and its target name.
func Database(cfg *config.Config) (string, string) {
	paths := layout.FromConfig(cfg)
	if strings.EqualFold(cfg.Check.Target, TargetStaged) {
		return paths.StagedDB, TargetStaged
	}
	return paths.ActiveDB, TargetActive
}

// Check runs every query of the configured level. Findings end up in
// the report; only a missing database or a failing query is an error.
func (c *checker) Check(ctx context.Context) (*integrity.Report, error) {
	path, target := Database(c.cfg)
	level := strings.ToLower(c.cfg.Check.Level)
	if level != integrity.LevelStrict {
		level = integrity.LevelBasic
	}

	if !iofs.Exists(path) {
		return nil, DatabaseMissingError(path)
	}
	if err := c.op.Open(ctx, path); err != nil {
		return nil, err
	}
	defer c.op.Close()

	res := integrity.New(path, target, level)
	checks := []func(context.Context, *integrity.Report) error{
		c.people,
		c.cohorts,
		c.photos,
		c.flipbooks,
		c.meta,
	}
	if level == integrity.LevelStrict {
		checks = append(checks, c.duplicates)
	}
	for _, check := range checks {
		if err := check(ctx, res); err != nil {
			return nil, err
		}
	}

	slog.Info("Integrity check finished",
		"database", path, "level", level, "issues", len(res.Issues))
	return res, nil
}

func (c *checker) scalar(ctx context.Context, q string) (int, error) {
	rows, err := c.op.Query(ctx, q)
	if err != nil || len(rows) == 0 {
		return 0, err
	}
	return iodb.Int(rows[0], "value"), nil
}

func (c *checker) people(ctx context.Context, r *integrity.Report) error {
	var err error
	r.People.Total, err = c.scalar(ctx, "SELECT COUNT(*) AS value FROM person")
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`SELECT id FROM person
  WHERE display_name IS NULL OR TRIM(display_name) = ''
  LIMIT %d`, integrity.MaxRows)
	rows, err := c.op.Query(ctx, q)
	if err != nil {
		return err
	}
	for _, row := range rows {
		r.People.MissingDisplayName = append(
			r.People.MissingDisplayName, iodb.String(row, "id"),
		)
	}
	if len(rows) > 0 {
		r.AddIssue(integrity.IssueMissingDisplayName)
	}
	return nil
}

func (c *checker) cohorts(ctx context.Context, r *integrity.Report) error {
	var err error
	r.Cohorts.Total, err = c.scalar(ctx, "SELECT COUNT(*) AS value FROM cohort")
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`SELECT pc.person_id, pc.cohort_id FROM person_cohort pc
  LEFT JOIN person p ON p.id = pc.person_id
  LEFT JOIN cohort c ON c.id = pc.cohort_id
  WHERE p.id IS NULL OR c.id IS NULL
  LIMIT %d`, integrity.MaxRows)
	rows, err := c.op.Query(ctx, q)
	if err != nil {
		return err
	}
	for _, row := range rows {
		r.Cohorts.Orphans = append(r.Cohorts.Orphans, integrity.CohortLink{
			PersonID: iodb.String(row, "person_id"),
			CohortID: iodb.String(row, "cohort_id"),
		})
	}
	if len(rows) > 0 {
		r.AddIssue(integrity.IssueOrphanedCohortLink)
	}
	return nil
}

func (c *checker) photos(ctx context.Context, r *integrity.Report) error {
	rows, err := c.op.Query(ctx, "SELECT id, sha256, ext FROM photo")
	if err != nil {
		return err
	}
	r.Photos.Total = len(rows)

	var missing int
	for _, row := range rows {
		id, sha := iodb.String(row, "id"), iodb.String(row, "sha256")
		var m *integrity.MissingPhoto
		if strings.TrimSpace(sha) == "" {
			m = &integrity.MissingPhoto{ID: id, Reason: "missing sha256"}
		} else if exp := c.paths.ImagePath(sha, iodb.String(row, "ext")); !iofs.Exists(exp) {
			m = &integrity.MissingPhoto{ID: id, Sha256: sha, Expected: exp}
		}
		if m == nil {
			continue
		}
		missing++
		if len(r.Photos.MissingFiles) < integrity.MaxRows {
			r.Photos.MissingFiles = append(r.Photos.MissingFiles, *m)
		}
	}
	if missing > 0 {
		slog.Warn("Photos without files", "count", missing)
		r.AddIssue(integrity.IssueMissingImages)
	}
	return nil
}

func (c *checker) flipbooks(ctx context.Context, r *integrity.Report) error {
	q := `SELECT flipbook_manifest_path AS path FROM publication
  WHERE flipbook_manifest_path IS NOT NULL
UNION
SELECT flipbook_manifest_path AS path FROM archive_item
  WHERE flipbook_manifest_path IS NOT NULL`
	rows, err := c.op.Query(ctx, q)
	if err != nil {
		return err
	}
	for _, row := range rows {
		rel := strings.TrimSpace(iodb.String(row, "path"))
		if rel == "" {
			continue
		}
		path := c.paths.ContentPath(rel)
		if iofs.Exists(path) {
			continue
		}
		if len(r.Flipbooks.MissingManifests) < integrity.MaxRows {
			r.Flipbooks.MissingManifests = append(r.Flipbooks.MissingManifests, path)
		}
		r.AddIssue(integrity.IssueMissingFlipbooks)
	}
	return nil
}

func (c *checker) meta(ctx context.Context, r *integrity.Report) error {
	rows, err := c.op.Query(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return err
	}
	for _, row := range rows {
		r.Meta.Entries[iodb.String(row, "key")] = iodb.String(row, "value")
	}
	return nil
}

func (c *checker) duplicates(ctx context.Context, r *integrity.Report) error {
	var err error
	tmpl := `SELECT %[1]s AS value, COUNT(*) AS count FROM %[2]s
  GROUP BY %[1]s HAVING COUNT(*) > 1
  LIMIT %[3]d`

	r.People.DuplicateSlugs, err = c.dups(ctx,
		fmt.Sprintf(tmpl, "slug", "person", integrity.MaxRows))
	if err != nil {
		return err
	}
	if len(r.People.DuplicateSlugs) > 0 {
		r.AddIssue(integrity.IssueDuplicateSlugs)
	}

	r.Photos.DuplicateHashes, err = c.dups(ctx,
		fmt.Sprintf(tmpl, "sha256", "photo", integrity.MaxRows))
	if err != nil {
		return err
	}
	if len(r.Photos.DuplicateHashes) > 0 {
		r.AddIssue(integrity.IssueDuplicateHashes)
	}
	return nil
}

func (c *checker) dups(ctx context.Context, q string) ([]integrity.Duplicate, error) {
	rows, err := c.op.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	var res []integrity.Duplicate
	for _, row := range rows {
		res = append(res, integrity.Duplicate{
			Value: iodb.String(row, "value"),
			Count: iodb.Int(row, "count"),
		})
	}
	return res, nil
}
