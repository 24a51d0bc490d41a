package iocheck

import (
	"context"

	"github.com/kioskware/kioskpack/internal/iodb"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/internal/iolock"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/kioskware/kioskpack/pkg/db"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/kioskware/kioskpack/pkg/lifecycle"
	"github.com/kioskware/kioskpack/pkg/schema"
)

type indexer struct {
	paths layout.Paths
	op    db.Operator
}

// NewIndexer creates an Indexer for the active database of cfg.
func NewIndexer(cfg *config.Config) lifecycle.Indexer {
	return &indexer{
		paths: layout.FromConfig(cfg),
		op:    iodb.NewSQLiteOperator(),
	}
}

// Reindex rebuilds the person name index of the active database from
// the person table.
func (i *indexer) Reindex(ctx context.Context) error {
	path := i.paths.ActiveDB
	if !iofs.Exists(path) {
		return DatabaseMissingError(path)
	}

	lock, err := iolock.Acquire(i.paths.LockFile, "reindex-fts")
	if err != nil {
		return err
	}
	defer lock.Release()

	if err = i.op.Open(ctx, path); err != nil {
		return err
	}
	defer i.op.Close()

	err = i.op.RunScript(ctx, []db.Statement{{SQL: schema.FTSRebuild()}}, true)
	if err != nil {
		return err
	}
	iologger.Success("FTS index refreshed in <em>%s</em>", path)
	return nil
}
