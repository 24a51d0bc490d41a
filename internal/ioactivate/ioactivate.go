// Package ioactivate implements lifecycle.Activator: promotion of the
// staged database and rollback to the previous one.
//
// The active database path always points at a complete file. The
// file being replaced is first hard-linked (or copied) to its keep-aside
// name and then the new file is renamed over the active path.
package ioactivate

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/kioskware/kioskpack/internal/iodb"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/internal/iolock"
	"github.com/kioskware/kioskpack/internal/iologger"
	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/kioskware/kioskpack/pkg/db"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/kioskware/kioskpack/pkg/lifecycle"
)

type activator struct {
	paths layout.Paths
	op    db.Operator
	now   func() time.Time
}

// New creates an Activator for the databases of cfg.
func New(cfg *config.Config) lifecycle.Activator {
	return &activator{
		paths: layout.FromConfig(cfg),
		op:    iodb.NewSQLiteOperator(),
		now:   time.Now,
	}
}

// Activate promotes the staged database. An existing active database
// becomes the backup, replacing any older backup.
func (a *activator) Activate(ctx context.Context) error {
	p := a.paths
	if !iofs.Exists(p.StagedDB) {
		return StagedDatabaseMissingError(p.StagedDB)
	}

	lock, err := iolock.Acquire(p.LockFile, "activate-staged")
	if err != nil {
		return err
	}
	defer lock.Release()

	if err = a.settle(ctx, p.StagedDB); err != nil {
		return err
	}

	if iofs.Exists(p.ActiveDB) {
		if err = a.settle(ctx, p.ActiveDB); err != nil {
			return err
		}
		if err = iofs.RemoveDB(p.BackupDB); err != nil {
			return err
		}
		if err = keepAside(p.ActiveDB, p.BackupDB); err != nil {
			return err
		}
		iologger.Info("Active database backed up to <em>%s</em>", p.BackupDB)
	}

	if err = os.Rename(p.StagedDB, p.ActiveDB); err != nil {
		return ActivationRenameError(p.StagedDB, p.ActiveDB, err)
	}
	if err = iofs.RemoveSidecars(p.StagedDB); err != nil {
		return err
	}

	iologger.Success("Activated staged database at <em>%s</em>", p.ActiveDB)
	return nil
}

// Rollback restores the backup as the active database. The replaced
// active database is kept under a failed-{timestamp} name.
func (a *activator) Rollback(ctx context.Context) error {
	p := a.paths
	if !iofs.Exists(p.BackupDB) {
		return NoBackupAvailableError(p.BackupDB)
	}

	lock, err := iolock.Acquire(p.LockFile, "rollback")
	if err != nil {
		return err
	}
	defer lock.Release()

	if err = a.settle(ctx, p.BackupDB); err != nil {
		return err
	}

	if iofs.Exists(p.ActiveDB) {
		if err = a.settle(ctx, p.ActiveDB); err != nil {
			return err
		}
		failed := layout.FailedFor(p.ActiveDB, a.now())
		if err = keepAside(p.ActiveDB, failed); err != nil {
			return err
		}
		iologger.Info("Current active database moved to <em>%s</em>", failed)
	}

	if err = os.Rename(p.BackupDB, p.ActiveDB); err != nil {
		return ActivationRenameError(p.BackupDB, p.ActiveDB, err)
	}
	if err = iofs.RemoveSidecars(p.BackupDB); err != nil {
		return err
	}

	iologger.Success(
		"Rollback complete. Active database restored from <em>%s</em>",
		p.BackupDB,
	)
	return nil
}

// settle folds the write-ahead log of a database into its main file and
// removes the sidecars, so the file can be moved on its own.
func (a *activator) settle(ctx context.Context, path string) error {
	wal := layout.Sidecars(path)[0]
	if iofs.Exists(wal) {
		if err := a.op.Open(ctx, path); err != nil {
			return err
		}
		err := a.op.RunScript(ctx, []db.Statement{
			{SQL: "PRAGMA wal_checkpoint(TRUNCATE);"},
		}, false)
		a.op.Close()
		if err != nil {
			return err
		}
		slog.Info("Write-ahead log checkpointed", "path", path)
	}
	return iofs.RemoveSidecars(path)
}

// keepAside makes dst a copy of src without removing src. A hard link
// is used when the file system allows it.
func keepAside(src, dst string) error {
	err := os.Link(src, dst)
	if err == nil {
		return nil
	}
	slog.Info("Hard link failed, copying", "src", src, "dst", dst, "error", err)
	return iofs.CopyFile(src, dst)
}
