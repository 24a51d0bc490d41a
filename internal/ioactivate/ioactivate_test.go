package ioactivate_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/internal/ioactivate"
	"github.com/kioskware/kioskpack/internal/iodb"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/internal/iolock"
	"github.com/kioskware/kioskpack/internal/iotesting"
	"github.com/kioskware/kioskpack/pkg/db"
	"github.com/kioskware/kioskpack/pkg/errcode"
	"github.com/kioskware/kioskpack/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "expected *gn.Error, got %v", err)
	return gnErr.Code
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func setup(t *testing.T) layout.Paths {
	t.Helper()
	paths := layout.New(t.TempDir())
	require.NoError(t, iofs.EnsureLayout(paths))
	return paths
}

func TestActivateRollback(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.Config(t)
	paths := layout.FromConfig(cfg)
	require.NoError(t, iofs.EnsureLayout(paths))
	act := ioactivate.New(cfg)

	require.NoError(t, os.WriteFile(paths.StagedDB, []byte("first"), 0644))
	require.NoError(t, act.Activate(ctx))
	assert.Equal(t, "first", read(t, paths.ActiveDB))
	assert.NoFileExists(t, paths.StagedDB)
	assert.NoFileExists(t, paths.BackupDB)

	require.NoError(t, os.WriteFile(paths.StagedDB, []byte("second"), 0644))
	require.NoError(t, os.WriteFile(paths.ActiveDB+"-shm", []byte("stale"), 0644))
	require.NoError(t, act.Activate(ctx))
	assert.Equal(t, "second", read(t, paths.ActiveDB))
	assert.Equal(t, "first", read(t, paths.BackupDB))
	assert.NoFileExists(t, paths.ActiveDB+"-shm")

	require.NoError(t, act.Rollback(ctx))
	assert.Equal(t, "first", read(t, paths.ActiveDB))
	assert.NoFileExists(t, paths.BackupDB)
	assert.NoFileExists(t, paths.LockFile)

	failed, err := filepath.Glob(paths.ActiveDB + ".failed-*")
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "second", read(t, failed[0]))

	err = act.Rollback(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.NoBackupAvailableError, errCode(t, err))
	assert.Equal(t, "first", read(t, paths.ActiveDB))
}

func TestActivateMissingStaged(t *testing.T) {
	cfg := iotesting.Config(t)
	paths := setup(t)
	cfg.ContentRoot = paths.Root

	err := ioactivate.New(cfg).Activate(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.StagedDatabaseMissingError, errCode(t, err))
	assert.NoFileExists(t, paths.ActiveDB)
}

func TestActivateLockHeld(t *testing.T) {
	cfg := iotesting.Config(t)
	paths := layout.FromConfig(cfg)
	require.NoError(t, iofs.EnsureLayout(paths))
	require.NoError(t, os.WriteFile(paths.StagedDB, []byte("staged"), 0644))
	lock, err := iolock.Acquire(paths.LockFile, "import-pack")
	require.NoError(t, err)
	defer lock.Release()

	err = ioactivate.New(cfg).Activate(context.Background())
	require.Error(t, err)
	assert.Equal(t, errcode.LockHeldError, errCode(t, err))
	assert.FileExists(t, paths.StagedDB)
}

func TestActivateCheckpointsWAL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test")
	}
	ctx := context.Background()
	cfg := iotesting.Config(t)
	paths := layout.FromConfig(cfg)
	require.NoError(t, iofs.EnsureLayout(paths))

	op := iodb.NewSQLiteOperator()
	require.NoError(t, op.Open(ctx, paths.StagedDB))
	require.NoError(t, op.Initialise(ctx))
	require.NoError(t, op.RunScript(ctx, []db.Statement{
		{SQL: "INSERT INTO meta (key, value) VALUES (?, ?)", Args: []any{"pack_id", "p1"}},
	}, true))
	require.NoError(t, op.Close())

	require.NoError(t, ioactivate.New(cfg).Activate(ctx))
	assert.NoFileExists(t, paths.StagedDB+"-wal")

	require.NoError(t, op.Open(ctx, paths.ActiveDB))
	defer op.Close()
	rows, err := op.Query(ctx, "SELECT value FROM meta WHERE key = 'pack_id'")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "p1", iodb.String(rows[0], "value"))
}
