// Package layout resolves canonical on-disk locations of the kiosk content
// tree. It is pure: directories are created by internal/iofs.
//
// Layout under the content root:
//
//	db/app.db                active database
//	db/app.db.staging        staged database (between import and activation)
//	db/app.db.previous       backup of the previously active database
//	db/.kioskpack.lock       advisory lock of mutating commands
//	assets/img/              images named {sha256}.{ext}
//	assets/flipbooks/        paginated viewer bundles
//	derivatives/thumb/       square thumbnails
//	derivatives/screen/      screen-sized renditions
//	logs/import-{ts}.json    import records
package layout

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kioskware/kioskpack/pkg/config"
)

const (
	activeDBName = "app.db"
	stagingExt   = ".staging"
	backupExt    = ".previous"
	lockName     = ".kioskpack.lock"
)

// Paths holds every location used by the pipeline.
type Paths struct {
	Root           string
	DBDir          string
	ActiveDB       string
	StagedDB       string
	BackupDB       string
	LockFile       string
	AssetsDir      string
	ImagesDir      string
	FlipbooksDir   string
	DerivativesDir string
	ThumbDir       string
	ScreenDir      string
	LogsDir        string
}

// New computes the default layout for a content root.
func New(root string) Paths {
	root = filepath.Clean(root)
	dbDir := filepath.Join(root, "db")
	assetsDir := filepath.Join(root, "assets")
	derivDir := filepath.Join(root, "derivatives")
	active := filepath.Join(dbDir, activeDBName)

	return Paths{
		Root:           root,
		DBDir:          dbDir,
		ActiveDB:       active,
		StagedDB:       active + stagingExt,
		BackupDB:       BackupFor(active),
		LockFile:       filepath.Join(dbDir, lockName),
		AssetsDir:      assetsDir,
		ImagesDir:      filepath.Join(assetsDir, "img"),
		FlipbooksDir:   filepath.Join(assetsDir, "flipbooks"),
		DerivativesDir: derivDir,
		ThumbDir:       filepath.Join(derivDir, "thumb"),
		ScreenDir:      filepath.Join(derivDir, "screen"),
		LogsDir:        filepath.Join(root, "logs"),
	}
}

// FromConfig computes the layout for cfg.ContentRoot and applies the
// staged/active database overrides. The backup always sits next to the
// active database.
func FromConfig(cfg *config.Config) Paths {
	res := New(cfg.ContentRoot)
	if cfg.StagedDB != "" {
		res.StagedDB = filepath.Clean(cfg.StagedDB)
	}
	if cfg.ActiveDB != "" {
		res.ActiveDB = filepath.Clean(cfg.ActiveDB)
		res.BackupDB = BackupFor(res.ActiveDB)
	}
	return res
}

// Dirs returns directories that must exist before an import.
func (p Paths) Dirs() []string {
	return []string{
		p.Root,
		p.DBDir,
		p.ImagesDir,
		p.FlipbooksDir,
		p.ThumbDir,
		p.ScreenDir,
		p.LogsDir,
	}
}

// BackupFor returns the backup location of an active database.
func BackupFor(activeDB string) string {
	return activeDB + backupExt
}

// FailedFor returns where a rolled back database is preserved.
func FailedFor(activeDB string, ts time.Time) string {
	return fmt.Sprintf("%s.failed-%d", activeDB, ts.UnixMilli())
}

// Sidecars returns the write-ahead log and shared memory files that SQLite
// keeps next to a database in WAL mode.
func Sidecars(dbPath string) []string {
	return []string{dbPath + "-wal", dbPath + "-shm"}
}

// ImportLogPath returns the location of the import record written at ts.
func (p Paths) ImportLogPath(ts time.Time) string {
	name := fmt.Sprintf("import-%d.json", ts.UnixMilli())
	return filepath.Join(p.LogsDir, name)
}

// ImagePath returns the expected location of a photo file. Extension
// defaults to jpg.
func (p Paths) ImagePath(sha256, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "jpg"
	}
	return filepath.Join(p.ImagesDir, sha256+"."+ext)
}

// ContentPath resolves a path stored in the database (for example a
// flipbook manifest) relative to the content root. Leading slashes are
// ignored so "/assets/flipbooks/x.json" stays inside the root.
func (p Paths) ContentPath(rel string) string {
	rel = strings.TrimLeft(strings.TrimSpace(rel), "/")
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}
