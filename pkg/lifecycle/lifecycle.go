// Package lifecycle defines the stages a content pack goes through:
// import into a staged database, activation, rollback, derivative
// generation, integrity checks and search reindexing.
package lifecycle

import (
	"context"

	"github.com/kioskware/kioskpack/pkg/integrity"
)

// Importer runs the full import pipeline for one pack archive.
type Importer interface {
	// Import extracts and verifies the pack, builds a fresh staged
	// database, syncs assets and writes an import log. It returns the
	// path of the import log.
	Import(ctx context.Context, packPath string) (string, error)
}

// Activator promotes and demotes database files.
type Activator interface {
	// Activate promotes the staged database to active, keeping the
	// previous active database as a backup.
	Activate(ctx context.Context) error

	// Rollback restores the backup as the active database. The replaced
	// database is preserved under a failed-* name.
	Rollback(ctx context.Context) error
}

// Deriver generates thumbnail and screen renditions of images.
type Deriver interface {
	// Generate creates missing derivatives, or all of them when forced.
	Generate(ctx context.Context) (*DeriveStats, error)
}

// DeriveStats summarises a derivative run.
type DeriveStats struct {
	Images    int
	Generated int
	Skipped   int
	Copied    int
}

// Checker runs consistency queries against a database.
type Checker interface {
	// Check returns a report of findings. Findings never cause an error.
	Check(ctx context.Context) (*integrity.Report, error)
}

// Indexer rebuilds the full-text name index.
type Indexer interface {
	Reindex(ctx context.Context) error
}
