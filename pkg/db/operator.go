package db

import (
	"context"
	"database/sql"
)

// Statement is one SQL statement with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Operator defines the interface for the embedded database file.
// It owns schema creation, transactional scripts and read queries.
// Lifecycle components receive a connected Operator and never open
// database files themselves.
type Operator interface {
	// Open opens the database file at path, creating it if it does not
	// exist.
	Open(ctx context.Context, path string) error

	// Close closes the database. It is safe to call on a closed operator.
	Close() error

	// DB returns the underlying *sql.DB.
	DB() *sql.DB

	// Path returns the path of the open database file.
	Path() string

	// Initialise applies the full schema idempotently and enables
	// write-ahead logging.
	Initialise(ctx context.Context) error

	// RunScript executes statements in order. When wrapped, all of them
	// run in one transaction and either all persist or none do.
	RunScript(ctx context.Context, stmts []Statement, wrap bool) error

	// Query runs a read-only statement and returns rows keyed by column.
	Query(ctx context.Context, query string, args ...any) ([]map[string]any, error)
}
