// Package iodb implements database operations on an embedded SQLite
// file. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/kioskware/kioskpack/pkg/db"
	"github.com/kioskware/kioskpack/pkg/schema"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure Go SQLite driver with FTS5, registered as "sqlite"
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator interface on top of
// modernc.org/sqlite. Reads go through GORM sharing the same
// connection.
type sqliteOperator struct {
	path string
	db   *sql.DB
	gorm *gorm.DB
}

// NewSQLiteOperator creates a new database operator
// (without opening a file).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Open opens the database file, creating it when absent.
func (s *sqliteOperator) Open(ctx context.Context, path string) error {
	dsn := path + "?_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return DBOpenError(path, err)
	}
	// SQLite has a single writer; one connection keeps transactions
	// and reads on the same handle.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return DBOpenError(path, err)
	}

	gdb, err := gorm.Open(
		sqlite.New(sqlite.Config{Conn: conn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		conn.Close()
		return DBOpenError(path, err)
	}

	s.path = path
	s.db = conn
	s.gorm = gdb
	slog.Debug("Opened database", "path", path)
	return nil
}

// Close releases the database handle.
func (s *sqliteOperator) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.gorm = nil
	return err
}

// DB returns the underlying *sql.DB.
func (s *sqliteOperator) DB() *sql.DB {
	return s.db
}

// Path returns the path of the open database.
func (s *sqliteOperator) Path() string {
	return s.path
}

// Initialise enables WAL and creates tables, indexes and the
// full-text index when they do not exist.
func (s *sqliteOperator) Initialise(ctx context.Context) error {
	if s.db == nil {
		return NotOpenError()
	}

	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		return DBSchemaError(s.path, err)
	}

	for _, ddl := range schema.SchemaDDL() {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return DBSchemaError(s.path, err)
		}
	}
	return nil
}

// RunScript executes statements in order. If wrap is true, a failure
// rolls back every statement of the script.
func (s *sqliteOperator) RunScript(
	ctx context.Context,
	stmts []db.Statement,
	wrap bool,
) error {
	if s.db == nil {
		return NotOpenError()
	}

	if !wrap {
		for i, st := range stmts {
			if _, err := s.db.ExecContext(ctx, st.SQL, st.Args...); err != nil {
				return DBScriptError(i, st.SQL, err)
			}
		}
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DBScriptError(0, "BEGIN", err)
	}
	for i, st := range stmts {
		if _, err = tx.ExecContext(ctx, st.SQL, st.Args...); err != nil {
			_ = tx.Rollback()
			return DBScriptError(i, st.SQL, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return DBScriptError(len(stmts), "COMMIT", err)
	}

	slog.Info("Script committed", "path", s.path, "statements", len(stmts))
	return nil
}

// Query runs a read statement via GORM and returns rows as maps.
func (s *sqliteOperator) Query(
	ctx context.Context,
	query string,
	args ...any,
) ([]map[string]any, error) {
	if s.gorm == nil {
		return nil, NotOpenError()
	}

	var res []map[string]any
	err := s.gorm.WithContext(ctx).Raw(query, args...).Scan(&res).Error
	if err != nil {
		return nil, DBQueryError(query, err)
	}
	return res, nil
}
