package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/kioskware/kioskpack/pkg/errcode"
)

// NotOpenError is returned when an operation runs before Open.
func NotOpenError() error {
	return &gn.Error{
		Code: errcode.DBOpenError,
		Msg:  "Database operation attempted before opening a file",
		Err:  fmt.Errorf("database is not open"),
	}
}

// DBOpenError is returned when a database file cannot be opened.
func DBOpenError(path string, err error) error {
	msg := `Cannot open database <em>%s</em>

<em>Possible causes:</em>
  - The directory does not exist or is not writable
  - The file is not a SQLite database`

	return &gn.Error{
		Code: errcode.DBOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open %s: %w", path, err),
	}
}

// DBSchemaError is returned when the schema cannot be applied.
func DBSchemaError(path string, err error) error {
	return &gn.Error{
		Code: errcode.DBSchemaError,
		Msg:  "Cannot create schema in <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot create schema in %s: %w", path, err),
	}
}

// DBScriptError is returned when a statement of a script fails.
func DBScriptError(idx int, stmt string, err error) error {
	if len(stmt) > 80 {
		stmt = stmt[:80] + "..."
	}
	return &gn.Error{
		Code: errcode.DBScriptError,
		Msg:  "Statement %d failed, no changes were saved: <em>%s</em>",
		Vars: []any{idx + 1, stmt},
		Err:  fmt.Errorf("statement %d (%s): %w", idx+1, stmt, err),
	}
}

// DBQueryError is returned when a read query fails.
func DBQueryError(query string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Query failed: <em>%s</em>",
		Vars: []any{query},
		Err:  fmt.Errorf("query %q: %w", query, err),
	}
}
