package db_test

import (
	"testing"

	"github.com/kioskware/kioskpack/internal/iodb"
	"github.com/kioskware/kioskpack/pkg/db"
)

// TestSQLiteOperatorImplementsInterface verifies that the SQLite operator
// implements the db.Operator interface.
func TestSQLiteOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.NewSQLiteOperator()
}
