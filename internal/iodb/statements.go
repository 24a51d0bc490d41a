package iodb

import (
	"github.com/huandu/go-sqlbuilder"
	"github.com/kioskware/kioskpack/pkg/db"
	"github.com/kioskware/kioskpack/pkg/schema"
)

// BuildInsert creates one INSERT statement per row. Every row supplies
// a value for every column; booleans become 1 or 0.
func BuildInsert(table string, columns []string, rows [][]any) []db.Statement {
	res := make([]db.Statement, 0, len(rows))
	for _, row := range rows {
		vals := make([]any, len(columns))
		for i := range columns {
			if i < len(row) {
				vals[i] = sqlValue(row[i])
			}
		}

		ib := sqlbuilder.SQLite.NewInsertBuilder()
		ib.InsertInto(table)
		ib.Cols(columns...)
		ib.Values(vals...)
		query, args := ib.Build()
		res = append(res, db.Statement{SQL: query, Args: args})
	}
	return res
}

// InsertModels creates INSERT statements for models of one table.
// Column order follows the model's declaration order.
func InsertModels(table schema.DDLGenerator, models []any) []db.Statement {
	if len(models) == 0 {
		return nil
	}
	rows := make([][]any, len(models))
	for i, m := range models {
		rows[i] = schema.Values(m)
	}
	return BuildInsert(table.TableName(), schema.Columns(table), rows)
}

// DeleteAll creates a statement that empties a table.
func DeleteAll(table string) db.Statement {
	dlb := sqlbuilder.SQLite.NewDeleteBuilder()
	dlb.DeleteFrom(table)
	query, args := dlb.Build()
	return db.Statement{SQL: query, Args: args}
}

func sqlValue(v any) any {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	case *bool:
		if t == nil {
			return nil
		}
		return sqlValue(*t)
	default:
		return v
	}
}
