package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// FTSTable is the full-text projection of person names.
const FTSTable = "person_fts"

// generateDDL creates a CREATE TABLE statement from struct tags.
// Extra table constraints are appended after the columns.
func generateDDL(model any, tableName string, constraints ...string) string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var columns []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}
	for _, c := range constraints {
		columns = append(columns, "    "+c)
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))
}

// Person DDL methods
func (Person) TableName() string { return "person" }

func (p Person) TableDDL() string {
	return generateDDL(p, p.TableName())
}

func (Person) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_person_display_name ON person(display_name);",
	}
}

// Cohort DDL methods
func (Cohort) TableName() string { return "cohort" }

func (c Cohort) TableDDL() string {
	return generateDDL(c, c.TableName())
}

func (Cohort) IndexDDL() []string { return []string{} }

// PersonCohort DDL methods
func (PersonCohort) TableName() string { return "person_cohort" }

func (pc PersonCohort) TableDDL() string {
	return generateDDL(pc, pc.TableName(), "PRIMARY KEY (person_id, cohort_id)")
}

func (PersonCohort) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_person_cohort_cohort_id ON person_cohort(cohort_id);",
		"CREATE INDEX IF NOT EXISTS idx_person_cohort_president ON person_cohort(is_class_president);",
	}
}

// Photo DDL methods
func (Photo) TableName() string { return "photo" }

func (p Photo) TableDDL() string {
	return generateDDL(p, p.TableName())
}

func (Photo) IndexDDL() []string { return []string{} }

// PersonPhoto DDL methods
func (PersonPhoto) TableName() string { return "person_photo" }

func (pp PersonPhoto) TableDDL() string {
	return generateDDL(pp, pp.TableName(), "PRIMARY KEY (person_id, photo_id)")
}

func (PersonPhoto) IndexDDL() []string { return []string{} }

// Publication DDL methods
func (Publication) TableName() string { return "publication" }

func (p Publication) TableDDL() string {
	return generateDDL(p, p.TableName())
}

func (Publication) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_publication_issue_date ON publication(issue_date DESC);",
	}
}

// ArchiveItem DDL methods
func (ArchiveItem) TableName() string { return "archive_item" }

func (a ArchiveItem) TableDDL() string {
	return generateDDL(a, a.TableName())
}

func (ArchiveItem) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_archive_item_year ON archive_item(year DESC);",
		"CREATE INDEX IF NOT EXISTS idx_archive_item_kind ON archive_item(kind);",
	}
}

// Meta DDL methods
func (Meta) TableName() string { return "meta" }

func (m Meta) TableDDL() string {
	return generateDDL(m, m.TableName())
}

func (Meta) IndexDDL() []string { return []string{} }

// ContentModels returns models of content-bearing tables in insert order.
func ContentModels() []DDLGenerator {
	return []DDLGenerator{
		Person{},
		Cohort{},
		PersonCohort{},
		Photo{},
		PersonPhoto{},
		Publication{},
		ArchiveItem{},
	}
}

// AllModels returns every model including meta.
func AllModels() []DDLGenerator {
	return append(ContentModels(), Meta{})
}

// ContentTables returns names of content-bearing tables in insert order.
func ContentTables() []string {
	models := ContentModels()
	res := make([]string, len(models))
	for i, m := range models {
		res[i] = m.TableName()
	}
	return res
}

// FTSDDL creates the external-content full-text index over person names.
// The person table keeps its implicit rowid, which links both tables.
func FTSDDL() string {
	return `CREATE VIRTUAL TABLE IF NOT EXISTS person_fts USING fts5(
    display_name, last_name, first_name,
    content='person', content_rowid='rowid'
);`
}

// FTSRebuild repopulates the full-text index from the person table.
func FTSRebuild() string {
	return "INSERT INTO person_fts(person_fts) VALUES('rebuild');"
}

// SchemaDDL returns all statements that create the database schema.
// Every statement is idempotent.
func SchemaDDL() []string {
	var res []string
	for _, m := range AllModels() {
		res = append(res, m.TableDDL())
		res = append(res, m.IndexDDL()...)
	}
	res = append(res, FTSDDL())
	return res
}
