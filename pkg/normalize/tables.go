package normalize

import "github.com/kioskware/kioskpack/pkg/schema"

// Tables holds the normalised content of a pack.
type Tables struct {
	Persons       []schema.Person
	Cohorts       []schema.Cohort
	PersonCohorts []schema.PersonCohort
	Photos        []schema.Photo
	PersonPhotos  []schema.PersonPhoto
	Publications  []schema.Publication
	ArchiveItems  []schema.ArchiveItem
}

// Add normalises records of the named table and appends them.
// It returns the number of dropped records. Unknown tables are ignored.
func (t *Tables) Add(table string, recs []Record, now string) int {
	var dropped int
	keep := func(ok bool) bool {
		if !ok {
			dropped++
		}
		return ok
	}

	for _, r := range recs {
		switch table {
		case "person":
			if v, ok := Person(r, now); keep(ok) {
				t.Persons = append(t.Persons, v)
			}
		case "cohort":
			if v, ok := Cohort(r); keep(ok) {
				t.Cohorts = append(t.Cohorts, v)
			}
		case "person_cohort":
			if v, ok := PersonCohort(r); keep(ok) {
				t.PersonCohorts = append(t.PersonCohorts, v)
			}
		case "photo":
			if v, ok := Photo(r); keep(ok) {
				t.Photos = append(t.Photos, v)
			}
		case "person_photo":
			if v, ok := PersonPhoto(r); keep(ok) {
				t.PersonPhotos = append(t.PersonPhotos, v)
			}
		case "publication":
			if v, ok := Publication(r); keep(ok) {
				t.Publications = append(t.Publications, v)
			}
		case "archive_item":
			if v, ok := ArchiveItem(r); keep(ok) {
				t.ArchiveItems = append(t.ArchiveItems, v)
			}
		}
	}
	return dropped
}

// Rows returns the records of a table as generic models, in insert order.
func (t *Tables) Rows(table string) []any {
	var res []any
	switch table {
	case "person":
		res = toAny(t.Persons)
	case "cohort":
		res = toAny(t.Cohorts)
	case "person_cohort":
		res = toAny(t.PersonCohorts)
	case "photo":
		res = toAny(t.Photos)
	case "person_photo":
		res = toAny(t.PersonPhotos)
	case "publication":
		res = toAny(t.Publications)
	case "archive_item":
		res = toAny(t.ArchiveItems)
	}
	return res
}

// Counts returns row counts keyed by table name.
func (t *Tables) Counts() map[string]int {
	res := make(map[string]int)
	for _, name := range schema.ContentTables() {
		res[name] = len(t.Rows(name))
	}
	return res
}

func toAny[T any](s []T) []any {
	res := make([]any, len(s))
	for i := range s {
		res[i] = s[i]
	}
	return res
}
