package normalize

import (
	"strings"

	"github.com/kioskware/kioskpack/pkg/schema"
)

// Person normalises a person row. Timestamps default to now. The row is
// dropped if no display name can be built.
func Person(r Record, now string) (schema.Person, bool) {
	var res schema.Person
	display := firstNonEmpty(
		r.Get("display_name"),
		DisplayName(r["first_name"], r["middle_name"], r["last_name"], r["suffix"]),
	)
	if display == "" {
		return res, false
	}
	slug := firstNonEmpty(r.Get("slug"), Slugify(display))
	id := firstNonEmpty(r.Get("id"), DeterministicID(slug))
	if id == "" || slug == "" {
		return res, false
	}

	res = schema.Person{
		ID:          id,
		FirstName:   EmptyToNull(r["first_name"]),
		MiddleName:  EmptyToNull(r["middle_name"]),
		LastName:    EmptyToNull(r["last_name"]),
		Suffix:      EmptyToNull(r["suffix"]),
		DisplayName: display,
		Slug:        slug,
		Bio:         EmptyToNull(r["bio"]),
		IsFaculty:   Flag(r["is_faculty"]),
		CreatedAt:   EmptyToNull(firstNonEmpty(r.Get("created_at"), now)),
		UpdatedAt:   EmptyToNull(firstNonEmpty(r.Get("updated_at"), now)),
	}
	return res, true
}

// Cohort normalises a cohort row. The label defaults to "Class of {year}".
func Cohort(r Record) (schema.Cohort, bool) {
	var res schema.Cohort
	year := r.Get("year")
	id := firstNonEmpty(r.Get("id"), DeterministicID(firstNonEmpty(year, r.Get("label"))))
	if id == "" {
		return res, false
	}

	label := EmptyToNull(r["label"])
	if label == nil && year != "" {
		label = EmptyToNull("Class of " + year)
	}
	res = schema.Cohort{
		ID:    id,
		Year:  ParseInt(year),
		Label: label,
	}
	return res, true
}

// PersonCohort normalises a membership link. Both references are required.
func PersonCohort(r Record) (schema.PersonCohort, bool) {
	res := schema.PersonCohort{
		PersonID:         r.Get("person_id"),
		CohortID:         r.Get("cohort_id"),
		IsClassPresident: Flag(r["is_class_president"]),
		Homeroom:         EmptyToNull(r["homeroom"]),
		Notes:            EmptyToNull(r["notes"]),
	}
	return res, res.PersonID != "" && res.CohortID != ""
}

// Photo normalises a photo row. The extension is lowercased and loses its
// leading dot.
func Photo(r Record) (schema.Photo, bool) {
	var res schema.Photo
	sha := strings.ToLower(r.Get("sha256"))
	id := firstNonEmpty(r.Get("id"), DeterministicID(sha))
	if id == "" || sha == "" {
		return res, false
	}

	res = schema.Photo{
		ID:        id,
		Sha256:    sha,
		Ext:       strings.ToLower(strings.TrimPrefix(r.Get("ext"), ".")),
		Width:     ParseInt64(r["width"]),
		Height:    ParseInt64(r["height"]),
		Bytes:     ParseInt64(r["bytes"]),
		Caption:   EmptyToNull(r["caption"]),
		Credit:    EmptyToNull(r["credit"]),
		CreatedAt: EmptyToNull(r["created_at"]),
	}
	return res, true
}

// PersonPhoto normalises a photo link. Kind defaults to "portrait".
func PersonPhoto(r Record) (schema.PersonPhoto, bool) {
	res := schema.PersonPhoto{
		PersonID:  r.Get("person_id"),
		PhotoID:   r.Get("photo_id"),
		Kind:      strings.ToLower(firstNonEmpty(r.Get("kind"), "portrait")),
		IsPrimary: Flag(r["is_primary"]),
	}
	return res, res.PersonID != "" && res.PhotoID != ""
}

// Publication normalises a publication row. The slug is derived from the
// title when absent.
func Publication(r Record) (schema.Publication, bool) {
	var res schema.Publication
	title := r.Get("title")
	slug := firstNonEmpty(r.Get("slug"), Slugify(title))
	id := firstNonEmpty(r.Get("id"), DeterministicID(firstNonEmpty(slug, title)))
	if id == "" {
		return res, false
	}
	if slug == "" {
		slug = Slugify(id)
	}

	res = schema.Publication{
		ID:                   id,
		Title:                firstNonEmpty(title, "Untitled Publication"),
		IssueDate:            EmptyToNull(r["issue_date"]),
		Volume:               EmptyToNull(r["volume"]),
		Number:               EmptyToNull(r["number"]),
		Slug:                 slug,
		CoverPhotoID:         EmptyToNull(r["cover_photo_id"]),
		FlipbookManifestPath: EmptyToNull(r["flipbook_manifest_path"]),
	}
	return res, true
}

// ArchiveItem normalises an archive item row. Kind is lowercased and
// defaults to "photo".
func ArchiveItem(r Record) (schema.ArchiveItem, bool) {
	var res schema.ArchiveItem
	title := r.Get("title")
	id := firstNonEmpty(r.Get("id"), DeterministicID(firstNonEmpty(r.Get("slug"), title)))
	if id == "" {
		return res, false
	}

	res = schema.ArchiveItem{
		ID:                   id,
		Title:                firstNonEmpty(title, "Archive Item"),
		Year:                 ParseInt(r["year"]),
		Kind:                 strings.ToLower(firstNonEmpty(r.Get("kind"), "photo")),
		PhotoID:              EmptyToNull(r["photo_id"]),
		FlipbookManifestPath: EmptyToNull(r["flipbook_manifest_path"]),
		Description:          EmptyToNull(r["description"]),
	}
	return res, true
}
