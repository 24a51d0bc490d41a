// Package schema provides the relational model of kiosk content.
// Identifiers are opaque strings so they can be synthesised
// deterministically from natural keys. Nullable columns are pointers.
package schema

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the SQLite table name for this model.
	TableName() string
}

// Person is an alumnus or a faculty member.
type Person struct {
	// ID is given by the pack or derived from Slug.
	ID string `db:"id" ddl:"TEXT PRIMARY KEY"`

	FirstName  *string `db:"first_name" ddl:"TEXT"`
	MiddleName *string `db:"middle_name" ddl:"TEXT"`
	LastName   *string `db:"last_name" ddl:"TEXT"`
	Suffix     *string `db:"suffix" ddl:"TEXT"`

	// DisplayName is never empty. It is built from name parts when the
	// pack does not provide it.
	DisplayName string `db:"display_name" ddl:"TEXT NOT NULL"`

	// Slug is unique and URL-safe.
	Slug string `db:"slug" ddl:"TEXT NOT NULL UNIQUE"`

	Bio       *string `db:"bio" ddl:"TEXT"`
	IsFaculty bool    `db:"is_faculty" ddl:"INTEGER NOT NULL DEFAULT 0"`
	CreatedAt *string `db:"created_at" ddl:"TEXT"`
	UpdatedAt *string `db:"updated_at" ddl:"TEXT"`
}

// Cohort is a graduating class. At most one cohort exists per year.
type Cohort struct {
	ID    string  `db:"id" ddl:"TEXT PRIMARY KEY"`
	Year  *int    `db:"year" ddl:"INTEGER UNIQUE"`
	Label *string `db:"label" ddl:"TEXT"`
}

// PersonCohort links a person to a cohort. References are not enforced by
// constraints; dangling ones are reported by the integrity checker.
type PersonCohort struct {
	PersonID         string  `db:"person_id" ddl:"TEXT NOT NULL"`
	CohortID         string  `db:"cohort_id" ddl:"TEXT NOT NULL"`
	IsClassPresident bool    `db:"is_class_president" ddl:"INTEGER NOT NULL DEFAULT 0"`
	Homeroom         *string `db:"homeroom" ddl:"TEXT"`
	Notes            *string `db:"notes" ddl:"TEXT"`
}

// Photo is an image file stored as {sha256}.{ext}.
type Photo struct {
	ID        string  `db:"id" ddl:"TEXT PRIMARY KEY"`
	Sha256    string  `db:"sha256" ddl:"TEXT NOT NULL UNIQUE"`
	Ext       string  `db:"ext" ddl:"TEXT NOT NULL"`
	Width     *int64  `db:"width" ddl:"INTEGER"`
	Height    *int64  `db:"height" ddl:"INTEGER"`
	Bytes     *int64  `db:"bytes" ddl:"INTEGER"`
	Caption   *string `db:"caption" ddl:"TEXT"`
	Credit    *string `db:"credit" ddl:"TEXT"`
	CreatedAt *string `db:"created_at" ddl:"TEXT"`
}

// PersonPhoto links a person to a photo.
type PersonPhoto struct {
	PersonID  string `db:"person_id" ddl:"TEXT NOT NULL"`
	PhotoID   string `db:"photo_id" ddl:"TEXT NOT NULL"`
	Kind      string `db:"kind" ddl:"TEXT CHECK(kind IN ('portrait','candid','other'))"`
	IsPrimary bool   `db:"is_primary" ddl:"INTEGER NOT NULL DEFAULT 0"`
}

// Publication is an issue of a periodical.
type Publication struct {
	ID                   string  `db:"id" ddl:"TEXT PRIMARY KEY"`
	Title                string  `db:"title" ddl:"TEXT NOT NULL"`
	IssueDate            *string `db:"issue_date" ddl:"TEXT"`
	Volume               *string `db:"volume" ddl:"TEXT"`
	Number               *string `db:"number" ddl:"TEXT"`
	Slug                 string  `db:"slug" ddl:"TEXT NOT NULL UNIQUE"`
	CoverPhotoID         *string `db:"cover_photo_id" ddl:"TEXT"`
	FlipbookManifestPath *string `db:"flipbook_manifest_path" ddl:"TEXT"`
}

// ArchiveItem is a historical photo or flipbook.
type ArchiveItem struct {
	ID                   string  `db:"id" ddl:"TEXT PRIMARY KEY"`
	Title                string  `db:"title" ddl:"TEXT NOT NULL"`
	Year                 *int    `db:"year" ddl:"INTEGER"`
	Kind                 string  `db:"kind" ddl:"TEXT CHECK(kind IN ('photo','flipbook'))"`
	PhotoID              *string `db:"photo_id" ddl:"TEXT"`
	FlipbookManifestPath *string `db:"flipbook_manifest_path" ddl:"TEXT"`
	Description          *string `db:"description" ddl:"TEXT"`
}

// Meta is pipeline bookkeeping, replaced on every import.
type Meta struct {
	Key   string `db:"key" ddl:"TEXT PRIMARY KEY"`
	Value string `db:"value" ddl:"TEXT"`
}

// Keys of the meta table.
const (
	MetaContentVersion = "content_version"
	MetaPackID         = "pack_id"
	MetaPackUUID       = "pack_uuid"
	MetaCreatedUTC     = "created_utc"
	MetaManifestHash   = "manifest_hash"
	MetaPackSha256     = "pack_sha256"
	MetaPackSignature  = "pack_signature"
	MetaAppVersion     = "app_version"
	MetaImportedAt     = "imported_at"
)
