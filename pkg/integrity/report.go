// Package integrity describes the findings of a database consistency check.
package integrity

// Check levels.
const (
	LevelBasic  = "basic"
	LevelStrict = "strict"
)

// MaxRows caps every list of offending rows in a report.
const MaxRows = 50

// Issue categories reported by the checker.
const (
	IssueMissingDisplayName = "Persons missing display_name"
	IssueOrphanedCohortLink = "Person-cohort relations referencing missing rows"
	IssueMissingImages      = "Missing image assets on disk"
	IssueMissingFlipbooks   = "Missing flipbook manifests"
	IssueDuplicateSlugs     = "Duplicate person slugs detected"
	IssueDuplicateHashes    = "Duplicate photo sha256 entries"
)

// Report is the result of an integrity check. Findings are data, they
// never make a check fail.
type Report struct {
	Database  string         `json:"database" yaml:"database"`
	Target    string         `json:"target" yaml:"target"`
	Level     string         `json:"level" yaml:"level"`
	People    PeopleReport   `json:"people" yaml:"people"`
	Cohorts   CohortReport   `json:"cohorts" yaml:"cohorts"`
	Photos    PhotoReport    `json:"photos" yaml:"photos"`
	Flipbooks FlipbookReport `json:"flipbooks" yaml:"flipbooks"`
	Meta      MetaReport     `json:"meta" yaml:"meta"`
	Issues    []string       `json:"issues" yaml:"issues"`
}

// PeopleReport holds person findings.
type PeopleReport struct {
	Total              int         `json:"total" yaml:"total"`
	MissingDisplayName []string    `json:"missingDisplayName,omitempty" yaml:"missingDisplayName,omitempty"`
	DuplicateSlugs     []Duplicate `json:"duplicateSlugs,omitempty" yaml:"duplicateSlugs,omitempty"`
}

// CohortReport holds cohort findings.
type CohortReport struct {
	Total   int          `json:"total" yaml:"total"`
	Orphans []CohortLink `json:"orphans,omitempty" yaml:"orphans,omitempty"`
}

// CohortLink is a person-cohort relation with an unresolved side.
type CohortLink struct {
	PersonID string `json:"person_id" yaml:"person_id"`
	CohortID string `json:"cohort_id" yaml:"cohort_id"`
}

// PhotoReport holds photo findings.
type PhotoReport struct {
	Total           int            `json:"total" yaml:"total"`
	MissingFiles    []MissingPhoto `json:"missingFiles,omitempty" yaml:"missingFiles,omitempty"`
	DuplicateHashes []Duplicate    `json:"duplicateHashes,omitempty" yaml:"duplicateHashes,omitempty"`
}

// MissingPhoto is a photo row without a usable file on disk.
type MissingPhoto struct {
	ID       string `json:"id" yaml:"id"`
	Sha256   string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// FlipbookReport holds flipbook findings.
type FlipbookReport struct {
	MissingManifests []string `json:"missingManifests,omitempty" yaml:"missingManifests,omitempty"`
}

// MetaReport mirrors the meta table.
type MetaReport struct {
	Entries map[string]string `json:"entries" yaml:"entries"`
}

// Duplicate is a value that occurs more than once.
type Duplicate struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// New creates an empty report.
func New(database, target, level string) *Report {
	return &Report{
		Database: database,
		Target:   target,
		Level:    level,
		Meta:     MetaReport{Entries: make(map[string]string)},
		Issues:   []string{},
	}
}

// AddIssue records an issue category once.
func (r *Report) AddIssue(issue string) {
	for _, v := range r.Issues {
		if v == issue {
			return
		}
	}
	r.Issues = append(r.Issues, issue)
}

// OK is true when no issues were found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}
