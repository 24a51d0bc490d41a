// Package manifest describes the manifest.json of a content pack.
package manifest

import (
	"strconv"
	"strings"
)

// FileName is the manifest location inside an extracted pack.
const FileName = "manifest.json"

// ChecksumFile holds the expected SHA-256 of the raw manifest bytes.
const ChecksumFile = "checksums/manifest.sha256"

// SignatureFile holds the detached Ed25519 signature of the manifest.
const SignatureFile = "signature.sig"

// DefaultFormat is used when a table descriptor omits its format.
const DefaultFormat = "csv"

// Manifest is the typed form of manifest.json.
type Manifest struct {
	PackID         string  `json:"pack_id"`
	ContentVersion int     `json:"content_version"`
	CreatedUTC     string  `json:"created_utc"`
	Tables         []Table `json:"tables"`
	Assets         Assets  `json:"assets"`
	Compat         *Compat `json:"compat,omitempty"`
}

// Table describes one tabular data file of the pack.
type Table struct {
	Name   string `json:"name"`
	Format string `json:"format,omitempty"`
	Path   string `json:"path"`
	Hash   string `json:"hash,omitempty"`
}

// Assets points to image and flipbook directories of the pack.
type Assets struct {
	Images    AssetDir `json:"images"`
	Flipbooks AssetDir `json:"flipbooks"`
}

// AssetDir is a directory inside the pack with an optional file count.
type AssetDir struct {
	Path  string `json:"path"`
	Count *int   `json:"count,omitempty"`
}

// Compat declares the minimal application version able to load the pack.
type Compat struct {
	MinAppSemver string `json:"min_app_semver"`
}

// FindTable returns the descriptor of a table by its name.
func (m *Manifest) FindTable(name string) (Table, bool) {
	for _, v := range m.Tables {
		if v.Name == name {
			if v.Format == "" {
				v.Format = DefaultFormat
			}
			return v, true
		}
	}
	return Table{}, false
}

// MinAppVersion returns declared minimal version or an empty string.
func (m *Manifest) MinAppVersion() string {
	if m.Compat == nil {
		return ""
	}
	return strings.TrimSpace(m.Compat.MinAppSemver)
}

// IsCompatible reports if appVersion satisfies compat.min_app_semver.
// A pack without compat block is compatible with any version.
func (m *Manifest) IsCompatible(appVersion string) bool {
	minVer := m.MinAppVersion()
	if minVer == "" {
		return true
	}
	return CmpVersion(appVersion, minVer) >= 0
}

// CmpVersion compares dot-separated versions segment by segment as
// integers. Missing trailing segments count as zero, a leading 'v' is
// ignored, and only the leading digits of a segment are used, so
// "1.2.0-rc1" compares equal to "1.2". Returns -1, 0 or 1.
func CmpVersion(a, b string) int {
	as := segments(a)
	bs := segments(b)
	n := max(len(as), len(bs))
	for i := range n {
		var x, y int
		if i < len(as) {
			x = as[i]
		}
		if i < len(bs) {
			y = bs[i]
		}
		switch {
		case x > y:
			return 1
		case x < y:
			return -1
		}
	}
	return 0
}

func segments(v string) []int {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ".")
	res := make([]int, len(parts))
	for i, p := range parts {
		end := 0
		for end < len(p) && p[end] >= '0' && p[end] <= '9' {
			end++
		}
		n, _ := strconv.Atoi(p[:end])
		res[i] = n
	}
	return res
}
