// Package normalize maps raw tabular records into typed entities.
//
// Blank fields become nil, booleans accept 1/0, true/false and yes/no,
// unparsable numbers become nil. Missing identifiers are derived from a
// stable natural key, so importing the same data twice gives the same IDs.
// Rows without any usable key are dropped.
package normalize

import (
	"encoding/hex"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Record is one row of a table keyed by column header.
type Record map[string]string

// IDPrefix marks identifiers synthesised from a natural key.
const IDPrefix = "auto-"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Get returns a trimmed field value, or empty string if the column is absent.
func (r Record) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// EmptyToNull returns nil for blank strings, or a pointer to the trimmed
// value otherwise.
func EmptyToNull(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ParseBool recognises 1/0, true/false and yes/no case-insensitively.
// Any other value returns nil.
func ParseBool(s string) *bool {
	var res bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		res = true
	case "0", "false", "no":
		res = false
	default:
		return nil
	}
	return &res
}

// Flag converts a boolean-like field to a plain bool, where unrecognised
// values are false.
func Flag(s string) bool {
	b := ParseBool(s)
	return b != nil && *b
}

// ParseNumber returns nil for blank, unparsable or non-finite values.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseInt parses a number and truncates it to an integer.
func ParseInt(s string) *int {
	f := ParseNumber(s)
	if f == nil {
		return nil
	}
	i := int(*f)
	return &i
}

// ParseInt64 is like ParseInt, for counts and sizes.
func ParseInt64(s string) *int64 {
	f := ParseNumber(s)
	if f == nil {
		return nil
	}
	i := int64(*f)
	return &i
}

// Slugify lowercases a string and collapses every run of
// non-alphanumeric characters into a single dash.
func Slugify(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// DisplayName joins non-empty name parts with single spaces.
func DisplayName(parts ...string) string {
	var res []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return strings.Join(res, " ")
}

// DeterministicID derives an identifier from the hex encoding of the whole
// seed, so distinct seeds never share an identifier. It returns an empty
// string for an empty seed.
func DeterministicID(seed string) string {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return ""
	}
	return IDPrefix + hex.EncodeToString([]byte(seed))
}

// firstNonEmpty returns the first argument that is not blank.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
