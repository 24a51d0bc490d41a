package manifest_test

import (
	"testing"

	"github.com/kioskware/kioskpack/pkg/manifest"
	"github.com/stretchr/testify/assert"
)

func TestCmpVersion(t *testing.T) {
	tests := []struct {
		a, b string
		res  int
	}{
		{"1.2.3", "1.2.3", 0},
		{"1.2", "1.2.0", 0},
		{"v1.2.3", "1.2.3", 0},
		{"1.10.0", "1.9.9", 1},
		{"1.2.3", "1.2.4", -1},
		{"2", "1.99.99", 1},
		{"0.4.2", "0.5", -1},
		{"1.2.0-rc1", "1.2", 0},
		{"1.2.3.1", "1.2.3", 1},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, manifest.CmpVersion(v.a, v.b), v.a+" vs "+v.b)
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		msg    string
		compat *manifest.Compat
		app    string
		res    bool
	}{
		{"no compat block", nil, "0.0.1", true},
		{"empty minimum", &manifest.Compat{MinAppSemver: " "}, "0.0.1", true},
		{"equal", &manifest.Compat{MinAppSemver: "1.4.0"}, "v1.4.0", true},
		{"lower minimum", &manifest.Compat{MinAppSemver: "1.3"}, "1.4.0", true},
		{"higher minimum", &manifest.Compat{MinAppSemver: "1.5.0"}, "1.4.9", false},
	}

	for _, v := range tests {
		m := manifest.Manifest{Compat: v.compat}
		assert.Equal(t, v.res, m.IsCompatible(v.app), v.msg)
	}
}

func TestFindTable(t *testing.T) {
	m := manifest.Manifest{
		Tables: []manifest.Table{
			{Name: "person", Path: "tables/person.csv"},
			{Name: "cohort", Path: "tables/cohort.csv", Format: "csv"},
		},
	}

	tbl, ok := m.FindTable("person")
	assert.True(t, ok)
	assert.Equal(t, "tables/person.csv", tbl.Path)
	assert.Equal(t, manifest.DefaultFormat, tbl.Format)

	_, ok = m.FindTable("photo")
	assert.False(t, ok)
}
