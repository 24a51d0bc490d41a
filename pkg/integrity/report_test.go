package integrity_test

import (
	"testing"

	"github.com/kioskware/kioskpack/pkg/integrity"
	"github.com/stretchr/testify/assert"
)

func TestReportIssues(t *testing.T) {
	r := integrity.New("/tmp/app.db", "active", integrity.LevelBasic)
	assert.True(t, r.OK())
	assert.NotNil(t, r.Meta.Entries)

	r.AddIssue(integrity.IssueMissingImages)
	r.AddIssue(integrity.IssueMissingImages)
	r.AddIssue(integrity.IssueMissingFlipbooks)
	assert.False(t, r.OK())
	assert.Equal(t, []string{
		integrity.IssueMissingImages,
		integrity.IssueMissingFlipbooks,
	}, r.Issues)
}
