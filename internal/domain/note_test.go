package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteDraft_Build_TimestampsEqual(t *testing.T) {
	d := NoteDraft{Title: "A", Content: "B", Category: CategoryAcademic, Tags: []string{}}
	require.NoError(t, d.Validate())

	n := d.Build("n1", testNow)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
	assert.Equal(t, testNow, n.CreatedAt)
}

func TestNoteDraft_Validate_RequiresTitle(t *testing.T) {
	err := NoteDraft{Title: "   "}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}

func TestNotePatch_Apply_RefreshesUpdatedAt(t *testing.T) {
	n := NoteDraft{Title: "A"}.Build("n1", testNow)
	later := testNow.Add(time.Minute)

	NotePatch{}.Apply(&n, later)
	assert.Equal(t, later, n.UpdatedAt)
	assert.Equal(t, testNow, n.CreatedAt)
}

func TestNotePatch_Apply_NeverMovesBackwards(t *testing.T) {
	n := NoteDraft{Title: "A"}.Build("n1", testNow)
	earlier := testNow.Add(-time.Hour)
	content := "changed"

	NotePatch{Content: &content}.Apply(&n, earlier)
	assert.Equal(t, "changed", n.Content)
	assert.Equal(t, testNow, n.UpdatedAt)
}
