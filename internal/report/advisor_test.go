package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

func TestSuggestJoinsChildToParent(t *testing.T) {
	suggestions, err := SuggestJoins(testCatalog(), "workorders", "statuses")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.Equal(t, "workorders.status_id = statuses.id", s.Condition)
	assert.Equal(t, "LEFT", s.Type)
	assert.Equal(t, "workorders.status_id references statuses.id", s.Description)
}

func TestSuggestJoinsBothDirections(t *testing.T) {
	// Argument order must not matter for discovery.
	forward, err := SuggestJoins(testCatalog(), "workorders", "users")
	require.NoError(t, err)
	reversed, err := SuggestJoins(testCatalog(), "users", "workorders")
	require.NoError(t, err)

	require.Len(t, forward, 1)
	require.Len(t, reversed, 1)
	assert.Equal(t, forward[0].Condition, reversed[0].Condition)
}

func TestSuggestJoinsNoRelation(t *testing.T) {
	suggestions, err := SuggestJoins(testCatalog(), "statuses", "users")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestJoinsUnknownTable(t *testing.T) {
	_, err := SuggestJoins(testCatalog(), "workorders", "missing")
	var unknownErr *UnknownTableError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "missing", unknownErr.Table)
}

func TestSuggestJoinsCompositeKey(t *testing.T) {
	cat := testCatalog()
	tbl := cat.Table("workorders")
	tbl.ForeignKeys = []schema.ForeignKey{{
		Name:            "workorders_status_fkey",
		LocalColumns:    []string{"status_id", "priority_id"},
		ReferencedTable: "statuses",
		ForeignColumns:  []string{"id", "priority_ref"},
	}}

	suggestions, err := SuggestJoins(cat, "workorders", "statuses")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t,
		"workorders.status_id = statuses.id AND workorders.priority_id = statuses.priority_ref",
		suggestions[0].Condition)
}
