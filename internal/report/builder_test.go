package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

// testCatalog builds the work-order schema used across the report tests.
func testCatalog() *schema.Catalog {
	tables := map[string]*schema.Table{
		"workorders": {
			Schema: "public",
			Name:   "workorders",
			Columns: []schema.Column{
				{Name: "id", DataType: "int4", IsPrimaryKey: true, OrdPos: 1},
				{Name: "title", DataType: "text", OrdPos: 2},
				{Name: "description", DataType: "text", Nullable: true, OrdPos: 3},
				{Name: "priority", DataType: "text", OrdPos: 4},
				{Name: "status_id", DataType: "int4", Nullable: true, OrdPos: 5},
				{Name: "priority_id", DataType: "int4", Nullable: true, OrdPos: 6},
				{Name: "assigned_to", DataType: "int4", Nullable: true, OrdPos: 7},
				{Name: "created_at", DataType: "timestamptz", OrdPos: 8},
			},
			ForeignKeys: []schema.ForeignKey{
				{Name: "workorders_status_id_fkey", LocalColumns: []string{"status_id"}, ReferencedTable: "statuses", ForeignColumns: []string{"id"}},
				{Name: "workorders_priority_id_fkey", LocalColumns: []string{"priority_id"}, ReferencedTable: "priorities", ForeignColumns: []string{"id"}},
				{Name: "workorders_assigned_to_fkey", LocalColumns: []string{"assigned_to"}, ReferencedTable: "users", ForeignColumns: []string{"id"}},
			},
		},
		"statuses": {
			Schema: "public",
			Name:   "statuses",
			Columns: []schema.Column{
				{Name: "id", DataType: "int4", IsPrimaryKey: true, OrdPos: 1},
				{Name: "name", DataType: "text", OrdPos: 2},
			},
		},
		"priorities": {
			Schema: "public",
			Name:   "priorities",
			Columns: []schema.Column{
				{Name: "id", DataType: "int4", IsPrimaryKey: true, OrdPos: 1},
				{Name: "name", DataType: "text", OrdPos: 2},
				{Name: "level", DataType: "int4", OrdPos: 3},
			},
		},
		"users": {
			Schema: "public",
			Name:   "users",
			Columns: []schema.Column{
				{Name: "id", DataType: "int4", IsPrimaryKey: true, OrdPos: 1},
				{Name: "username", DataType: "text", OrdPos: 2},
				{Name: "email", DataType: "text", OrdPos: 3},
			},
		},
	}
	return schema.NewCatalog(tables, []string{"priorities", "statuses", "users", "workorders"})
}

func TestBuildBasicSelect(t *testing.T) {
	cfg := Config{
		PrimaryTable: "workorders",
		Columns:      []string{"workorders.id", "workorders.title"},
		Filters: []FilterClause{
			{Column: "priority", Operator: OpEq, Value: "HIGH"},
		},
		Limit: 10,
	}

	sql, err := Build(testCatalog(), DefaultLookups(), cfg)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT workorders.id, workorders.title FROM workorders WHERE priority = 'HIGH' LIMIT 10",
		sql)
}

func TestBuildQualifiesBareColumns(t *testing.T) {
	cfg := Config{
		PrimaryTable: "workorders",
		Columns:      []string{"id", "title"},
	}

	sql, err := Build(testCatalog(), DefaultLookups(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "SELECT workorders.id, workorders.title FROM workorders", sql)
}

func TestBuildEnhancedColumnJoin(t *testing.T) {
	cfg := Config{
		PrimaryTable: "workorders",
		Columns:      []string{"title", "statuses.name"},
	}

	sql, err := Build(testCatalog(), DefaultLookups(), cfg)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT workorders.title, statuses.name "+
			"FROM workorders "+
			"LEFT JOIN statuses ON workorders.status_id = statuses.id",
		sql)
}

func TestBuildDeduplicatesJoins(t *testing.T) {
	cfg := Config{
		PrimaryTable: "workorders",
		Columns:      []string{"title", "priorities.name", "priorities.level"},
	}

	sql, err := Build(testCatalog(), DefaultLookups(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, countOccurrences(sql, "LEFT JOIN priorities"))
	assert.Contains(t, sql, "priorities.name, priorities.level")
}

func TestBuildExplicitJoins(t *testing.T) {
	cfg := Config{
		PrimaryTable: "workorders",
		Columns:      []string{"title"},
		Joins: []ExplicitJoin{
			{Type: "inner", Table: "users", Condition: "workorders.assigned_to = users.id"},
			{Table: "statuses", Condition: "workorders.status_id = statuses.id"},
		},
	}

	sql, err := Build(testCatalog(), DefaultLookups(), cfg)
	require.NoError(t, err)
	assert.Contains(t, sql, "INNER JOIN users ON workorders.assigned_to = users.id")
	assert.Contains(t, sql, "LEFT JOIN statuses ON workorders.status_id = statuses.id")
}

func TestBuildClauseOrder(t *testing.T) {
	cfg := Config{
		PrimaryTable: "workorders",
		Columns:      []string{"priority", "statuses.name"},
		Filters: []FilterClause{
			{Column: "workorders.created_at", Operator: OpGe, Value: "2026-01-01"},
		},
		GroupBy: []string{"workorders.priority", "statuses.name"},
		OrderBy: "workorders.priority",
		Limit:   100,
	}

	sql, err := Build(testCatalog(), DefaultLookups(), cfg)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT workorders.priority, statuses.name "+
			"FROM workorders "+
			"LEFT JOIN statuses ON workorders.status_id = statuses.id "+
			"WHERE workorders.created_at >= '2026-01-01' "+
			"GROUP BY workorders.priority, statuses.name "+
			"ORDER BY workorders.priority "+
			"LIMIT 100",
		sql)
}

func TestBuildFilterOperators(t *testing.T) {
	tests := []struct {
		name   string
		filter FilterClause
		want   string
	}{
		{"eq", FilterClause{Column: "status", Operator: OpEq, Value: "OPEN"}, "status = 'OPEN'"},
		{"ne", FilterClause{Column: "status", Operator: OpNe, Value: "CLOSED"}, "status != 'CLOSED'"},
		{"gt", FilterClause{Column: "id", Operator: OpGt, Value: "5"}, "id > '5'"},
		{"ge", FilterClause{Column: "id", Operator: OpGe, Value: "5"}, "id >= '5'"},
		{"lt", FilterClause{Column: "id", Operator: OpLt, Value: "5"}, "id < '5'"},
		{"le", FilterClause{Column: "id", Operator: OpLe, Value: "5"}, "id <= '5'"},
		{"like", FilterClause{Column: "title", Operator: OpLike, Value: "pump"}, "title LIKE '%pump%'"},
		{"ilike", FilterClause{Column: "title", Operator: OpILike, Value: "Pump"}, "title ILIKE '%Pump%'"},
		{"starts_with", FilterClause{Column: "title", Operator: OpStartsWith, Value: "WO-"}, "title LIKE 'WO-%'"},
		{"ends_with", FilterClause{Column: "title", Operator: OpEndsWith, Value: "-urgent"}, "title LIKE '%-urgent'"},
		{"in", FilterClause{Column: "status", Operator: OpIn, Value: "OPEN, CLOSED"}, "status IN ('OPEN', 'CLOSED')"},
		{"not_in", FilterClause{Column: "status", Operator: OpNotIn, Value: "DRAFT"}, "status NOT IN ('DRAFT')"},
		{"between", FilterClause{Column: "id", Operator: OpBetween, Value: "1", Value2: "10"}, "id BETWEEN '1' AND '10'"},
		{"is_null", FilterClause{Column: "assigned_to", Operator: OpIsNull}, "assigned_to IS NULL"},
		{"is_not_null", FilterClause{Column: "assigned_to", Operator: OpIsNotNull}, "assigned_to IS NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, err := buildFilterClause(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, clause)
		})
	}
}

func TestBuildFiltersJoinedWithAnd(t *testing.T) {
	cfg := Config{
		PrimaryTable: "workorders",
		Columns:      []string{"id"},
		Filters: []FilterClause{
			{Column: "priority", Operator: OpEq, Value: "HIGH"},
			{Column: "assigned_to", Operator: OpIsNull},
		},
	}

	sql, err := Build(testCatalog(), DefaultLookups(), cfg)
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE priority = 'HIGH' AND assigned_to IS NULL")
}

func TestBuildEscapesQuotes(t *testing.T) {
	clause, err := buildFilterClause(FilterClause{Column: "title", Operator: OpEq, Value: "O'Brien's pump"})
	require.NoError(t, err)
	assert.Equal(t, "title = 'O''Brien''s pump'", clause)
}

func TestBuildUnsupportedOperator(t *testing.T) {
	_, err := buildFilterClause(FilterClause{Column: "title", Operator: "regex", Value: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported filter operator")
}

func TestBuildSortingShorthand(t *testing.T) {
	tests := []struct {
		name    string
		sorting *Sorting
		want    string
	}{
		{"bare column qualified", &Sorting{Column: "created_at", Order: "desc"}, "ORDER BY workorders.created_at DESC"},
		{"qualified column kept", &Sorting{Column: "statuses.name", Order: "asc"}, "ORDER BY statuses.name ASC"},
		{"unknown order falls back to asc", &Sorting{Column: "id", Order: "sideways"}, "ORDER BY workorders.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{PrimaryTable: "workorders", Columns: []string{"id"}, Sorting: tt.sorting}
			sql, err := Build(testCatalog(), DefaultLookups(), cfg)
			require.NoError(t, err)
			assert.Contains(t, sql, tt.want)
		})
	}
}

func TestBuildOmitsAbsentClauses(t *testing.T) {
	cfg := Config{
		PrimaryTable: "workorders",
		Columns:      []string{"id"},
	}

	sql, err := Build(testCatalog(), DefaultLookups(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "SELECT workorders.id FROM workorders", sql)
	assert.NotContains(t, sql, "WHERE")
	assert.NotContains(t, sql, "LIMIT")
}

func TestBuildNonPositiveLimitOmitted(t *testing.T) {
	for _, limit := range []int{0, -5} {
		cfg := Config{PrimaryTable: "workorders", Columns: []string{"id"}, Limit: limit}
		sql, err := Build(testCatalog(), DefaultLookups(), cfg)
		require.NoError(t, err)
		assert.NotContains(t, sql, "LIMIT")
	}
}

func TestBuildMissingInputs(t *testing.T) {
	_, err := Build(testCatalog(), DefaultLookups(), Config{Columns: []string{"id"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no primary table specified")

	_, err = Build(testCatalog(), DefaultLookups(), Config{PrimaryTable: "workorders"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns specified")
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
