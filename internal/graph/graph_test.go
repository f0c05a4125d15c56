package graph

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

func testGraphCatalog() *schema.Catalog {
	tables := map[string]*schema.Table{
		"workorders": {
			Name: "workorders",
			Columns: []schema.Column{
				{Name: "id", IsPrimaryKey: true},
				{Name: "status_id"},
				{Name: "parent_id"},
			},
			ForeignKeys: []schema.ForeignKey{
				{Name: "workorders_status_id_fkey", LocalColumns: []string{"status_id"}, ReferencedTable: "statuses", ForeignColumns: []string{"id"}},
				{Name: "workorders_parent_id_fkey", LocalColumns: []string{"parent_id"}, ReferencedTable: "workorders", ForeignColumns: []string{"id"}},
				{Name: "workorders_site_id_fkey", LocalColumns: []string{"site_id"}, ReferencedTable: "sites", ForeignColumns: []string{"id"}},
			},
		},
		"statuses": {
			Name:    "statuses",
			Columns: []schema.Column{{Name: "id", IsPrimaryKey: true}, {Name: "name"}},
		},
		"vendors": {
			Name:    "vendors",
			Columns: []schema.Column{{Name: "id", IsPrimaryKey: true}, {Name: "name"}},
		},
	}
	return schema.NewCatalog(tables, nil)
}

func TestBuildGraph(t *testing.T) {
	g := Build(testGraphCatalog())

	assert.Len(t, g.Tables, 3)

	// The FK to the out-of-scope sites table is ignored.
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "workorders", g.Edges[0].ChildTable)
	assert.Equal(t, "statuses", g.Edges[0].ParentTable)

	// Self-references are kept separately.
	require.Len(t, g.SelfRefs["workorders"], 1)
	assert.Equal(t, "workorders_parent_id_fkey", g.SelfRefs["workorders"][0].Name)

	assert.Equal(t, []string{"workorders"}, g.Children["statuses"])
	assert.Equal(t, []string{"statuses"}, g.Parents["workorders"])
}

func TestGraphRoots(t *testing.T) {
	g := Build(testGraphCatalog())

	roots := g.Roots()
	sort.Strings(roots)
	assert.Equal(t, []string{"statuses", "vendors"}, roots)
}

func TestFindComponents(t *testing.T) {
	g := Build(testGraphCatalog())

	components := FindComponents(g)
	require.Len(t, components, 2)

	sizes := []int{len(components[0].Tables), len(components[1].Tables)}
	sort.Ints(sizes)
	assert.Equal(t, []int{1, 2}, sizes)
}

func TestWriteMermaid(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteMermaid(&sb, Build(testGraphCatalog())))

	out := sb.String()
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "workorders -->|status_id| statuses")
	assert.Contains(t, out, "workorders -->|parent_id| workorders")
	assert.Contains(t, out, "vendors")
	assert.Contains(t, out, "subgraph component_1")
	assert.Contains(t, out, "subgraph component_2")
}

func TestWriteText(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteText(&sb, Build(testGraphCatalog())))

	out := sb.String()
	assert.Contains(t, out, "Tables: 3")
	assert.Contains(t, out, "Foreign Keys: 2")
	assert.Contains(t, out, "Connected Components: 2")
	assert.Contains(t, out, "Self-referencing tables: [workorders]")
	assert.Contains(t, out, "Lookup candidates (no FK parents): [statuses vendors]")
	assert.Contains(t, out, "PK: id")
}
