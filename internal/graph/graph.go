package graph

import (
	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

// Edge represents a directed edge from child to parent (FK direction).
type Edge struct {
	FK          schema.ForeignKey
	ChildTable  string
	ParentTable string
}

// Graph is a directed graph built from the catalog's FK relationships.
type Graph struct {
	// Tables maps table name -> table
	Tables map[string]*schema.Table

	// Edges are non-self-referential FK edges (child → parent)
	Edges []Edge

	// SelfRefs holds self-referential FKs, keyed by table name
	SelfRefs map[string][]schema.ForeignKey

	// Children maps parent name → list of child names
	Children map[string][]string

	// Parents maps child name → list of parent names
	Parents map[string][]string

	// adjacency for undirected connectivity
	Adjacency map[string]map[string]bool
}

// Build constructs a directed graph from a catalog snapshot. FKs
// referencing tables outside the catalog are ignored.
func Build(cat *schema.Catalog) *Graph {
	g := &Graph{
		Tables:    make(map[string]*schema.Table),
		SelfRefs:  make(map[string][]schema.ForeignKey),
		Children:  make(map[string][]string),
		Parents:   make(map[string][]string),
		Adjacency: make(map[string]map[string]bool),
	}

	for _, name := range cat.TableNames() {
		g.Tables[name] = cat.Table(name)
		g.Adjacency[name] = make(map[string]bool)
	}

	for name, tbl := range g.Tables {
		for _, fk := range tbl.ForeignKeys {
			if _, ok := g.Tables[fk.ReferencedTable]; !ok {
				continue // referenced table not in scope
			}

			if fk.ReferencedTable == name {
				g.SelfRefs[name] = append(g.SelfRefs[name], fk)
				continue
			}

			g.Edges = append(g.Edges, Edge{
				FK:          fk,
				ChildTable:  name,
				ParentTable: fk.ReferencedTable,
			})
			g.Children[fk.ReferencedTable] = append(g.Children[fk.ReferencedTable], name)
			g.Parents[name] = append(g.Parents[name], fk.ReferencedTable)
			g.Adjacency[name][fk.ReferencedTable] = true
			g.Adjacency[fk.ReferencedTable][name] = true
		}
	}

	return g
}

// Roots returns tables that have no outgoing FK edges (no parents).
func (g *Graph) Roots() []string {
	var roots []string
	for name := range g.Tables {
		if len(g.Parents[name]) == 0 {
			roots = append(roots, name)
		}
	}
	return roots
}
