package graph

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// WriteMermaid writes the graph in Mermaid format to w.
// Each connected component is a subgraph.
func WriteMermaid(w io.Writer, g *Graph) error {
	components := sortedComponents(g)

	fmt.Fprintln(w, "graph TD")

	for i, comp := range components {
		fmt.Fprintf(w, "    subgraph component_%d\n", i+1)

		tableSet := make(map[string]bool, len(comp.Tables))
		for _, t := range comp.Tables {
			tableSet[t] = true
		}

		// Collect edges for this component
		edgesWritten := make(map[string]bool)
		for _, edge := range g.Edges {
			if !tableSet[edge.ChildTable] {
				continue
			}
			label := strings.Join(edge.FK.LocalColumns, ", ")
			edgeKey := fmt.Sprintf("%s-->%s:%s", edge.ChildTable, edge.ParentTable, label)
			if edgesWritten[edgeKey] {
				continue
			}
			edgesWritten[edgeKey] = true
			fmt.Fprintf(w, "        %s -->|%s| %s\n", edge.ChildTable, label, edge.ParentTable)
		}

		// Write self-referential edges
		for _, t := range comp.Tables {
			for _, fk := range g.SelfRefs[t] {
				label := strings.Join(fk.LocalColumns, ", ")
				fmt.Fprintf(w, "        %s -->|%s| %s\n", t, label, t)
			}
		}

		// Write standalone nodes (tables with no edges in this component)
		for _, t := range comp.Tables {
			if !hasEdge(g, t, tableSet) {
				fmt.Fprintf(w, "        %s\n", t)
			}
		}

		fmt.Fprintln(w, "    end")
		if i < len(components)-1 {
			fmt.Fprintln(w)
		}
	}

	return nil
}

// WriteText writes a text summary of the graph to w.
func WriteText(w io.Writer, g *Graph) error {
	components := sortedComponents(g)

	fmt.Fprintf(w, "Tables: %d\n", len(g.Tables))
	fmt.Fprintf(w, "Foreign Keys: %d\n", len(g.Edges)+countSelfRefs(g))
	fmt.Fprintf(w, "Connected Components: %d\n\n", len(components))

	if len(g.SelfRefs) > 0 {
		var selfRefTables []string
		for t := range g.SelfRefs {
			selfRefTables = append(selfRefTables, t)
		}
		sort.Strings(selfRefTables)
		fmt.Fprintf(w, "Self-referencing tables: %v\n\n", selfRefTables)
	}

	roots := g.Roots()
	sort.Strings(roots)
	fmt.Fprintf(w, "Lookup candidates (no FK parents): %v\n\n", roots)

	for i, comp := range components {
		fmt.Fprintf(w, "=== Component %d (%d tables) ===\n", i+1, len(comp.Tables))
		for j, t := range comp.Tables {
			tbl := g.Tables[t]
			pkInfo := "no PK"
			if pk := tbl.PKColumnNames(); len(pk) > 0 {
				pkInfo = fmt.Sprintf("PK: %s", strings.Join(pk, ", "))
			}
			fmt.Fprintf(w, "  %d. %s (%d cols, %s, %d FKs)\n",
				j+1, t, len(tbl.Columns), pkInfo, len(tbl.ForeignKeys))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// sortedComponents returns the components with deterministic ordering.
func sortedComponents(g *Graph) []Component {
	components := FindComponents(g)
	for i := range components {
		sort.Strings(components[i].Tables)
	}
	sort.Slice(components, func(i, j int) bool {
		if len(components[i].Tables) == 0 {
			return true
		}
		if len(components[j].Tables) == 0 {
			return false
		}
		return components[i].Tables[0] < components[j].Tables[0]
	})
	return components
}

func hasEdge(g *Graph, table string, componentTables map[string]bool) bool {
	for _, edge := range g.Edges {
		if edge.ChildTable == table && componentTables[edge.ParentTable] {
			return true
		}
		if edge.ParentTable == table && componentTables[edge.ChildTable] {
			return true
		}
	}
	if _, ok := g.SelfRefs[table]; ok {
		return true
	}
	return false
}

func countSelfRefs(g *Graph) int {
	count := 0
	for _, fks := range g.SelfRefs {
		count += len(fks)
	}
	return count
}
