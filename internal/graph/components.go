package graph

// Component is a group of tables connected through foreign keys in
// either direction. The graph renderers group their output by component.
type Component struct {
	Tables []string
}

// FindComponents partitions the catalog's tables into connected
// components, treating FK edges as undirected. Tables with no FK
// relationships form single-table components.
func FindComponents(g *Graph) []Component {
	visited := make(map[string]bool)
	var components []Component

	for name := range g.Tables {
		if visited[name] {
			continue
		}
		components = append(components, Component{Tables: collect(g, name, visited)})
	}

	return components
}

// collect walks the undirected adjacency from start and returns every
// reachable table, marking them visited.
func collect(g *Graph, start string, visited map[string]bool) []string {
	queue := []string{start}
	visited[start] = true
	var tables []string

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		tables = append(tables, name)

		for neighbor := range g.Adjacency[name] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}

	return tables
}
