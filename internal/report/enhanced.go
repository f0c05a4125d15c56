package report

import (
	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

// Lookups maps a referenced table to the columns it projects as enhanced
// columns. New lookup tables are added by data (config), not code.
type Lookups map[string][]string

// DefaultLookups covers the commonly-joined reference tables: status-,
// priority-, and user-like.
func DefaultLookups() Lookups {
	return Lookups{
		"statuses":   {"name"},
		"priorities": {"name", "level"},
		"users":      {"username", "email"},
	}
}

// Merge returns a copy of l with overrides applied on top.
func (l Lookups) Merge(overrides map[string][]string) Lookups {
	out := make(Lookups, len(l)+len(overrides))
	for t, cols := range l {
		out[t] = cols
	}
	for t, cols := range overrides {
		out[t] = cols
	}
	return out
}

// EnhancedColumns returns the table's base columns plus the foreign-key
// derived virtual columns its lookup-table references provide. Each
// virtual column is named "referenced_table.column" and carries the join
// needed to select it. Composite foreign keys never produce enhanced
// columns.
func EnhancedColumns(cat *schema.Catalog, lookups Lookups, table string) ([]EnhancedColumn, error) {
	tbl := cat.Table(table)
	if tbl == nil {
		return nil, &UnknownTableError{Table: table, Known: cat.TableNames()}
	}

	var out []EnhancedColumn
	for _, col := range tbl.Columns {
		out = append(out, EnhancedColumn{
			Name:        col.Name,
			Column:      col.Name,
			DisplayName: schema.DisplayName(col.Name),
		})
	}

	seen := make(map[string]bool)
	for _, fk := range tbl.ForeignKeys {
		if fk.IsComposite() {
			continue
		}
		projected, ok := lookups[fk.ReferencedTable]
		if !ok {
			continue
		}
		ref := cat.Table(fk.ReferencedTable)
		for _, colName := range projected {
			if ref != nil && !ref.HasColumn(colName) {
				continue
			}
			name := fk.ReferencedTable + "." + colName
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, EnhancedColumn{
				Name:        name,
				Column:      colName,
				DisplayName: schema.DisplayName(fk.ReferencedTable + "_" + colName),
				Join: JoinSpec{
					Table:      fk.ReferencedTable,
					LocalKey:   fk.LocalColumns[0],
					ForeignKey: fk.ForeignColumns[0],
				},
			})
		}
	}

	return out, nil
}

// enhancedIndex returns the registered enhanced columns keyed by name,
// virtual entries only.
func enhancedIndex(cat *schema.Catalog, lookups Lookups, table string) (map[string]EnhancedColumn, error) {
	all, err := EnhancedColumns(cat, lookups, table)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]EnhancedColumn)
	for _, ec := range all {
		if ec.Join.Table != "" {
			idx[ec.Name] = ec
		}
	}
	return idx, nil
}
