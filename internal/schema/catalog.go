package schema

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Catalog is an immutable snapshot of the introspected schema. Build it
// once, share it freely; a refresh produces a new Catalog rather than
// mutating this one, so concurrent readers never see partial state.
type Catalog struct {
	tables       map[string]*Table
	names        []string // catalog order
	displayNames map[string]string
}

// BuildCatalog introspects the data store and returns a snapshot.
func BuildCatalog(ctx context.Context, q Querier, opts Options) (*Catalog, error) {
	tables, names, err := Introspect(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	return NewCatalog(tables, names), nil
}

// NewCatalog builds a snapshot from already-introspected tables. Callers
// must not retain or mutate the passed map afterwards. A nil name order
// falls back to sorted table names.
func NewCatalog(tables map[string]*Table, names []string) *Catalog {
	if names == nil {
		for name := range tables {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	display := make(map[string]string, len(names))
	for _, name := range names {
		display[name] = DisplayName(name)
	}
	return &Catalog{tables: tables, names: names, displayNames: display}
}

// DisplayName turns a snake_case identifier into a human-readable label,
// e.g. "work_orders" -> "Work Orders".
func DisplayName(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// TableNames returns table names in catalog order.
func (c *Catalog) TableNames() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// DisplayNames returns the table -> display name mapping.
func (c *Catalog) DisplayNames() map[string]string {
	out := make(map[string]string, len(c.displayNames))
	for k, v := range c.displayNames {
		out[k] = v
	}
	return out
}

// Table returns the schema for a table, or nil if unknown.
func (c *Catalog) Table(name string) *Table {
	return c.tables[name]
}

// Has reports whether the catalog knows the table.
func (c *Catalog) Has(name string) bool {
	_, ok := c.tables[name]
	return ok
}

// Columns returns the base column names of a table in catalog order, or
// nil if the table is unknown.
func (c *Catalog) Columns(name string) []string {
	tbl, ok := c.tables[name]
	if !ok {
		return nil
	}
	return tbl.ColumnNames()
}

// Len returns the number of tables in the snapshot.
func (c *Catalog) Len() int {
	return len(c.tables)
}
