package schema

// Column represents a database column.
type Column struct {
	Name         string
	DataType     string // PostgreSQL type name (e.g. "int4", "text", "bool")
	Nullable     bool
	IsPrimaryKey bool
	OrdPos       int // ordinal position (1-based)
}

// ForeignKey represents a foreign key constraint on a table.
// Composite keys carry parallel LocalColumns/ForeignColumns slices.
type ForeignKey struct {
	Name            string
	LocalColumns    []string
	ReferencedTable string
	ForeignColumns  []string
}

// IsComposite reports whether the key spans more than one column.
func (fk ForeignKey) IsComposite() bool {
	return len(fk.LocalColumns) > 1
}

// Table represents a database table with its columns and foreign keys.
type Table struct {
	Schema      string
	Name        string
	Columns     []Column
	ForeignKeys []ForeignKey
}

// ColumnNames returns all column names in ordinal order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// PKColumnNames returns the primary key column names, or nil if no PK.
func (t *Table) PKColumnNames() []string {
	var names []string
	for _, c := range t.Columns {
		if c.IsPrimaryKey {
			names = append(names, c.Name)
		}
	}
	return names
}
