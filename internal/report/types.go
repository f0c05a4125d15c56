package report

import "time"

// Operator is a filter comparison operator as it appears in a report
// definition.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGe         Operator = "ge"
	OpLt         Operator = "lt"
	OpLe         Operator = "le"
	OpLike       Operator = "like"
	OpILike      Operator = "ilike"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
	OpBetween    Operator = "between"
	OpIsNull     Operator = "is_null"
	OpIsNotNull  Operator = "is_not_null"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
)

// NeedsValue reports whether the operator requires a value.
func (o Operator) NeedsValue() bool {
	return o != OpIsNull && o != OpIsNotNull
}

// FilterClause is a single WHERE condition in a report definition.
// Value2 is only meaningful for the between operator.
type FilterClause struct {
	Column   string   `yaml:"column" json:"column"`
	Operator Operator `yaml:"operator" json:"operator"`
	Value    string   `yaml:"value" json:"value,omitempty"`
	Value2   string   `yaml:"value2" json:"value2,omitempty"`
}

// ExplicitJoin is a caller-supplied join appended verbatim after the
// resolver-derived joins.
type ExplicitJoin struct {
	Type      string `yaml:"type" json:"type"`
	Table     string `yaml:"table" json:"table"`
	Condition string `yaml:"condition" json:"condition"`
}

// Sorting is the shorthand sort form; an unqualified column is qualified
// with the primary table at build time.
type Sorting struct {
	Column string `yaml:"column" json:"column"`
	Order  string `yaml:"order" json:"order"`
}

// Config is a declarative report description. Columns may be plain names,
// "table.column" qualified names, or registered enhanced-column names.
type Config struct {
	PrimaryTable string         `yaml:"primary_table" json:"primary_table"`
	Columns      []string       `yaml:"columns" json:"columns"`
	Filters      []FilterClause `yaml:"filters" json:"filters,omitempty"`
	Joins        []ExplicitJoin `yaml:"joins" json:"joins,omitempty"`
	GroupBy      []string       `yaml:"group_by" json:"group_by,omitempty"`
	OrderBy      string         `yaml:"order_by" json:"order_by,omitempty"`
	OrderDir     string         `yaml:"order_dir" json:"order_dir,omitempty"`
	Sorting      *Sorting       `yaml:"sorting" json:"sorting,omitempty"`
	Limit        int            `yaml:"limit" json:"limit,omitempty"`
}

// JoinSpec identifies a foreign-key join required by an enhanced column.
// Two enhanced columns sharing the same triple share one join.
type JoinSpec struct {
	Table      string `json:"table"`
	LocalKey   string `json:"local_key"`
	ForeignKey string `json:"foreign_key"`
}

// EnhancedColumn is a directly selectable column sourced from a lookup
// table via a foreign key.
type EnhancedColumn struct {
	Name        string   `json:"name"` // "referenced_table.column"
	Column      string   `json:"column"`
	DisplayName string   `json:"display_name"`
	Join        JoinSpec `json:"join"`
}

// Record is one result row keyed by column name.
type Record map[string]any

// QueryResult is a fully materialized execution result. Err is a message,
// not an error value: execution failures are data, callers branch on
// Success instead of catching anything.
type QueryResult struct {
	Success  bool          `json:"success"`
	Records  []Record      `json:"records"`
	Columns  []string      `json:"columns"`
	RowCount int           `json:"row_count"`
	Duration time.Duration `json:"duration"`
	SQL      string        `json:"sql"`
	Err      string        `json:"error,omitempty"`
}

// JoinSuggestion is an advisory join candidate between two tables. It is
// never applied automatically; a caller copies it into Config.Joins.
type JoinSuggestion struct {
	Condition   string `json:"condition"`
	Type        string `json:"type"`
	Description string `json:"description"`
}
