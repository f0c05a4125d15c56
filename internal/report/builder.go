package report

import (
	"fmt"
	"strings"

	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

// Build assembles a SELECT statement from a report configuration. Clause
// order is fixed: SELECT, FROM, JOIN(s), WHERE, GROUP BY, ORDER BY,
// LIMIT; absent clauses are omitted entirely.
func Build(cat *schema.Catalog, lookups Lookups, cfg Config) (string, error) {
	if cfg.PrimaryTable == "" {
		return "", fmt.Errorf("building query: no primary table specified")
	}
	if len(cfg.Columns) == 0 {
		return "", fmt.Errorf("building query: no columns specified")
	}

	exprs, joins, err := Resolve(cat, lookups, cfg.PrimaryTable, cfg.Columns)
	if err != nil {
		return "", fmt.Errorf("building query: %w", err)
	}

	parts := []string{
		"SELECT " + strings.Join(exprs, ", "),
		"FROM " + cfg.PrimaryTable,
	}

	for _, j := range joins {
		parts = append(parts, fmt.Sprintf("LEFT JOIN %s ON %s.%s = %s.%s",
			j.Table, cfg.PrimaryTable, j.LocalKey, j.Table, j.ForeignKey))
	}
	for _, j := range cfg.Joins {
		joinType := strings.ToUpper(strings.TrimSpace(j.Type))
		if joinType == "" {
			joinType = "LEFT"
		}
		parts = append(parts, fmt.Sprintf("%s JOIN %s ON %s", joinType, j.Table, j.Condition))
	}

	if len(cfg.Filters) > 0 {
		where, err := buildWhere(cfg.Filters)
		if err != nil {
			return "", fmt.Errorf("building query: %w", err)
		}
		parts = append(parts, "WHERE "+where)
	}

	if len(cfg.GroupBy) > 0 {
		parts = append(parts, "GROUP BY "+strings.Join(cfg.GroupBy, ", "))
	}

	if orderBy := buildOrderBy(cfg); orderBy != "" {
		parts = append(parts, "ORDER BY "+orderBy)
	}

	if cfg.Limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d", cfg.Limit))
	}

	return strings.Join(parts, " "), nil
}

func buildWhere(filters []FilterClause) (string, error) {
	clauses := make([]string, 0, len(filters))
	for _, f := range filters {
		clause, err := buildFilterClause(f)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}
	return strings.Join(clauses, " AND "), nil
}

// buildFilterClause compiles a single filter condition. Values are inlined
// as quoted literals with single quotes doubled; the safety gate and a
// read-only role are the backstop for this inherited inlining behavior.
func buildFilterClause(f FilterClause) (string, error) {
	switch f.Operator {
	case OpEq:
		return fmt.Sprintf("%s = %s", f.Column, quoteLiteral(f.Value)), nil
	case OpNe:
		return fmt.Sprintf("%s != %s", f.Column, quoteLiteral(f.Value)), nil
	case OpGt:
		return fmt.Sprintf("%s > %s", f.Column, quoteLiteral(f.Value)), nil
	case OpGe:
		return fmt.Sprintf("%s >= %s", f.Column, quoteLiteral(f.Value)), nil
	case OpLt:
		return fmt.Sprintf("%s < %s", f.Column, quoteLiteral(f.Value)), nil
	case OpLe:
		return fmt.Sprintf("%s <= %s", f.Column, quoteLiteral(f.Value)), nil
	case OpLike:
		return fmt.Sprintf("%s LIKE %s", f.Column, quotePattern("%", f.Value, "%")), nil
	case OpILike:
		return fmt.Sprintf("%s ILIKE %s", f.Column, quotePattern("%", f.Value, "%")), nil
	case OpStartsWith:
		return fmt.Sprintf("%s LIKE %s", f.Column, quotePattern("", f.Value, "%")), nil
	case OpEndsWith:
		return fmt.Sprintf("%s LIKE %s", f.Column, quotePattern("%", f.Value, "")), nil
	case OpIn, OpNotIn:
		items := strings.Split(f.Value, ",")
		quoted := make([]string, 0, len(items))
		for _, item := range items {
			quoted = append(quoted, quoteLiteral(strings.TrimSpace(item)))
		}
		keyword := "IN"
		if f.Operator == OpNotIn {
			keyword = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", f.Column, keyword, strings.Join(quoted, ", ")), nil
	case OpBetween:
		return fmt.Sprintf("%s BETWEEN %s AND %s",
			f.Column, quoteLiteral(f.Value), quoteLiteral(f.Value2)), nil
	case OpIsNull:
		return fmt.Sprintf("%s IS NULL", f.Column), nil
	case OpIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", f.Column), nil
	default:
		return "", fmt.Errorf("unsupported filter operator %q", f.Operator)
	}
}

func buildOrderBy(cfg Config) string {
	if cfg.Sorting != nil && cfg.Sorting.Column != "" {
		col := cfg.Sorting.Column
		if !strings.Contains(col, ".") {
			col = cfg.PrimaryTable + "." + col
		}
		dir := strings.ToUpper(strings.TrimSpace(cfg.Sorting.Order))
		if dir != "DESC" {
			dir = "ASC"
		}
		return col + " " + dir
	}
	if cfg.OrderBy != "" {
		if dir := strings.ToUpper(strings.TrimSpace(cfg.OrderDir)); dir == "ASC" || dir == "DESC" {
			return cfg.OrderBy + " " + dir
		}
		return cfg.OrderBy
	}
	return ""
}

func quoteLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func quotePattern(prefix, v, suffix string) string {
	return "'" + prefix + strings.ReplaceAll(v, "'", "''") + suffix + "'"
}
