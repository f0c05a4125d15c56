package report

import (
	"strings"

	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

// Resolve maps requested report columns to qualified select expressions
// and the deduplicated set of joins they require.
//
// An exact enhanced-column name match keeps the qualified reference and
// records its join. Anything else is treated as a base column of the
// primary table: a "table." prefix is stripped, the bare name must exist
// on the primary table, and the expression is re-qualified with it.
func Resolve(cat *schema.Catalog, lookups Lookups, primaryTable string, columns []string) ([]string, []JoinSpec, error) {
	tbl := cat.Table(primaryTable)
	if tbl == nil {
		return nil, nil, &UnknownTableError{Table: primaryTable, Known: cat.TableNames()}
	}

	enhanced, err := enhancedIndex(cat, lookups, primaryTable)
	if err != nil {
		return nil, nil, err
	}

	var exprs []string
	var joins []JoinSpec
	seenJoins := make(map[JoinSpec]bool)

	for _, col := range columns {
		if ec, ok := enhanced[col]; ok {
			exprs = append(exprs, ec.Name)
			if !seenJoins[ec.Join] {
				seenJoins[ec.Join] = true
				joins = append(joins, ec.Join)
			}
			continue
		}

		base := col
		if i := strings.LastIndex(col, "."); i >= 0 {
			base = col[i+1:]
		}
		if !tbl.HasColumn(base) {
			return nil, nil, &ColumnNotFoundError{
				Table:  primaryTable,
				Column: col,
				Valid:  tbl.ColumnNames(),
			}
		}
		exprs = append(exprs, primaryTable+"."+base)
	}

	return exprs, joins, nil
}
