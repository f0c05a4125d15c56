package report

import (
	"context"
	"time"
)

// Querier executes read-only SQL and returns ordered column names with
// row values. The pgx pool wrapper in internal/db implements it.
type Querier interface {
	QueryRows(ctx context.Context, sql string) (columns []string, rows [][]any, err error)
}

// Execute runs a statement and materializes every row into a
// column-name-keyed record. Data-store errors are captured into a failed
// QueryResult and never returned; callers branch on Success.
func Execute(ctx context.Context, q Querier, sql string) QueryResult {
	start := time.Now()

	columns, rows, err := q.QueryRows(ctx, sql)
	if err != nil {
		return QueryResult{
			SQL:      sql,
			Err:      err.Error(),
			Duration: time.Since(start),
		}
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(columns))
		for i, col := range columns {
			if i < len(row) {
				rec[col] = normalizeValue(row[i])
			}
		}
		records = append(records, rec)
	}

	return QueryResult{
		Success:  true,
		Records:  records,
		Columns:  columns,
		RowCount: len(records),
		Duration: time.Since(start),
		SQL:      sql,
	}
}

// normalizeValue makes values export-friendly; timestamps become the
// same fixed layout everywhere.
func normalizeValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	return v
}
