// Package export serializes materialized query results. All exporters
// share the same row/column semantics: a zero-row result produces a
// header and nothing else.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kmaeshima/db-adhoc-report/internal/report"
)

// CSV renders a result as a header row of result.Columns followed by one
// row per record.
func CSV(result report.QueryResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(result.Columns); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range result.Records {
		row := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			row[i] = formatValue(rec[col])
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// formatValue stringifies a cell; NULLs become empty strings.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
