package export

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kmaeshima/db-adhoc-report/internal/report"
)

// RenderTable writes a result as an aligned terminal table.
func RenderTable(w io.Writer, result report.QueryResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, rec := range result.Records {
		row := make(table.Row, len(result.Columns))
		for i, col := range result.Columns {
			row[i] = formatValue(rec[col])
		}
		t.AppendRow(row)
	}

	t.Render()
}
