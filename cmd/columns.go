package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var columnsEnhanced bool

var columnsCmd = &cobra.Command{
	Use:   "columns <table>",
	Short: "Show the columns of a table",
	Long:  `Shows a table's base columns, or with --enhanced also the foreign-key-derived columns that can be selected directly in a report.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		engine, pool, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		tableName := args[0]
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)

		if columnsEnhanced {
			cols, err := engine.EnhancedColumns(tableName)
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"Name", "Display Name", "Source"})
			for _, c := range cols {
				source := tableName
				if c.Join.Table != "" {
					source = fmt.Sprintf("%s via %s = %s.%s", c.Join.Table, c.Join.LocalKey, c.Join.Table, c.Join.ForeignKey)
				}
				t.AppendRow(table.Row{c.Name, c.DisplayName, source})
			}
			t.Render()
			return nil
		}

		tbl := engine.Catalog().Table(tableName)
		if tbl == nil {
			_, err := engine.Columns(tableName) // yields the error with valid alternatives
			return err
		}
		t.AppendHeader(table.Row{"Column", "Type", "Nullable", "PK"})
		for _, c := range tbl.Columns {
			t.AppendRow(table.Row{c.Name, c.DataType, c.Nullable, c.IsPrimaryKey})
		}
		t.Render()
		return nil
	},
}

func init() {
	columnsCmd.Flags().BoolVar(&columnsEnhanced, "enhanced", false, "include foreign-key-derived columns")
	rootCmd.AddCommand(columnsCmd)
}
