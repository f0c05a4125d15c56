package cmd

import (
	"context"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List reportable tables",
	Long:  `Lists the tables the schema catalog exposes for reporting, with their display names and column counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		engine, pool, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		cat := engine.Catalog()
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Table", "Display Name", "Columns", "Foreign Keys"})
		for _, name := range cat.TableNames() {
			tbl := cat.Table(name)
			t.AppendRow(table.Row{name, cat.DisplayNames()[name], len(tbl.Columns), len(tbl.ForeignKeys)})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
