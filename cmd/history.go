package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kmaeshima/db-adhoc-report/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent report runs",
	Long:  `Shows the most recent report runs from the local run log, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.History.Enabled {
			return fmt.Errorf("run history is disabled in the config")
		}

		store, err := history.NewStore(cfg.History.Path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		entries, err := store.Recent(historyLimit)
		if err != nil {
			return fmt.Errorf("reading run history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("no report runs recorded yet")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"ID", "Executed At", "Report", "Table", "Rows", "Duration", "Status"})
		for _, e := range entries {
			status := "ok"
			if !e.Success {
				status = "failed: " + e.ErrorMessage
			}
			t.AppendRow(table.Row{
				e.ID,
				e.ExecutedAt.Format("2006-01-02 15:04:05"),
				e.ReportFile,
				e.PrimaryTable,
				e.RowCount,
				e.Duration,
				status,
			})
		}
		t.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
