package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var joinsCmd = &cobra.Command{
	Use:   "joins <table-a> <table-b>",
	Short: "Suggest join conditions between two tables",
	Long:  `Suggests join conditions between two tables based on the foreign keys declared in either direction.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		engine, pool, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		suggestions, err := engine.SuggestJoins(args[0], args[1])
		if err != nil {
			return err
		}
		if len(suggestions) == 0 {
			fmt.Printf("no foreign keys relate %s and %s\n", args[0], args[1])
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Type", "Condition", "Description"})
		for _, s := range suggestions {
			t.AppendRow(table.Row{s.Type, s.Condition, s.Description})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(joinsCmd)
}
