package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmaeshima/db-adhoc-report/internal/graph"
)

var graphFormat string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Visualize the foreign key graph",
	Long:  `Builds the foreign key graph over the reportable tables and writes it as a Mermaid diagram or a text summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		engine, pool, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		g := graph.Build(engine.Catalog())

		switch graphFormat {
		case "mermaid":
			return graph.WriteMermaid(os.Stdout, g)
		case "text":
			return graph.WriteText(os.Stdout, g)
		default:
			return fmt.Errorf("unsupported format %q (supported: mermaid, text)", graphFormat)
		}
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "mermaid", "output format: mermaid or text")
	rootCmd.AddCommand(graphCmd)
}
