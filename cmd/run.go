package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmaeshima/db-adhoc-report/internal/export"
	"github.com/kmaeshima/db-adhoc-report/internal/history"
	"github.com/kmaeshima/db-adhoc-report/internal/report"
)

var (
	runReportPath string
	runFormat     string
	runOutput     string
	runDryRun     bool
	runVerbose    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a report definition",
	Long: `Loads a YAML report definition, validates it, builds the SQL, and runs it.
With --dry-run the generated SQL is printed without touching the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if runReportPath == "" {
			return fmt.Errorf("--report is required")
		}
		switch runFormat {
		case "table", "csv", "xlsx":
		default:
			return fmt.Errorf("unsupported format %q (supported: table, csv, xlsx)", runFormat)
		}

		reportCfg, err := report.LoadConfig(runReportPath)
		if err != nil {
			return err
		}

		engine, pool, err := newEngine(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if runDryRun {
			if msgs := engine.ValidateConfig(reportCfg); len(msgs) > 0 {
				for _, msg := range msgs {
					fmt.Fprintf(os.Stderr, "invalid report configuration: %s\n", msg)
				}
				return fmt.Errorf("report configuration is invalid")
			}
			sql, err := engine.BuildQuery(reportCfg)
			if err != nil {
				return err
			}
			if ok, reason := engine.ValidateSafety(sql); !ok {
				return fmt.Errorf("%w: %s", report.ErrUnsafeQuery, reason)
			}
			fmt.Println(sql)
			return nil
		}

		result, err := engine.Run(ctx, reportCfg)
		if err != nil {
			return err
		}

		if runVerbose {
			fmt.Fprintf(os.Stderr, "SQL: %s\n", result.SQL)
		}

		recordRun(reportCfg, result)

		if !result.Success {
			return fmt.Errorf("executing report: %s", result.Err)
		}

		switch runFormat {
		case "table":
			export.RenderTable(os.Stdout, result)
			fmt.Fprintf(os.Stderr, "%d rows in %s\n", result.RowCount, result.Duration)
		case "csv":
			payload, err := export.CSV(result)
			if err != nil {
				return err
			}
			return writeOutput(payload)
		case "xlsx":
			payload, err := export.Spreadsheet(result)
			if err != nil {
				return err
			}
			return writeOutput(payload)
		}
		return nil
	},
}

// recordRun appends the run to the local history log when enabled.
// History failures never fail the report itself.
func recordRun(reportCfg report.Config, result report.QueryResult) {
	if !cfg.History.Enabled {
		return
	}
	store, err := history.NewStore(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: opening history store: %v\n", err)
		return
	}
	defer func() { _ = store.Close() }()

	entry := history.Entry{
		ReportFile:   runReportPath,
		PrimaryTable: reportCfg.PrimaryTable,
		Query:        result.SQL,
		Duration:     result.Duration,
		RowCount:     result.RowCount,
		Success:      result.Success,
		ErrorMessage: result.Err,
	}
	if err := store.Add(entry); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: recording run history: %v\n", err)
	}
}

func writeOutput(payload []byte) error {
	if runOutput == "" || runOutput == "-" {
		_, err := os.Stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(runOutput, payload, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", runOutput)
	return nil
}

func init() {
	runCmd.Flags().StringVar(&runReportPath, "report", "", "path to YAML report definition (required)")
	runCmd.Flags().StringVar(&runFormat, "format", "table", "output format: table, csv, or xlsx")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "output file (default stdout)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "print the generated SQL without executing it")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "print the executed SQL to stderr")
	rootCmd.AddCommand(runCmd)
}
