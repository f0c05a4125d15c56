package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kmaeshima/db-adhoc-report/internal/config"
	"github.com/kmaeshima/db-adhoc-report/internal/db"
	"github.com/kmaeshima/db-adhoc-report/internal/report"
	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "db-adhoc-report",
	Short: "Run declarative ad hoc reports against a PostgreSQL database",
	Long: `db-adhoc-report connects to a PostgreSQL database, introspects its schema,
and turns declarative report definitions into validated read-only SQL.
Results can be rendered in the terminal or exported as CSV or xlsx.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			return fmt.Errorf("--config is required")
		}
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (required)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// introspectOptions maps config to the catalog scan options.
func introspectOptions() schema.Options {
	return schema.Options{
		Schemas:         cfg.Report.Schemas,
		ExcludePrefixes: cfg.Report.ExcludeTablePrefixes,
	}
}

// newEngine connects to the database, builds the catalog snapshot, and
// returns the engine. The caller owns the pool.
func newEngine(ctx context.Context) (*report.Engine, *db.Pool, error) {
	pool, err := db.NewPool(ctx, &cfg.Connection)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	opts := introspectOptions()
	cat, err := schema.BuildCatalog(ctx, pool, opts)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("introspecting schema: %w", err)
	}

	lookups := report.DefaultLookups().Merge(cfg.Report.LookupTables)
	engine := report.NewEngine(cat, pool, pool, report.Options{
		Lookups:       lookups,
		QueryTimeout:  cfg.Report.QueryTimeout(),
		MaxConcurrent: int64(cfg.Report.MaxConcurrentQueries),
		Introspect:    opts,
	})
	return engine, pool, nil
}
