package report

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/kmaeshima/db-adhoc-report/internal/schema"
)

// Options tunes an Engine.
type Options struct {
	// Lookups overrides the default enhanced-column lookup tables.
	Lookups Lookups
	// QueryTimeout bounds each execution. Zero means no engine-side
	// deadline.
	QueryTimeout time.Duration
	// MaxConcurrent bounds in-flight executions. Values below one fall
	// back to DefaultMaxConcurrent.
	MaxConcurrent int64
	// Introspect controls catalog refreshes.
	Introspect schema.Options
}

// DefaultMaxConcurrent is the in-flight execution bound used when none is
// configured.
const DefaultMaxConcurrent = 4

// Engine ties the immutable schema catalog to the stateless query
// pipeline. All methods are safe for concurrent use; Refresh swaps the
// whole catalog snapshot instead of mutating it.
type Engine struct {
	catalog atomic.Pointer[schema.Catalog]
	querier Querier
	meta    schema.Querier
	lookups Lookups
	opts    Options
	sem     *semaphore.Weighted
}

// NewEngine creates an engine over a built catalog. querier runs report
// SQL; meta serves catalog refreshes and may be nil if Refresh is never
// called.
func NewEngine(cat *schema.Catalog, querier Querier, meta schema.Querier, opts Options) *Engine {
	lookups := opts.Lookups
	if lookups == nil {
		lookups = DefaultLookups()
	}
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = DefaultMaxConcurrent
	}
	e := &Engine{
		querier: querier,
		meta:    meta,
		lookups: lookups,
		opts:    opts,
		sem:     semaphore.NewWeighted(maxConcurrent),
	}
	e.catalog.Store(cat)
	return e
}

// Catalog returns the current snapshot.
func (e *Engine) Catalog() *schema.Catalog {
	return e.catalog.Load()
}

// Refresh introspects the data store again and atomically swaps in the
// new snapshot. Concurrent readers keep the old one until they re-read.
func (e *Engine) Refresh(ctx context.Context) error {
	if e.meta == nil {
		return fmt.Errorf("refreshing catalog: no introspection querier configured")
	}
	cat, err := schema.BuildCatalog(ctx, e.meta, e.opts.Introspect)
	if err != nil {
		return fmt.Errorf("refreshing catalog: %w", err)
	}
	e.catalog.Store(cat)
	return nil
}

// ListTables returns the table -> display name mapping.
func (e *Engine) ListTables() map[string]string {
	return e.Catalog().DisplayNames()
}

// Columns returns a table's base column names in catalog order.
func (e *Engine) Columns(table string) ([]string, error) {
	cat := e.Catalog()
	if !cat.Has(table) {
		return nil, &UnknownTableError{Table: table, Known: cat.TableNames()}
	}
	return cat.Columns(table), nil
}

// EnhancedColumns returns base plus foreign-key-derived columns.
func (e *Engine) EnhancedColumns(table string) ([]EnhancedColumn, error) {
	return EnhancedColumns(e.Catalog(), e.lookups, table)
}

// BuildQuery assembles SQL for a report configuration.
func (e *Engine) BuildQuery(cfg Config) (string, error) {
	return Build(e.Catalog(), e.lookups, cfg)
}

// ValidateConfig checks configuration shape.
func (e *Engine) ValidateConfig(cfg Config) []string {
	return ValidateConfig(cfg)
}

// ValidateSafety checks the built SQL text.
func (e *Engine) ValidateSafety(sql string) (bool, string) {
	return ValidateSafety(sql)
}

// SuggestJoins returns advisory join candidates between two tables.
func (e *Engine) SuggestJoins(tableA, tableB string) ([]JoinSuggestion, error) {
	return SuggestJoins(e.Catalog(), tableA, tableB)
}

// Execute runs SQL under the engine's concurrency bound and timeout.
// Failures, including an exceeded deadline, come back as a failed
// QueryResult.
func (e *Engine) Execute(ctx context.Context, sql string) QueryResult {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return QueryResult{SQL: sql, Err: err.Error()}
	}
	defer e.sem.Release(1)

	if e.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.QueryTimeout)
		defer cancel()
	}
	return Execute(ctx, e.querier, sql)
}

// Run is the full pipeline: validate the configuration, build the SQL,
// gate it through the safety check, and execute. A safety rejection is a
// hard stop and never reaches the data store.
func (e *Engine) Run(ctx context.Context, cfg Config) (QueryResult, error) {
	if msgs := ValidateConfig(cfg); len(msgs) > 0 {
		return QueryResult{}, fmt.Errorf("invalid report configuration: %s", strings.Join(msgs, "; "))
	}

	sql, err := e.BuildQuery(cfg)
	if err != nil {
		return QueryResult{}, err
	}

	if ok, reason := ValidateSafety(sql); !ok {
		return QueryResult{}, fmt.Errorf("%w: %s", ErrUnsafeQuery, reason)
	}

	return e.Execute(ctx, sql), nil
}
