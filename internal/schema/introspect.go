package schema

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier is the minimal query surface introspection needs. *pgxpool.Pool
// satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Options controls which tables an introspection pass picks up.
type Options struct {
	// Schemas to scan. Empty means ["public"].
	Schemas []string
	// ExcludePrefixes filters out internal bookkeeping tables by name
	// prefix (migration ledgers, catalog tables).
	ExcludePrefixes []string
}

// DefaultExcludePrefixes covers PostgreSQL internals and the migration
// ledgers of common toolchains.
var DefaultExcludePrefixes = []string{"pg_", "sql_", "alembic_", "goose_"}

func (o Options) schemas() []string {
	if len(o.Schemas) == 0 {
		return []string{"public"}
	}
	return o.Schemas
}

func (o Options) excluded(table string) bool {
	prefixes := o.ExcludePrefixes
	if prefixes == nil {
		prefixes = DefaultExcludePrefixes
	}
	for _, p := range prefixes {
		if strings.HasPrefix(table, p) {
			return true
		}
	}
	return false
}

// Introspect queries PostgreSQL catalogs and returns all in-scope tables
// with columns, primary keys, and foreign keys, keyed by unqualified table
// name, plus the table names in catalog order.
//
// A table whose column introspection fails is kept with an empty schema
// entry rather than failing the whole pass. Key metadata failures degrade
// to a catalog without PK/FK information.
func Introspect(ctx context.Context, q Querier, opts Options) (map[string]*Table, []string, error) {
	refs, err := listTables(ctx, q, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("listing tables: %w", err)
	}

	tables := make(map[string]*Table, len(refs))
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if _, dup := tables[ref.name]; dup {
			log.Printf("WARNING: duplicate table name %q across schemas, keeping %s.%s", ref.name, tables[ref.name].Schema, ref.name)
			continue
		}
		tbl := &Table{Schema: ref.schema, Name: ref.name}
		if cols, err := queryColumns(ctx, q, ref.schema, ref.name); err != nil {
			log.Printf("WARNING: introspecting columns of %s.%s: %v", ref.schema, ref.name, err)
		} else {
			tbl.Columns = cols
		}
		tables[ref.name] = tbl
		names = append(names, ref.name)
	}

	if err := markPrimaryKeys(ctx, q, opts.schemas(), tables); err != nil {
		log.Printf("WARNING: introspecting primary keys: %v", err)
	}
	if err := attachForeignKeys(ctx, q, opts.schemas(), tables); err != nil {
		log.Printf("WARNING: introspecting foreign keys: %v", err)
	}

	return tables, names, nil
}

type tableRef struct {
	schema string
	name   string
}

func listTables(ctx context.Context, q Querier, opts Options) ([]tableRef, error) {
	query := `
		SELECT n.nspname, c.relname
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE c.relkind = 'r'
			AND n.nspname = ANY($1)
		ORDER BY n.nspname, c.relname
	`

	rows, err := q.Query(ctx, query, opts.schemas())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []tableRef
	for rows.Next() {
		var ref tableRef
		if err := rows.Scan(&ref.schema, &ref.name); err != nil {
			return nil, err
		}
		if opts.excluded(ref.name) {
			continue
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

func queryColumns(ctx context.Context, q Querier, schemaName, tableName string) ([]Column, error) {
	query := `
		SELECT
			a.attname AS column_name,
			t.typname AS data_type,
			NOT a.attnotnull AS is_nullable,
			a.attnum AS ordinal_position
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		JOIN pg_attribute a ON a.attrelid = c.oid
		JOIN pg_type t ON t.oid = a.atttypid
		WHERE c.relkind = 'r'
			AND a.attnum > 0
			AND NOT a.attisdropped
			AND n.nspname = $1
			AND c.relname = $2
		ORDER BY a.attnum
	`

	rows, err := q.Query(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.DataType, &col.Nullable, &col.OrdPos); err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}

	return columns, rows.Err()
}

func markPrimaryKeys(ctx context.Context, q Querier, schemas []string, tables map[string]*Table) error {
	query := `
		SELECT
			c.relname AS table_name,
			a.attname AS column_name
		FROM pg_constraint con
		JOIN pg_class c ON c.oid = con.conrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		CROSS JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS u(attnum, ord)
		JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = u.attnum
		WHERE con.contype = 'p'
			AND n.nspname = ANY($1)
		ORDER BY c.relname, u.ord
	`

	rows, err := q.Query(ctx, query, schemas)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tableName, colName string
		if err := rows.Scan(&tableName, &colName); err != nil {
			return err
		}
		tbl, ok := tables[tableName]
		if !ok {
			continue
		}
		for i := range tbl.Columns {
			if tbl.Columns[i].Name == colName {
				tbl.Columns[i].IsPrimaryKey = true
			}
		}
	}

	return rows.Err()
}

func attachForeignKeys(ctx context.Context, q Querier, schemas []string, tables map[string]*Table) error {
	query := `
		SELECT
			con.conname AS fk_name,
			cc.relname AS child_table,
			ca.attname AS child_column,
			pc.relname AS parent_table,
			pa.attname AS parent_column,
			u.ord AS key_position
		FROM pg_constraint con
		JOIN pg_class cc ON cc.oid = con.conrelid
		JOIN pg_namespace cn ON cn.oid = cc.relnamespace
		JOIN pg_class pc ON pc.oid = con.confrelid
		CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS u(child_attnum, parent_attnum, ord)
		JOIN pg_attribute ca ON ca.attrelid = cc.oid AND ca.attnum = u.child_attnum
		JOIN pg_attribute pa ON pa.attrelid = pc.oid AND pa.attnum = u.parent_attnum
		WHERE con.contype = 'f'
			AND cn.nspname = ANY($1)
		ORDER BY con.conname, u.ord
	`

	rows, err := q.Query(ctx, query, schemas)
	if err != nil {
		return err
	}
	defer rows.Close()

	type fkEntry struct {
		name       string
		childTable string
		childCol   string
		parentTab  string
		parentCol  string
	}

	fksByName := make(map[string][]fkEntry)
	var fkOrder []string

	for rows.Next() {
		var e fkEntry
		var keyPos int
		if err := rows.Scan(&e.name, &e.childTable, &e.childCol, &e.parentTab, &e.parentCol, &keyPos); err != nil {
			return err
		}
		if _, exists := fksByName[e.name]; !exists {
			fkOrder = append(fkOrder, e.name)
		}
		fksByName[e.name] = append(fksByName[e.name], e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range fkOrder {
		entries := fksByName[name]
		first := entries[0]
		fk := ForeignKey{
			Name:            name,
			ReferencedTable: first.parentTab,
		}
		for _, e := range entries {
			fk.LocalColumns = append(fk.LocalColumns, e.childCol)
			fk.ForeignColumns = append(fk.ForeignColumns, e.parentCol)
		}
		if tbl, ok := tables[first.childTable]; ok {
			tbl.ForeignKeys = append(tbl.ForeignKeys, fk)
		}
	}

	return nil
}
