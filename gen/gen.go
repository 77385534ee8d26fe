package gen

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Table is one introspected table with its column names in ordinal order.
type Table struct {
	Name    string
	Columns []string
}

// ListTables introspects the schema the config points at and returns its
// tables sorted by name.
func ListTables(ctx context.Context, db *sql.DB, cfg *Config) ([]*Table, error) {
	var (
		tables []*Table
		err    error
	)
	switch cfg.Driver {
	case "sqlite":
		tables, err = sqliteTables(ctx, db)
	case "postgres":
		schema := cfg.Schema
		if schema == "" {
			schema = "public"
		}
		tables, err = infoSchemaTables(ctx, db, postgresTablesQuery, postgresColumnsQuery, schema)
	case "mysql":
		schema := cfg.Schema
		if schema == "" {
			if err := db.QueryRowContext(ctx, "select database()").Scan(&schema); err != nil {
				return nil, fmt.Errorf("gen: resolve schema: %w", err)
			}
		}
		tables, err = infoSchemaTables(ctx, db, mysqlTablesQuery, mysqlColumnsQuery, schema)
	default:
		return nil, fmt.Errorf("gen: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables, nil
}

const (
	postgresTablesQuery = `select table_name from information_schema.tables
where table_schema = $1 and table_type = 'BASE TABLE'`
	postgresColumnsQuery = `select column_name from information_schema.columns
where table_schema = $1 and table_name = $2 order by ordinal_position`
	mysqlTablesQuery = `select table_name from information_schema.tables
where table_schema = ? and table_type = 'BASE TABLE'`
	mysqlColumnsQuery = `select column_name from information_schema.columns
where table_schema = ? and table_name = ? order by ordinal_position`
)

// infoSchemaTables lists tables through information_schema, then fans out
// one column query per table.
func infoSchemaTables(ctx context.Context, db *sql.DB, tablesQuery, columnsQuery, schema string) ([]*Table, error) {
	names, err := queryStrings(ctx, db, tablesQuery, schema)
	if err != nil {
		return nil, fmt.Errorf("gen: list tables: %w", err)
	}
	tables := make([]*Table, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			cols, err := queryStrings(ctx, db, columnsQuery, schema, name)
			if err != nil {
				return fmt.Errorf("gen: list columns of %s: %w", name, err)
			}
			tables[i] = &Table{Name: name, Columns: cols}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func sqliteTables(ctx context.Context, db *sql.DB) ([]*Table, error) {
	names, err := queryStrings(ctx, db,
		`select name from sqlite_master where type = 'table' and name not like 'sqlite_%'`)
	if err != nil {
		return nil, fmt.Errorf("gen: list tables: %w", err)
	}
	var tables []*Table
	for _, name := range names {
		cols, err := queryStrings(ctx, db, fmt.Sprintf("pragma table_info(%q)", name))
		if err != nil {
			return nil, fmt.Errorf("gen: list columns of %s: %w", name, err)
		}
		tables = append(tables, &Table{Name: name, Columns: cols})
	}
	return tables, nil
}

// queryStrings runs a query and collects its first column. For PRAGMA
// table_info the name is the second column; rows with more than one
// column scan positionally into discard slots.
func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	nameIdx := 0
	for i, c := range cols {
		if c == "name" {
			nameIdx = i
		}
	}
	var res []string
	for rows.Next() {
		dest := make([]any, len(cols))
		var name string
		for i := range dest {
			if i == nameIdx {
				dest[i] = &name
			} else {
				dest[i] = new(sql.RawBytes)
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		res = append(res, name)
	}
	return res, rows.Err()
}

// Generate renders the constants file for the given tables, formatted and
// with imports fixed.
func Generate(cfg *Config, tables []*Table) ([]byte, error) {
	f := jen.NewFile(cfg.Package)
	f.HeaderComment("Code generated by sqlgen. DO NOT EDIT.")

	f.Comment("Table names.")
	f.Const().DefsFunc(func(g *jen.Group) {
		for _, t := range tables {
			g.Id("Table" + identifier(t.Name)).Op("=").Lit(t.Name)
		}
	})

	for _, t := range tables {
		f.Comment(fmt.Sprintf("Columns of table %s.", t.Name))
		f.Const().DefsFunc(func(g *jen.Group) {
			for _, c := range t.Columns {
				g.Id(identifier(t.Name) + identifier(c)).Op("=").Lit(c)
			}
		})
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("gen: render: %w", err)
	}
	src, err := imports.Process(cfg.Out, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("gen: format: %w", err)
	}
	return src, nil
}

// identifier converts a database identifier to an exported Go name.
func identifier(name string) string {
	return inflect.Camelize(name)
}

// Run opens the database, introspects it and writes the constants file.
func Run(ctx context.Context, cfg *Config) error {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("gen: open database: %w", err)
	}
	defer db.Close()

	tables, err := ListTables(ctx, db, cfg)
	if err != nil {
		return err
	}
	src, err := Generate(cfg, tables)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(cfg.Out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("gen: create output directory: %w", err)
		}
	}
	if err := os.WriteFile(cfg.Out, src, 0o644); err != nil {
		return fmt.Errorf("gen: write output: %w", err)
	}
	return nil
}
