package sqlgen

import (
	"context"
	"database/sql"
	"strings"
)

// InsertBuilder accumulates an INSERT statement. The body is either a
// VALUES list built through Set, or a subquery with an explicit column
// list; the two are mutually exclusive. With no body at all the statement
// renders "default values", which not every dialect accepts.
type InsertBuilder struct {
	cfg      *config
	table    string
	columns  []string
	sets     []*setClause
	subquery *SelectBuilder
}

func newInsert(cfg *config, table string) *InsertBuilder {
	if table == "" {
		badUsage("insert", "table name must not be empty")
	}
	return &InsertBuilder{cfg: cfg, table: table}
}

// Set opens an assignment of the given column in the VALUES body; supply
// the value through the returned expression.
func (i *InsertBuilder) Set(column string) *Expr[*InsertBuilder] {
	if i.subquery != nil {
		badUsage("insert.set", "insert body has already been set to a subquery")
	}
	e := &Expr[*InsertBuilder]{parent: i}
	i.sets = append(i.sets, &setClause{column: column, value: e})
	return e
}

// Subquery sets the body to a SELECT feeding the given columns, and
// returns the new SELECT builder.
func (i *InsertBuilder) Subquery(columns ...string) *SelectBuilder {
	if i.subquery != nil || len(i.sets) > 0 {
		badUsage("insert.subquery", "insert body has already been set")
	}
	i.columns = columns
	i.subquery = newSelect(i.cfg)
	return i.subquery
}

func (i *InsertBuilder) AppendTo(w *Writer) {
	w.Append("insert into ").Append(i.table)
	switch {
	case i.subquery != nil:
		w.Append(" (").Append(strings.Join(i.columns, ", ")).Appendln(")")
		i.subquery.AppendTo(w)
	case len(i.sets) > 0:
		cols := make([]string, len(i.sets))
		for n, c := range i.sets {
			cols[n] = c.column
		}
		w.Append("(").Append(strings.Join(cols, ", ")).Appendln(")")
		w.Append("values (")
		for n, c := range i.sets {
			if n > 0 {
				w.Append(", ")
			}
			w.frag(c.value)
		}
		w.Append(")")
	default:
		w.Newline()
		w.Append("default values")
	}
}

func (i *InsertBuilder) Bind(b Binder, seq *PosSeq) error {
	if i.subquery != nil {
		return i.subquery.Bind(b, seq)
	}
	for _, c := range i.sets {
		if err := c.Bind(b, seq); err != nil {
			return err
		}
	}
	return nil
}

// SQL renders the statement text.
func (i *InsertBuilder) SQL() string { return renderSQL(i.cfg, i) }

// Args runs the bind pass and returns the parameter values in placeholder
// order.
func (i *InsertBuilder) Args() ([]any, error) { return bindArgs(i.cfg, i) }

// Exec renders and executes the statement.
func (i *InsertBuilder) Exec(ctx context.Context, e ExecQuerier) (sql.Result, error) {
	return execStmt(ctx, e, i.cfg, i)
}

func (i *InsertBuilder) String() string { return i.SQL() }
