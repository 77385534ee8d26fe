package sqlgen

import (
	"context"
	"database/sql"
)

// DeleteBuilder accumulates the clauses of a DELETE statement.
type DeleteBuilder struct {
	cfg    *config
	table  string
	wheres []Fragment
}

func newDelete(cfg *config, table string) *DeleteBuilder {
	if table == "" {
		badUsage("delete", "table name must not be empty")
	}
	return &DeleteBuilder{cfg: cfg, table: table}
}

// Where starts a fluent WHERE condition; multiple entries are AND-joined.
func (d *DeleteBuilder) Where(lhs string) *Cond[*DeleteBuilder] {
	c := newCond(d.cfg, lhs, d)
	d.wheres = append(d.wheres, c)
	return c
}

// WhereCond appends a prebuilt WHERE condition.
func (d *DeleteBuilder) WhereCond(c Condition) *DeleteBuilder {
	if c == nil {
		badUsage("delete.where", "condition must not be nil")
	}
	d.wheres = append(d.wheres, c)
	return d
}

func (d *DeleteBuilder) AppendTo(w *Writer) {
	w.Append("delete from ").Appendln(d.table)
	writeWhere(w, d.wheres)
}

func (d *DeleteBuilder) Bind(b Binder, seq *PosSeq) error {
	return bindAll(b, seq, d.wheres)
}

// SQL renders the statement text.
func (d *DeleteBuilder) SQL() string { return renderSQL(d.cfg, d) }

// Args runs the bind pass and returns the parameter values in placeholder
// order.
func (d *DeleteBuilder) Args() ([]any, error) { return bindArgs(d.cfg, d) }

// Exec renders and executes the statement.
func (d *DeleteBuilder) Exec(ctx context.Context, e ExecQuerier) (sql.Result, error) {
	return execStmt(ctx, e, d.cfg, d)
}

func (d *DeleteBuilder) String() string { return d.SQL() }
