package sqlgen

import (
	"context"
	"database/sql"
)

// setClause is one "column = expression" assignment of an UPDATE, INSERT
// or MERGE statement.
type setClause struct {
	column string
	value  Fragment
}

func (c *setClause) AppendTo(w *Writer) {
	w.Append(c.column).Append(" = ").frag(c.value)
}

func (c *setClause) Bind(b Binder, seq *PosSeq) error {
	return c.value.Bind(b, seq)
}

// writeSetList renders assignments one per line, comma-separated, on an
// extra indentation level.
func writeSetList(w *Writer, clauses []*setClause) {
	w.Indent()
	for i, c := range clauses {
		w.frag(c)
		if i < len(clauses)-1 {
			w.Appendln(",")
		} else {
			w.Newline()
		}
	}
	w.Dedent()
}

// writeWhere renders a WHERE block in newline mode: the keyword on its own
// line, then AND-joined conditions on an extra indentation level. An empty
// condition set renders nothing.
func writeWhere(w *Writer, wheres []Fragment) {
	if len(wheres) == 0 {
		return
	}
	w.Appendln("where")
	w.Indent()
	for i, f := range wheres {
		w.fragln(f)
		if i < len(wheres)-1 {
			w.Append("and ")
		}
	}
	w.Dedent()
}

func bindAll(b Binder, seq *PosSeq, frags []Fragment) error {
	for _, f := range frags {
		if err := f.Bind(b, seq); err != nil {
			return err
		}
	}
	return nil
}

// UpdateBuilder accumulates the clauses of an UPDATE statement.
type UpdateBuilder struct {
	cfg    *config
	table  string
	sets   []*setClause
	wheres []Fragment
}

func newUpdate(cfg *config, table string) *UpdateBuilder {
	if table == "" {
		badUsage("update", "table name must not be empty")
	}
	return &UpdateBuilder{cfg: cfg, table: table}
}

// Set opens an assignment of the given column; supply the value through
// the returned expression.
func (u *UpdateBuilder) Set(column string) *Expr[*UpdateBuilder] {
	e := &Expr[*UpdateBuilder]{parent: u}
	u.sets = append(u.sets, &setClause{column: column, value: e})
	return e
}

// Where starts a fluent WHERE condition; multiple entries are AND-joined.
func (u *UpdateBuilder) Where(lhs string) *Cond[*UpdateBuilder] {
	c := newCond(u.cfg, lhs, u)
	u.wheres = append(u.wheres, c)
	return c
}

// WhereCond appends a prebuilt WHERE condition.
func (u *UpdateBuilder) WhereCond(c Condition) *UpdateBuilder {
	if c == nil {
		badUsage("update.where", "condition must not be nil")
	}
	u.wheres = append(u.wheres, c)
	return u
}

func (u *UpdateBuilder) AppendTo(w *Writer) {
	if len(u.sets) == 0 {
		badUsage("update", "no set clauses")
	}
	w.Append("update ").Append(u.table).Appendln(" set")
	writeSetList(w, u.sets)
	writeWhere(w, u.wheres)
}

// Bind walks the SET clauses then the WHERE clauses, matching render
// order.
func (u *UpdateBuilder) Bind(b Binder, seq *PosSeq) error {
	for _, c := range u.sets {
		if err := c.Bind(b, seq); err != nil {
			return err
		}
	}
	return bindAll(b, seq, u.wheres)
}

// SQL renders the statement text.
func (u *UpdateBuilder) SQL() string { return renderSQL(u.cfg, u) }

// Args runs the bind pass and returns the parameter values in placeholder
// order.
func (u *UpdateBuilder) Args() ([]any, error) { return bindArgs(u.cfg, u) }

// Exec renders and executes the statement.
func (u *UpdateBuilder) Exec(ctx context.Context, e ExecQuerier) (sql.Result, error) {
	return execStmt(ctx, e, u.cfg, u)
}

func (u *UpdateBuilder) String() string { return u.SQL() }
