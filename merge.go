package sqlgen

import (
	"context"
	"database/sql"
)

// mergeFlag marks the MERGE sub-clauses a column assignment feeds.
type mergeFlag uint8

const (
	mergeOn mergeFlag = 1 << iota
	mergeUpdate
	mergeInsert
)

// mergeClause is one column assignment of a MERGE statement, tagged with
// the sub-clauses it participates in.
type mergeClause struct {
	flags  mergeFlag
	column string
	value  *Expr[*MergeBuilder]
}

// MergeBuilder accumulates an Oracle-style MERGE: "using dual on (...)
// when matched then update ... when not matched then insert ...". A value
// declared through On or InsertOrUpdate feeds several sub-clauses and so
// renders, and binds, once per sub-clause; bind order is ON conditions,
// then UPDATE assignments, then INSERT values, matching render order.
type MergeBuilder struct {
	cfg     *config
	table   string
	clauses []*mergeClause
}

func newMerge(cfg *config, table string) *MergeBuilder {
	if table == "" {
		badUsage("merge", "table name must not be empty")
	}
	return &MergeBuilder{cfg: cfg, table: table}
}

func (m *MergeBuilder) add(flags mergeFlag, column string) *Expr[*MergeBuilder] {
	if column == "" {
		badUsage("merge", "column name must not be empty")
	}
	e := &Expr[*MergeBuilder]{parent: m}
	m.clauses = append(m.clauses, &mergeClause{flags: flags, column: column, value: e})
	return e
}

// On declares a key column: it joins the ON condition and, for the
// not-matched branch, the INSERT values.
func (m *MergeBuilder) On(column string) *Expr[*MergeBuilder] {
	return m.add(mergeOn|mergeInsert, column)
}

// InsertOrUpdate declares a data column fed by both the UPDATE and the
// INSERT branch.
func (m *MergeBuilder) InsertOrUpdate(column string) *Expr[*MergeBuilder] {
	return m.add(mergeUpdate|mergeInsert, column)
}

// Insert declares a column fed only by the INSERT branch.
func (m *MergeBuilder) Insert(column string) *Expr[*MergeBuilder] {
	return m.add(mergeInsert, column)
}

func (m *MergeBuilder) filter(flag mergeFlag) []*mergeClause {
	var res []*mergeClause
	for _, c := range m.clauses {
		if c.flags&flag != 0 {
			res = append(res, c)
		}
	}
	return res
}

// onCondition builds the ON clause: null-aware equalities over the key
// columns, AND-joined. NULL keys compare with IS so null-keyed rows still
// match.
func (m *MergeBuilder) onCondition() Condition {
	comp := &CompositeCondition{op: "and"}
	for _, c := range m.filter(mergeOn) {
		comp.Add(NewNullableCondition(NewRaw(c.column), OpEQ, c.value))
	}
	return comp
}

func (m *MergeBuilder) AppendTo(w *Writer) {
	updates := m.filter(mergeUpdate)
	inserts := m.filter(mergeInsert)

	w.Append("merge into ").Append(m.table).Appendln(" using dual on (")
	w.Indent()
	w.fragln(m.onCondition())
	w.Dedent()
	w.Appendln(")")
	if len(updates) > 0 {
		w.Appendln("when matched then update set")
		setList := make([]*setClause, len(updates))
		for i, c := range updates {
			setList[i] = &setClause{column: c.column, value: c.value}
		}
		writeSetList(w, setList)
	}
	w.Append("when not matched then insert (")
	for i, c := range inserts {
		if i > 0 {
			w.Append(", ")
		}
		w.Append(c.column)
	}
	w.Append(") values (")
	for i, c := range inserts {
		if i > 0 {
			w.Append(", ")
		}
		w.frag(c.value)
	}
	w.Append(")")
}

func (m *MergeBuilder) Bind(b Binder, seq *PosSeq) error {
	if err := m.onCondition().Bind(b, seq); err != nil {
		return err
	}
	for _, c := range m.filter(mergeUpdate) {
		if err := c.value.Bind(b, seq); err != nil {
			return err
		}
	}
	for _, c := range m.filter(mergeInsert) {
		if err := c.value.Bind(b, seq); err != nil {
			return err
		}
	}
	return nil
}

// SQL renders the statement text.
func (m *MergeBuilder) SQL() string { return renderSQL(m.cfg, m) }

// Args runs the bind pass and returns the parameter values in placeholder
// order.
func (m *MergeBuilder) Args() ([]any, error) { return bindArgs(m.cfg, m) }

// Exec renders and executes the statement.
func (m *MergeBuilder) Exec(ctx context.Context, e ExecQuerier) (sql.Result, error) {
	return execStmt(ctx, e, m.cfg, m)
}

func (m *MergeBuilder) String() string { return m.SQL() }
