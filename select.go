package sqlgen

import (
	"context"
	"database/sql"
)

// Clause identifies a SELECT clause slot. The declaration order is the
// fixed render order; the bind pass walks the same order.
type Clause int

// SELECT clause slots.
const (
	ClauseWith Clause = iota
	ClauseSelect
	ClauseFrom
	ClauseWhere
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	ClauseOffset
	ClauseFetchFirst
)

var clauseKeywords = [...]string{
	ClauseWith:       "with",
	ClauseSelect:     "select",
	ClauseFrom:       "from",
	ClauseWhere:      "where",
	ClauseGroupBy:    "group by",
	ClauseHaving:     "having",
	ClauseOrderBy:    "order by",
	ClauseOffset:     "offset",
	ClauseFetchFirst: "fetch first",
}

// Keyword returns the clause keyword as rendered.
func (c Clause) Keyword() string { return clauseKeywords[c] }

// Placement is a raw-text injection point relative to a named clause. It
// is the extensibility hook for dialect-specific syntax the builder does
// not model natively, such as table hints.
type Placement int

// Injection points.
const (
	// BeforeKeyword injects immediately before the clause keyword.
	BeforeKeyword Placement = iota
	// AfterKeyword injects immediately after the clause keyword.
	AfterKeyword
	// AfterExpression injects after the clause's full expression.
	AfterExpression
)

// rawKey addresses one injection point of one clause.
type rawKey struct {
	p Placement
	c Clause
}

// rawMap stores the raw clauses injected around SELECT clause slots.
type rawMap map[rawKey][]*Raw

func (m rawMap) add(p Placement, c Clause, r *Raw) {
	m[rawKey{p, c}] = append(m[rawKey{p, c}], r)
}

func (m rawMap) get(p Placement, c Clause) []*Raw {
	return m[rawKey{p, c}]
}

// JoinKind names a JOIN variant.
type JoinKind string

// Join variants.
const (
	InnerJoin JoinKind = "inner join"
	LeftJoin  JoinKind = "left join"
	RightJoin JoinKind = "right join"
	FullJoin  JoinKind = "full join"
	CrossJoin JoinKind = "cross join"
)

// SelectBuilder accumulates the clauses of a SELECT statement. Clause
// collections grow by method chaining; FROM, OFFSET and FETCH FIRST are
// single-valued and may be set at most once. Once SQL or Args has been
// requested the builder should be treated as immutable.
type SelectBuilder struct {
	cfg        *config
	withs      []Fragment
	selects    []Fragment
	from       Fragment
	joins      []string
	wheres     []Fragment
	groupBys   []Fragment
	havings    []Fragment
	orderBys   []Fragment
	offset     Fragment
	fetchFirst Fragment
	raws       rawMap
}

func newSelect(cfg *config) *SelectBuilder {
	return &SelectBuilder{cfg: cfg, raws: rawMap{}}
}

// Distinct marks the statement as SELECT DISTINCT.
func (s *SelectBuilder) Distinct() *SelectBuilder {
	s.raws.add(AfterKeyword, ClauseSelect, NewRaw("distinct"))
	return s
}

// With opens a WITH clause naming a pseudo table; complete it with As.
func (s *SelectBuilder) With(pseudoTable string) *WithClause {
	wc := &WithClause{name: pseudoTable, parent: s}
	s.withs = append(s.withs, wc)
	return wc
}

// Select appends select-list expressions, given as raw text.
func (s *SelectBuilder) Select(exprs ...string) *SelectBuilder {
	for _, e := range exprs {
		s.selects = append(s.selects, NewRaw(e))
	}
	return s
}

// SelectLiteral appends a quoted string literal to the select list,
// optionally aliased.
func (s *SelectBuilder) SelectLiteral(literal, columnAlias string) *SelectBuilder {
	expr := ToLiteral(literal)
	if columnAlias != "" {
		expr += " AS " + columnAlias
	}
	s.selects = append(s.selects, NewRaw(expr))
	return s
}

// From sets the FROM clause from raw text. It may be called once.
func (s *SelectBuilder) From(from string) *SelectBuilder {
	if s.from != nil {
		badUsage("select.from", "from clause has already been set")
	}
	s.from = NewRaw(from)
	return s
}

// FromSelect sets the FROM clause to a parenthesized subquery. It may be
// called once.
func (s *SelectBuilder) FromSelect(subquery *SelectBuilder) *SelectBuilder {
	if s.from != nil {
		badUsage("select.from", "from clause has already been set")
	}
	s.from = parens(subquery, true)
	return s
}

// Join appends a join of the given kind; the join expression (table plus
// ON condition) is raw text.
func (s *SelectBuilder) Join(kind JoinKind, joinExpr string) *SelectBuilder {
	if joinExpr == "" {
		badUsage("select.join", "join expression must not be empty")
	}
	s.joins = append(s.joins, string(kind)+" "+joinExpr)
	return s
}

// InnerJoin appends an inner join.
func (s *SelectBuilder) InnerJoin(joinExpr string) *SelectBuilder {
	return s.Join(InnerJoin, joinExpr)
}

// LeftJoin appends a left join.
func (s *SelectBuilder) LeftJoin(joinExpr string) *SelectBuilder {
	return s.Join(LeftJoin, joinExpr)
}

// RightJoin appends a right join.
func (s *SelectBuilder) RightJoin(joinExpr string) *SelectBuilder {
	return s.Join(RightJoin, joinExpr)
}

// FullJoin appends a full join.
func (s *SelectBuilder) FullJoin(joinExpr string) *SelectBuilder {
	return s.Join(FullJoin, joinExpr)
}

// CrossJoin appends a cross join.
func (s *SelectBuilder) CrossJoin(joinExpr string) *SelectBuilder {
	return s.Join(CrossJoin, joinExpr)
}

// Where starts a fluent WHERE condition on the given left-hand side.
// Multiple WHERE entries are AND-joined at render time.
func (s *SelectBuilder) Where(lhs string) *Cond[*SelectBuilder] {
	c := newCond(s.cfg, lhs, s)
	s.wheres = append(s.wheres, c)
	return c
}

// WhereCond appends a prebuilt WHERE condition.
func (s *SelectBuilder) WhereCond(c Condition) *SelectBuilder {
	if c == nil {
		badUsage("select.where", "condition must not be nil")
	}
	s.wheres = append(s.wheres, c)
	return s
}

// Having starts a fluent HAVING condition on the given left-hand side.
func (s *SelectBuilder) Having(lhs string) *Cond[*SelectBuilder] {
	c := newCond(s.cfg, lhs, s)
	s.havings = append(s.havings, c)
	return c
}

// HavingCond appends a prebuilt HAVING condition.
func (s *SelectBuilder) HavingCond(c Condition) *SelectBuilder {
	if c == nil {
		badUsage("select.having", "condition must not be nil")
	}
	s.havings = append(s.havings, c)
	return s
}

// GroupBy appends GROUP BY expressions, given as raw text.
func (s *SelectBuilder) GroupBy(exprs ...string) *SelectBuilder {
	for _, e := range exprs {
		s.groupBys = append(s.groupBys, NewRaw(e))
	}
	return s
}

// OrderBy appends ORDER BY expressions, given as raw text.
func (s *SelectBuilder) OrderBy(exprs ...string) *SelectBuilder {
	for _, e := range exprs {
		s.orderBys = append(s.orderBys, NewRaw(e))
	}
	return s
}

// Offset sets the row offset; 0 means no offset. Introduced in the
// SQL:2008 standard. It may be set once; the count binds directly as an
// integer, outside the typed-literal path.
func (s *SelectBuilder) Offset(offset int) *SelectBuilder {
	if s.offset != nil {
		badUsage("select.offset", "offset clause has already been set")
	}
	s.offset = NewRawBind("? rows", func(b Binder, seq *PosSeq) error {
		return b.Set(seq.Next(), int64(offset))
	})
	return s
}

// FetchFirst limits the statement to the first rowCount rows. It may be
// set once.
func (s *SelectBuilder) FetchFirst(rowCount int) *SelectBuilder {
	if s.fetchFirst != nil {
		badUsage("select.fetch", "fetch first clause has already been set")
	}
	s.fetchFirst = NewRawBind("? rows only", func(b Binder, seq *PosSeq) error {
		return b.Set(seq.Next(), int64(rowCount))
	})
	return s
}

// RawClause injects raw text at the given placement around the given
// clause.
func (s *SelectBuilder) RawClause(p Placement, c Clause, sql string) *SelectBuilder {
	s.raws.add(p, c, NewRaw(sql))
	return s
}

// RawClauseBind injects raw text with an accompanying parameter binder.
func (s *SelectBuilder) RawClauseBind(p Placement, c Clause, sql string, bind BindFunc) *SelectBuilder {
	s.raws.add(p, c, NewRawBind(sql, bind))
	return s
}

// writeClause renders one clause slot: injected raws before the keyword,
// the keyword, raws after the keyword, then the fragments. With newline
// set, fragments exceeding one render newline-separated on an extra
// indentation level; otherwise they join inline with joinString.
func (s *SelectBuilder) writeClause(w *Writer, c Clause, frags []Fragment, newline bool, joinString string) {
	for _, r := range s.raws.get(BeforeKeyword, c) {
		w.fragln(r)
	}
	if len(frags) > 0 {
		w.Append(c.Keyword())
		for _, r := range s.raws.get(AfterKeyword, c) {
			w.Append(" ").frag(r)
		}
		if newline && len(frags) > 1 {
			w.Newline()
			w.Indent()
		} else {
			w.Append(" ")
		}
		for i, f := range frags {
			if newline {
				w.fragln(f)
			} else {
				w.frag(f)
			}
			if i < len(frags)-1 {
				w.Append(joinString)
			}
		}
		if newline {
			if len(frags) > 1 {
				w.Dedent()
			}
		} else {
			w.Newline()
		}
	} else {
		for _, r := range s.raws.get(AfterKeyword, c) {
			w.fragln(r)
		}
	}
	for _, r := range s.raws.get(AfterExpression, c) {
		w.fragln(r)
	}
}

func (s *SelectBuilder) AppendTo(w *Writer) {
	s.writeClause(w, ClauseWith, s.withs, true, ",")
	s.writeClause(w, ClauseSelect, s.selects, false, ", ")

	// The FROM clause interleaves joins with the injected raws, so it
	// cannot go through writeClause.
	for _, r := range s.raws.get(BeforeKeyword, ClauseFrom) {
		w.fragln(r)
	}
	w.Append(ClauseFrom.Keyword()).Append(" ")
	for _, r := range s.raws.get(AfterKeyword, ClauseFrom) {
		w.frag(r).Append(" ")
	}
	if s.from == nil {
		badUsage("select.from", "from clause not set")
	}
	w.fragln(s.from)
	for _, j := range s.joins {
		w.Appendln(j)
	}
	for _, r := range s.raws.get(AfterExpression, ClauseFrom) {
		w.fragln(r)
	}

	s.writeClause(w, ClauseWhere, s.wheres, true, "and ")
	s.writeClause(w, ClauseGroupBy, s.groupBys, false, ", ")
	s.writeClause(w, ClauseHaving, s.havings, true, "and ")
	s.writeClause(w, ClauseOrderBy, s.orderBys, false, ", ")
	s.writeClause(w, ClauseOffset, s.offsetClauses(), false, "")
	s.writeClause(w, ClauseFetchFirst, s.fetchFirstClauses(), false, "")
}

func (s *SelectBuilder) offsetClauses() []Fragment {
	if s.offset == nil {
		return nil
	}
	return []Fragment{s.offset}
}

func (s *SelectBuilder) fetchFirstClauses() []Fragment {
	if s.fetchFirst == nil {
		return nil
	}
	return []Fragment{s.fetchFirst}
}

// clauseFragments lists one clause slot's fragments in render order,
// injected raws included.
func (s *SelectBuilder) clauseFragments(c Clause, frags []Fragment) []Fragment {
	var res []Fragment
	for _, r := range s.raws.get(BeforeKeyword, c) {
		res = append(res, r)
	}
	for _, r := range s.raws.get(AfterKeyword, c) {
		res = append(res, r)
	}
	for _, f := range frags {
		if f != nil {
			res = append(res, f)
		}
	}
	for _, r := range s.raws.get(AfterExpression, c) {
		res = append(res, r)
	}
	return res
}

// Bind walks WITH, SELECT, FROM, WHERE, GROUP BY, HAVING, ORDER BY,
// OFFSET, FETCH FIRST in that order, matching render order exactly;
// injected raw clauses bind at their injection point.
func (s *SelectBuilder) Bind(b Binder, seq *PosSeq) error {
	groups := [][]Fragment{
		s.clauseFragments(ClauseWith, s.withs),
		s.clauseFragments(ClauseSelect, s.selects),
		s.clauseFragments(ClauseFrom, []Fragment{s.from}),
		s.clauseFragments(ClauseWhere, s.wheres),
		s.clauseFragments(ClauseGroupBy, s.groupBys),
		s.clauseFragments(ClauseHaving, s.havings),
		s.clauseFragments(ClauseOrderBy, s.orderBys),
		s.clauseFragments(ClauseOffset, s.offsetClauses()),
		s.clauseFragments(ClauseFetchFirst, s.fetchFirstClauses()),
	}
	for _, group := range groups {
		for _, f := range group {
			if err := f.Bind(b, seq); err != nil {
				return err
			}
		}
	}
	return nil
}

// SQL renders the statement text. It performs no I/O and is safe to call
// repeatedly; an unmodified builder yields identical text.
func (s *SelectBuilder) SQL() string { return renderSQL(s.cfg, s) }

// Args runs the bind pass and returns the parameter values in placeholder
// order.
func (s *SelectBuilder) Args() ([]any, error) { return bindArgs(s.cfg, s) }

// Query renders and executes the statement, returning its rows.
func (s *SelectBuilder) Query(ctx context.Context, q ExecQuerier) (*sql.Rows, error) {
	return queryRows(ctx, q, s.cfg, s)
}

func (s *SelectBuilder) String() string { return s.SQL() }

// WithClause names one pseudo table of a WITH clause. As supplies the
// subquery and hands back the owning SELECT so chaining continues there;
// the clause holds no other link to its parent.
type WithClause struct {
	name     string
	subquery Fragment
	parent   *SelectBuilder
}

// As sets the subquery defining the pseudo table.
func (wc *WithClause) As(subquery *SelectBuilder) *SelectBuilder {
	wc.subquery = subquery
	return wc.parent
}

func (wc *WithClause) AppendTo(w *Writer) {
	if wc.subquery == nil {
		badUsage("select.with", "with clause not completed with As")
	}
	w.Append(wc.name).Appendln(" as (")
	w.Indent()
	wc.subquery.AppendTo(w)
	w.Dedent()
	w.Append(")")
}

func (wc *WithClause) Bind(b Binder, seq *PosSeq) error {
	if wc.subquery == nil {
		badUsage("select.with", "with clause not completed with As")
	}
	return wc.subquery.Bind(b, seq)
}
