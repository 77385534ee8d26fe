package sqlgen

import "strings"

// Op is a relational operator.
type Op string

// Relational operators.
const (
	OpEQ    Op = "="
	OpNotEQ Op = "<>"
	OpGT    Op = ">"
	OpGTE   Op = ">="
	OpLT    Op = "<"
	OpLTE   Op = "<="
	OpLike  Op = "like"
	OpIs    Op = "is"
	OpIsNot Op = "is not"
	OpIn    Op = "in"
)

func (o Op) AppendTo(w *Writer)         { w.Append(string(o)) }
func (o Op) Bind(Binder, *PosSeq) error { return nil }

// Condition is a fragment known to be boolean-valued. The set of condition
// shapes is closed: simple comparisons, AND/OR composites, NOT, EXISTS, IN
// and raw text.
type Condition interface {
	Fragment
	isCondition()
}

// SimpleCondition is a binary comparison between two fragments.
//
// When the null-aware rewrite is enabled and the right-hand side denotes
// the SQL NULL value, "=" is rewritten to IS and "<>" to IS NOT, with the
// right-hand side replaced by the literal NULL keyword — standard SQL
// disallows "= NULL". The rewrite is computed lazily, exactly once, so
// repeated render and bind passes on the same instance agree: a null value
// neither renders a placeholder nor attempts a bind.
type SimpleCondition struct {
	lhs, rhs   Fragment
	op         Op
	fixNullRHS bool
}

// NewSimpleCondition builds the comparison "lhs op rhs".
func NewSimpleCondition(lhs Fragment, op Op, rhs Fragment) *SimpleCondition {
	return &SimpleCondition{lhs: lhs, op: op, rhs: rhs}
}

// NewNullableCondition builds "lhs op rhs" with the null-aware rewrite
// enabled.
func NewNullableCondition(lhs Fragment, op Op, rhs Fragment) *SimpleCondition {
	return &SimpleCondition{lhs: lhs, op: op, rhs: rhs, fixNullRHS: true}
}

// fixNull applies the null-aware rewrite at most once.
func (c *SimpleCondition) fixNull() {
	if !c.fixNullRHS {
		return
	}
	if representsNull(c.rhs) {
		switch c.op {
		case OpEQ:
			c.op = OpIs
			c.rhs = nullKeyword
		case OpNotEQ:
			c.op = OpIsNot
			c.rhs = nullKeyword
		}
	}
	c.fixNullRHS = false
}

func (c *SimpleCondition) AppendTo(w *Writer) {
	c.fixNull()
	c.lhs.AppendTo(w)
	w.Append(" ")
	c.op.AppendTo(w)
	w.Append(" ")
	c.rhs.AppendTo(w)
}

func (c *SimpleCondition) Bind(b Binder, seq *PosSeq) error {
	c.fixNull()
	if err := c.lhs.Bind(b, seq); err != nil {
		return err
	}
	return c.rhs.Bind(b, seq)
}

func (c *SimpleCondition) isCondition() {}

// CompositeCondition joins sub-conditions with a logical operator. Zero
// conditions render as the vacuous truth "1=1" (the identity for
// conjunction, so optional filter sets compose cleanly), a single
// condition renders unparenthesized, two or more render parenthesized and
// joined by the operator.
type CompositeCondition struct {
	conds []Condition
	op    string // "and" or "or"
}

// Add appends sub-conditions.
func (c *CompositeCondition) Add(conds ...Condition) *CompositeCondition {
	c.conds = append(c.conds, conds...)
	return c
}

func (c *CompositeCondition) AppendTo(w *Writer) {
	switch len(c.conds) {
	case 0:
		w.Append("1=1")
	case 1:
		c.conds[0].AppendTo(w)
	default:
		w.Append("(")
		for i, sub := range c.conds {
			if i > 0 {
				w.Append(" ").Append(c.op).Append(" ")
			}
			sub.AppendTo(w)
		}
		w.Append(")")
	}
}

func (c *CompositeCondition) Bind(b Binder, seq *PosSeq) error {
	for _, sub := range c.conds {
		if err := sub.Bind(b, seq); err != nil {
			return err
		}
	}
	return nil
}

func (c *CompositeCondition) isCondition() {}

// NotCondition negates a wrapped condition.
type NotCondition struct {
	wrapped Condition
}

func (c *NotCondition) AppendTo(w *Writer) {
	w.Appendln("not (")
	w.Indent()
	w.fragln(c.wrapped)
	w.Dedent()
	w.Append(")")
}

func (c *NotCondition) Bind(b Binder, seq *PosSeq) error {
	return c.wrapped.Bind(b, seq)
}

func (c *NotCondition) isCondition() {}

// ExistsCondition wraps a select-shaped fragment in an EXISTS predicate.
type ExistsCondition struct {
	composite
}

func newExists(subquery Fragment) *ExistsCondition {
	return &ExistsCondition{compose(NewRaw("exists ("), newlineIndent, subquery, dedent, NewRaw(")"))}
}

func (c *ExistsCondition) isCondition() {}

// InCondition is an IN predicate over an expanded literal collection. The
// collection is chunked into groups of at most maxItems placeholders (an
// oversized IN list is rejected by some databases); multiple chunks are
// OR-joined and parenthesized. An empty collection renders the
// always-false "1=0" and binds nothing: "x IN ()" would be invalid SQL,
// and callers routinely pass empty collections produced by upstream
// filtering.
type InCondition struct {
	sql    string
	params []*Param
}

func newIn(lhs Fragment, values []any, maxItems int) *InCondition {
	if len(values) == 0 {
		return &InCondition{sql: "1=0"}
	}
	params := make([]*Param, len(values))
	for i, v := range values {
		params[i] = NewParam(v)
	}
	lhsSQL := fragmentSQL(lhs)
	var clauses []string
	for _, n := range chunk(len(values), maxItems) {
		var sb strings.Builder
		sb.WriteString(lhsSQL)
		sb.WriteString(" in (")
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("?")
		}
		sb.WriteString(")")
		clauses = append(clauses, sb.String())
	}
	sql := clauses[0]
	if len(clauses) > 1 {
		sql = "(" + strings.Join(clauses, " or ") + ")"
	}
	return &InCondition{sql: sql, params: params}
}

func (c *InCondition) AppendTo(w *Writer) { w.Append(c.sql) }

func (c *InCondition) Bind(b Binder, seq *PosSeq) error {
	for _, p := range c.params {
		if err := p.Bind(b, seq); err != nil {
			return err
		}
	}
	return nil
}

func (c *InCondition) isCondition() {}

// InSelectCondition is an IN predicate over a subquery. The left-hand side
// binds first (usually a no-op), then the subquery's own parameters in
// their render order.
type InSelectCondition struct {
	lhs      Fragment
	subquery Fragment
}

func (c *InSelectCondition) AppendTo(w *Writer) {
	c.lhs.AppendTo(w)
	w.Appendln(" in (")
	w.Indent()
	c.subquery.AppendTo(w)
	w.Dedent()
	w.Append(")")
}

func (c *InSelectCondition) Bind(b Binder, seq *PosSeq) error {
	if err := c.lhs.Bind(b, seq); err != nil {
		return err
	}
	return c.subquery.Bind(b, seq)
}

func (c *InSelectCondition) isCondition() {}

// fragmentSQL renders a fragment into a fresh non-debug writer. Used when
// a fragment's rendered form, rather than its live structure, must be
// combined with other text.
func fragmentSQL(f Fragment) string {
	w := newWriter(false)
	f.AppendTo(w)
	return w.String()
}

// Cond builds a single comparison fluently: pick the operator, then supply
// the right-hand side through the returned Expr. The type parameter P is
// the owning builder, returned from terminal calls so chains read
// naturally:
//
//	sel.Where("a").Gt().Value(1)
//
// A Cond is itself a Condition: it delegates to whichever comparison the
// chain has produced so far.
type Cond[P any] struct {
	cfg    *config
	parent P
	lhs    Fragment
	cur    Condition
}

func newCond[P any](cfg *config, lhs string, parent P) *Cond[P] {
	if lhs == "" {
		badUsage("condition", "left-hand side must not be empty")
	}
	return &Cond[P]{cfg: cfg, parent: parent, lhs: NewRaw(lhs)}
}

func (c *Cond[P]) is(op Op) *Expr[P] {
	rhs := &Expr[P]{parent: c.parent}
	c.cur = NewSimpleCondition(c.lhs, op, rhs)
	return rhs
}

func (c *Cond[P]) isNullable(op Op) *Expr[P] {
	rhs := &Expr[P]{parent: c.parent}
	c.cur = NewNullableCondition(c.lhs, op, rhs)
	return rhs
}

// Eq builds an "=" comparison.
func (c *Cond[P]) Eq() *Expr[P] { return c.is(OpEQ) }

// NotEq builds a "<>" comparison.
func (c *Cond[P]) NotEq() *Expr[P] { return c.is(OpNotEQ) }

// EqNullable builds an "=" comparison; when the right-hand side denotes
// NULL, the operator becomes IS.
func (c *Cond[P]) EqNullable() *Expr[P] { return c.isNullable(OpEQ) }

// NotEqNullable builds a "<>" comparison; when the right-hand side denotes
// NULL, the operator becomes IS NOT.
func (c *Cond[P]) NotEqNullable() *Expr[P] { return c.isNullable(OpNotEQ) }

// Gt builds a ">" comparison.
func (c *Cond[P]) Gt() *Expr[P] { return c.is(OpGT) }

// Gte builds a ">=" comparison.
func (c *Cond[P]) Gte() *Expr[P] { return c.is(OpGTE) }

// Lt builds a "<" comparison.
func (c *Cond[P]) Lt() *Expr[P] { return c.is(OpLT) }

// Lte builds a "<=" comparison.
func (c *Cond[P]) Lte() *Expr[P] { return c.is(OpLTE) }

// In builds an IN predicate over a literal collection and returns the
// owning builder. See InCondition for the chunking and empty-collection
// rules.
func (c *Cond[P]) In(values ...any) P {
	c.cur = newIn(c.lhs, values, c.cfg.maxInItems)
	return c.parent
}

// InSelect builds an IN predicate over a subquery and returns the owning
// builder.
func (c *Cond[P]) InSelect(subquery *SelectBuilder) P {
	c.cur = &InSelectCondition{lhs: c.lhs, subquery: subquery}
	return c.parent
}

// IsNull builds an "IS NULL" predicate.
func (c *Cond[P]) IsNull() P {
	c.cur = NewSimpleCondition(c.lhs, OpIs, nullKeyword)
	return c.parent
}

// IsNotNull builds an "IS NOT NULL" predicate.
func (c *Cond[P]) IsNotNull() P {
	c.cur = NewSimpleCondition(c.lhs, OpIsNot, nullKeyword)
	return c.parent
}

// Like builds a LIKE predicate against an embedded string literal. The
// text is quote-escaped; wildcard characters in it keep their meaning.
func (c *Cond[P]) Like(text string) P {
	c.cur = NewSimpleCondition(c.lhs, OpLike, NewRaw(ToLiteral(text)))
	return c.parent
}

// LikeEscape builds a LIKE predicate matching text verbatim: "%" and "_"
// in the text are escaped with escapeChar and an ESCAPE clause is emitted.
func (c *Cond[P]) LikeEscape(text string, escapeChar byte) P {
	rhs := "'" + EscapeLike(text, escapeChar) + "' escape '" + string(escapeChar) + "'"
	c.cur = NewSimpleCondition(c.lhs, OpLike, NewRaw(rhs))
	return c.parent
}

func (c *Cond[P]) AppendTo(w *Writer) {
	c.require().AppendTo(w)
}

func (c *Cond[P]) Bind(b Binder, seq *PosSeq) error {
	return c.require().Bind(b, seq)
}

func (c *Cond[P]) isCondition() {}

func (c *Cond[P]) require() Condition {
	if c.cur == nil {
		badUsage("condition", "comparison not completed: missing operator or right-hand side")
	}
	return c.cur
}

// Expr is the right-hand side of a comparison under construction. Exactly
// one of its methods must be called; each returns the owning builder P.
type Expr[P any] struct {
	parent  P
	wrapped Fragment
}

// Value wraps v as a bound parameter. A nil v denotes SQL NULL.
func (e *Expr[P]) Value(v any) P {
	e.wrapped = NewParam(v)
	return e.parent
}

// ValueTemplate wraps v as a bound parameter with a custom placeholder
// template, e.g. "lower(?)".
func (e *Expr[P]) ValueTemplate(tmpl string, v any) P {
	e.wrapped = NewParamTemplate(tmpl, v)
	return e.parent
}

// Raw uses sql verbatim as the right-hand side.
func (e *Expr[P]) Raw(sql string) P {
	e.wrapped = NewRaw(sql)
	return e.parent
}

// RawBind uses sql verbatim with an accompanying parameter binder.
func (e *Expr[P]) RawBind(sql string, bind BindFunc) P {
	e.wrapped = NewRawBind(sql, bind)
	return e.parent
}

// Subquery uses a parenthesized subquery returning a single row.
func (e *Expr[P]) Subquery(subquery *SelectBuilder) P {
	e.wrapped = parens(subquery, true)
	return e.parent
}

// All quantifies the comparison over every row of the subquery.
func (e *Expr[P]) All(subquery *SelectBuilder) P {
	e.wrapped = compose(NewRaw("all ("), newlineIndent, subquery, dedent, NewRaw(")"))
	return e.parent
}

// Any quantifies the comparison over at least one row of the subquery.
func (e *Expr[P]) Any(subquery *SelectBuilder) P {
	e.wrapped = compose(NewRaw("any ("), newlineIndent, subquery, dedent, NewRaw(")"))
	return e.parent
}

func (e *Expr[P]) AppendTo(w *Writer) {
	e.require().AppendTo(w)
}

func (e *Expr[P]) Bind(b Binder, seq *PosSeq) error {
	return e.require().Bind(b, seq)
}

// NullValue reports whether the expression denotes SQL NULL.
func (e *Expr[P]) NullValue() bool {
	return representsNull(e.require())
}

func (e *Expr[P]) require() Fragment {
	if e.wrapped == nil {
		badUsage("expression", "right-hand side not supplied")
	}
	return e.wrapped
}
