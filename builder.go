package sqlgen

import (
	"github.com/syssam/sqlgen/dialect"
)

// defaultMaxInItems is the default chunk size for IN conditions. Oracle
// caps IN lists at 1000 items; splitting at that bound keeps generated
// statements portable.
const defaultMaxInItems = 1000

// config carries the settings shared by every builder a Builder creates.
type config struct {
	dialect    dialect.Dialect
	debug      bool
	maxInItems int
}

// Option configures a Builder.
type Option func(*config)

// WithDebug makes parameter fragments echo their bound value as a SQL
// comment next to the placeholder. Comment-closing sequences inside values
// are escaped, so the output stays a single well-formed comment.
func WithDebug(debug bool) Option {
	return func(c *config) { c.debug = debug }
}

// WithMaxInItems overrides the chunk size for IN conditions. Values above
// size splits into multiple OR-joined IN lists.
func WithMaxInItems(size int) Option {
	return func(c *config) {
		if size <= 0 {
			badUsage("builder.options", "max in items must be positive")
		}
		c.maxInItems = size
	}
}

// Builder is the entry point of the package: a factory for statement
// builders sharing one dialect and one set of options. It holds no
// connection and no mutable state; a single Builder may serve any number
// of goroutines.
type Builder struct {
	cfg *config
}

// New returns a Builder for the given dialect.
func New(d dialect.Dialect, opts ...Option) *Builder {
	cfg := &config{dialect: d, maxInItems: defaultMaxInItems}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Builder{cfg: cfg}
}

// Dialect returns the dialect the Builder renders for.
func (b *Builder) Dialect() dialect.Dialect { return b.cfg.dialect }

// Select starts a SELECT statement with the given select-list expressions.
func (b *Builder) Select(exprs ...string) *SelectBuilder {
	return newSelect(b.cfg).Select(exprs...)
}

// SelectDistinct starts a SELECT DISTINCT statement.
func (b *Builder) SelectDistinct(exprs ...string) *SelectBuilder {
	return newSelect(b.cfg).Distinct().Select(exprs...)
}

// With starts a SELECT statement by opening a WITH clause; complete the
// clause with As, then continue on the returned SELECT builder.
func (b *Builder) With(pseudoTable string) *WithClause {
	return newSelect(b.cfg).With(pseudoTable)
}

// Update starts an UPDATE statement against the given table.
func (b *Builder) Update(table string) *UpdateBuilder {
	return newUpdate(b.cfg, table)
}

// DeleteFrom starts a DELETE statement against the given table.
func (b *Builder) DeleteFrom(table string) *DeleteBuilder {
	return newDelete(b.cfg, table)
}

// InsertInto starts an INSERT statement against the given table.
func (b *Builder) InsertInto(table string) *InsertBuilder {
	return newInsert(b.cfg, table)
}

// MergeInto starts a MERGE statement against the given table.
func (b *Builder) MergeInto(table string) *MergeBuilder {
	return newMerge(b.cfg, table)
}

// Cond starts a standalone fluent condition on the given left-hand side.
// The completed condition can be passed to WhereCond, And, Or and friends.
func (b *Builder) Cond(lhs string) *Cond[Condition] {
	c := newCond[Condition](b.cfg, lhs, nil)
	c.parent = c
	return c
}

// Bool returns a condition that is always true or always false, rendered
// as a comparison of two bound parameters so the statement shape does not
// depend on the value.
func (b *Builder) Bool(value bool) Condition {
	rhs := 1
	if !value {
		rhs = 0
	}
	return NewSimpleCondition(NewParam(1), OpEQ, NewParam(rhs))
}

// And joins conditions with AND. No conditions renders as the neutral
// "1=1"; a single condition renders without parentheses.
func (b *Builder) And(conds ...Condition) *CompositeCondition {
	return &CompositeCondition{conds: conds, op: "and"}
}

// Or joins conditions with OR.
func (b *Builder) Or(conds ...Condition) *CompositeCondition {
	return &CompositeCondition{conds: conds, op: "or"}
}

// Not negates a condition.
func (b *Builder) Not(c Condition) Condition {
	if c == nil {
		badUsage("builder.not", "condition must not be nil")
	}
	return &NotCondition{wrapped: c}
}

// Exists wraps a subquery in an EXISTS predicate.
func (b *Builder) Exists(subquery *SelectBuilder) Condition {
	if subquery == nil {
		badUsage("builder.exists", "subquery must not be nil")
	}
	return newExists(subquery)
}

// Raw returns a fragment of literal SQL text binding nothing.
func (b *Builder) Raw(sql string) *Raw { return NewRaw(sql) }

// RawBind returns a fragment of literal SQL text with a custom binder.
func (b *Builder) RawBind(sql string, bind BindFunc) *Raw {
	return NewRawBind(sql, bind)
}

// Value returns a placeholder fragment binding the given value.
func (b *Builder) Value(v any) *Param { return NewParam(v) }

// ValueTemplate returns a placeholder fragment using custom SQL around
// the placeholder, such as "trunc(?)". The template must contain "?".
func (b *Builder) ValueTemplate(template string, v any) *Param {
	return NewParamTemplate(template, v)
}

// Union combines SELECT statements with UNION.
func (b *Builder) Union(selects ...*SelectBuilder) *CompoundSelect {
	return newCompound(b.cfg, "union", selects...)
}

// UnionAll combines SELECT statements with UNION ALL.
func (b *Builder) UnionAll(selects ...*SelectBuilder) *CompoundSelect {
	return newCompound(b.cfg, "union all", selects...)
}

// Intersect combines SELECT statements with INTERSECT.
func (b *Builder) Intersect(selects ...*SelectBuilder) *CompoundSelect {
	return newCompound(b.cfg, "intersect", selects...)
}

// Except returns the rows of left absent from right.
func (b *Builder) Except(left, right *SelectBuilder) *CompoundSelect {
	return newCompound(b.cfg, "except", left, right)
}

// Minus is the Oracle spelling of Except and is rejected for any other
// dialect.
func (b *Builder) Minus(left, right *SelectBuilder) *CompoundSelect {
	if b.cfg.dialect != dialect.Oracle {
		badUsage("builder.minus", "minus requires the oracle dialect; use except")
	}
	return newCompound(b.cfg, "minus", left, right)
}

// Batch starts a batch execution plan for a homogeneous stream of
// statements.
func (b *Builder) Batch() *BatchBuilder {
	return newBatch(b.cfg)
}
