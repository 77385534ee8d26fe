package sqlgen

import "strings"

// Fragment is the universal unit of SQL composition: a node that renders
// itself into a Writer and binds zero or more parameter values into a
// Binder at sequential positions.
//
// The one property every Fragment must uphold: Bind visits literal values
// in exactly the left-to-right, depth-first order in which AppendTo renders
// their placeholders. Render order and bind order always agree; a
// positional mismatch between the two passes is the silent bug class this
// package exists to prevent.
type Fragment interface {
	// AppendTo writes the fragment's SQL text.
	AppendTo(w *Writer)
	// Bind writes the fragment's parameter values, advancing seq once per
	// bound value. Fragments without parameters return nil without
	// touching the binder.
	Bind(b Binder, seq *PosSeq) error
}

// NullValuer is implemented by fragments that may denote the SQL NULL
// value. The null-aware equality rewrite consults it.
type NullValuer interface {
	NullValue() bool
}

// representsNull reports whether f denotes the SQL NULL value.
func representsNull(f Fragment) bool {
	n, ok := f.(NullValuer)
	return ok && n.NullValue()
}

// BindFunc binds parameters for a raw fragment.
type BindFunc func(b Binder, seq *PosSeq) error

// Raw is an arbitrary SQL string used verbatim, optionally paired with a
// parameter binder. The text is trusted as given: identifiers, table names
// and expressions routed through Raw are the caller's responsibility.
type Raw struct {
	sql  string
	bind BindFunc
}

// NewRaw converts an arbitrary string to a SQL fragment.
func NewRaw(sql string) *Raw { return &Raw{sql: sql} }

// NewRawBind converts an arbitrary string and a parameter binder to a SQL
// fragment. The string should contain one placeholder per value the binder
// sets.
func NewRawBind(sql string, bind BindFunc) *Raw {
	return &Raw{sql: sql, bind: bind}
}

func (r *Raw) AppendTo(w *Writer) { w.Append(r.sql) }

func (r *Raw) Bind(b Binder, seq *PosSeq) error {
	if r.bind == nil {
		return nil
	}
	return r.bind(b, seq)
}

// NullValue reports whether the raw text is the NULL keyword.
func (r *Raw) NullValue() bool {
	return strings.EqualFold(strings.TrimSpace(r.sql), "NULL")
}

// SQL returns the raw text directly; it is constant, so no render pass is
// needed.
func (r *Raw) SQL() string { return r.sql }

func (r *Raw) isCondition() {}

// writerOp is a render-only pseudo-fragment used to drive the Writer state
// from inside composite fragments.
type writerOp func(w *Writer)

func (op writerOp) AppendTo(w *Writer)         { op(w) }
func (op writerOp) Bind(Binder, *PosSeq) error { return nil }

var (
	newlineIndent Fragment = writerOp(func(w *Writer) { w.Newline(); w.Indent() })
	dedent        Fragment = writerOp(func(w *Writer) { w.Dedent() })
)

// nullKeyword renders the literal NULL keyword and binds nothing.
var nullKeyword Fragment = NewRaw("NULL")

// composite renders a fixed sequence of fragments and binds them in the
// same order.
type composite []Fragment

func compose(frags ...Fragment) composite { return composite(frags) }

func (c composite) AppendTo(w *Writer) {
	for _, f := range c {
		f.AppendTo(w)
	}
}

func (c composite) Bind(b Binder, seq *PosSeq) error {
	for _, f := range c {
		if err := f.Bind(b, seq); err != nil {
			return err
		}
	}
	return nil
}

// parens wraps a fragment in parentheses. With multiline set, the wrapped
// fragment starts on a fresh indented line and the closing parenthesis
// returns to the enclosing level.
func parens(f Fragment, multiline bool) Fragment {
	if multiline {
		return compose(NewRaw("("), newlineIndent, f, dedent, NewRaw(")"))
	}
	return compose(NewRaw("("), f, NewRaw(")"))
}
