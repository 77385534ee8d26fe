package sqlgen

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/syssam/sqlgen/dialect"
)

// PosSeq is the mutable 1-based parameter position counter handed through
// the bind pass. Reset rewinds it for reuse across batch iterations.
type PosSeq struct {
	next int
}

// NewPosSeq returns a counter positioned at the first bind position.
func NewPosSeq() *PosSeq { return &PosSeq{next: 1} }

// Next returns the current position and advances the counter.
func (s *PosSeq) Next() int {
	n := s.next
	s.next++
	return n
}

// Reset rewinds the counter to the first bind position.
func (s *PosSeq) Reset() { s.next = 1 }

// Binder receives parameter values at 1-based positions. It is the
// prepared-statement abstraction the bind pass writes into.
type Binder interface {
	// Set binds v at the given position.
	Set(pos int, v any) error
	// SetNull binds the SQL NULL value at the given position, typed as
	// closely as the target dialect allows.
	SetNull(pos int) error
}

// Args is the stock Binder for database/sql: it collects values in
// position order so they can be passed variadically to ExecContext or
// QueryContext. Positions must arrive strictly in sequence; an
// out-of-order position means a fragment violated the render/bind order
// contract and is reported as an error.
type Args struct {
	dialect dialect.Dialect
	vals    []any
}

// NewArgs returns an empty collector for the given dialect.
func NewArgs(d dialect.Dialect) *Args { return &Args{dialect: d} }

// Set implements Binder.
func (a *Args) Set(pos int, v any) error {
	if pos != len(a.vals)+1 {
		return fmt.Errorf("sqlgen: parameter bound at position %d, expected %d", pos, len(a.vals)+1)
	}
	a.vals = append(a.vals, v)
	return nil
}

// SetNull implements Binder. The Oracle driver rejects an untyped NULL, so
// for that dialect the value is bound as a null of a numeric type.
func (a *Args) SetNull(pos int) error {
	if a.dialect == dialect.Oracle {
		return a.Set(pos, sql.NullInt64{})
	}
	return a.Set(pos, nil)
}

// Values returns the collected values in bind order.
func (a *Args) Values() []any { return a.vals }

// ValueKind tags the semantic type of a parameter value. A single bind
// function dispatches on the kind, replacing a per-type method per
// supported scalar.
type ValueKind uint8

const (
	// KindNull is the SQL NULL value.
	KindNull ValueKind = iota
	// KindString is a character value.
	KindString
	// KindBool is a boolean value.
	KindBool
	// KindInt is any signed or unsigned Go integer, bound as int64.
	KindInt
	// KindFloat is a float32 or float64, bound as float64.
	KindFloat
	// KindBytes is a raw byte sequence.
	KindBytes
	// KindTime is a temporal value.
	KindTime
	// KindValuer is a value that converts itself through driver.Valuer
	// (uuid.UUID, decimal types, large-object handles and the like).
	KindValuer
)

// String returns the kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	case KindValuer:
		return "valuer"
	}
	return "unknown"
}

// kindOf classifies a value. Unsupported types are rejected at builder-call
// time, before any SQL is rendered.
func kindOf(v any) (ValueKind, error) {
	switch v.(type) {
	case nil:
		return KindNull, nil
	case string:
		return KindString, nil
	case bool:
		return KindBool, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return KindInt, nil
	case float32, float64:
		return KindFloat, nil
	case []byte:
		return KindBytes, nil
	case time.Time:
		return KindTime, nil
	case driver.Valuer:
		return KindValuer, nil
	default:
		return 0, fmt.Errorf("sqlgen: unsupported parameter type %T", v)
	}
}

// normalize converts v to the canonical representation for its kind.
func normalize(v any, kind ValueKind) any {
	switch kind {
	case KindInt:
		switch n := v.(type) {
		case int:
			return int64(n)
		case int8:
			return int64(n)
		case int16:
			return int64(n)
		case int32:
			return int64(n)
		case int64:
			return n
		case uint:
			return int64(n)
		case uint8:
			return int64(n)
		case uint16:
			return int64(n)
		case uint32:
			return int64(n)
		}
	case KindFloat:
		if f, ok := v.(float32); ok {
			return float64(f)
		}
	}
	return v
}

// Param wraps a typed value as a placeholder fragment. It renders the
// placeholder text (by default a bare "?", or a caller-supplied template
// containing exactly one "?", such as "? rows"), and binds the value at
// the next sequential position. A nil value represents SQL NULL.
//
// Params are created at builder-call time and are immutable afterwards.
type Param struct {
	sql  string
	v    any
	kind ValueKind
}

// NewParam wraps v as a "?" placeholder. It panics with a *StateError when
// v's type is not a supported parameter type.
func NewParam(v any) *Param {
	return newParamTemplate("?", v)
}

// NewParamTemplate wraps v with a custom placeholder template. The
// template must contain a "?" token.
func NewParamTemplate(tmpl string, v any) *Param {
	return newParamTemplate(tmpl, v)
}

func newParamTemplate(tmpl string, v any) *Param {
	if !strings.Contains(tmpl, "?") {
		badUsage("param", "placeholder template must contain a ? token")
	}
	kind, err := kindOf(v)
	if err != nil {
		badUsage("param", err.Error())
	}
	return &Param{sql: tmpl, v: v, kind: kind}
}

// Kind returns the semantic kind of the wrapped value.
func (p *Param) Kind() ValueKind { return p.kind }

func (p *Param) AppendTo(w *Writer) {
	w.Append(p.sql)
	if w.Debug() {
		w.Append("  /* ")
		if p.v == nil {
			w.Append("null")
		} else {
			w.Append(EscapeComment(fmt.Sprint(p.v)))
		}
		w.Append(" */")
	}
}

func (p *Param) Bind(b Binder, seq *PosSeq) error {
	if p.kind == KindNull {
		return b.SetNull(seq.Next())
	}
	return b.Set(seq.Next(), normalize(p.v, p.kind))
}

// NullValue reports whether the wrapped value is SQL NULL.
func (p *Param) NullValue() bool { return p.kind == KindNull }
