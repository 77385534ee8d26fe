package sqlgen

import (
	"context"
	"database/sql"
)

// CompoundSelect combines SELECT statements with a set operator. Each
// member renders in full (members end with a newline of their own), with
// the operator keyword on its own line in between; binds run left to
// right through the members.
type CompoundSelect struct {
	cfg     *config
	keyword string
	selects []*SelectBuilder
}

func newCompound(cfg *config, keyword string, selects ...*SelectBuilder) *CompoundSelect {
	if len(selects) == 0 {
		badUsage("compound", "at least one select statement required")
	}
	for _, s := range selects {
		if s == nil {
			badUsage("compound", "select statement must not be nil")
		}
	}
	return &CompoundSelect{cfg: cfg, keyword: keyword, selects: selects}
}

func (c *CompoundSelect) AppendTo(w *Writer) {
	for i, s := range c.selects {
		s.AppendTo(w)
		if i < len(c.selects)-1 {
			w.Appendln(c.keyword)
		}
	}
}

func (c *CompoundSelect) Bind(b Binder, seq *PosSeq) error {
	for _, s := range c.selects {
		if err := s.Bind(b, seq); err != nil {
			return err
		}
	}
	return nil
}

// SQL renders the statement text.
func (c *CompoundSelect) SQL() string { return renderSQL(c.cfg, c) }

// Args runs the bind pass and returns the parameter values in placeholder
// order.
func (c *CompoundSelect) Args() ([]any, error) { return bindArgs(c.cfg, c) }

// Query renders and executes the statement, returning its rows.
func (c *CompoundSelect) Query(ctx context.Context, q ExecQuerier) (*sql.Rows, error) {
	return queryRows(ctx, q, c.cfg, c)
}

func (c *CompoundSelect) String() string { return c.SQL() }
