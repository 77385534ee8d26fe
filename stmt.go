package sqlgen

import (
	"context"
	"database/sql"
	"fmt"
)

// ExecQuerier is the subset of database/sql used to run rendered
// statements. *sql.DB, *sql.Tx and *sql.Conn all satisfy it.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// renderSQL renders a fragment with the configured debug setting.
func renderSQL(cfg *config, f Fragment) string {
	w := newWriter(cfg.debug)
	f.AppendTo(w)
	return w.String()
}

// bindArgs runs the bind pass of a fragment against an ordered value
// collector and returns the values in placeholder order.
func bindArgs(cfg *config, f Fragment) ([]any, error) {
	args := NewArgs(cfg.dialect)
	if err := f.Bind(args, NewPosSeq()); err != nil {
		return nil, fmt.Errorf("sqlgen: bind: %w", err)
	}
	return args.Values(), nil
}

func queryRows(ctx context.Context, q ExecQuerier, cfg *config, f Fragment) (*sql.Rows, error) {
	args, err := bindArgs(cfg, f)
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, renderSQL(cfg, f), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlgen: query: %w", err)
	}
	return rows, nil
}

func execStmt(ctx context.Context, e ExecQuerier, cfg *config, f Fragment) (sql.Result, error) {
	args, err := bindArgs(cfg, f)
	if err != nil {
		return nil, err
	}
	res, err := e.ExecContext(ctx, renderSQL(cfg, f), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlgen: exec: %w", err)
	}
	return res, nil
}
