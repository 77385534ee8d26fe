package sqlgen

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync/atomic"
)

// Per-statement row counts with no affected-count information from the
// driver, mirroring the classic batch-update sentinels.
const (
	// SuccessNoInfo records a statement that executed successfully
	// without reporting an affected-row count.
	SuccessNoInfo int64 = -2
	// ExecuteFailed records a statement that failed but whose error the
	// configured handler chose to swallow.
	ExecuteFailed int64 = -3
)

// Stream adapts a fixed collection of statements to the stream form
// Batch.Exec consumes.
func Stream(stmts ...Fragment) iter.Seq[Fragment] {
	return slices.Values(stmts)
}

// TxBeginner starts transactions. *sql.DB satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// ErrorHandler decides what happens when one statement of a batch fails:
// return nil to record the failure and continue, or an error (typically
// the one given, wrapped) to abort the batch.
type ErrorHandler func(err error, stmt Fragment) error

// BatchResult reports the outcome of a batch run. RowCounts holds one
// entry per executed statement, in stream order; failed statements
// swallowed by the error handler record ExecuteFailed.
type BatchResult struct {
	RowCounts []int64
	// Committed is the number of statements made durable by completed
	// commit checkpoints plus the final commit.
	Committed int64
}

// BatchBuilder executes a homogeneous stream of statements through a
// single prepared statement. Every element must render the same SQL text;
// only the first element is rendered, the rest contribute parameter
// values. A builder runs one batch; Cancel may be called from another
// goroutine while Exec is in flight.
type BatchBuilder struct {
	cfg         *config
	flushEvery  int
	commitEvery int
	onError     ErrorHandler
	logger      *slog.Logger
	cancelled   atomic.Bool
}

func newBatch(cfg *config) *BatchBuilder {
	return &BatchBuilder{cfg: cfg, logger: slog.Default()}
}

// FlushEvery executes buffered statements every n elements instead of
// buffering the whole stream. Zero means a single flush at the end.
func (bb *BatchBuilder) FlushEvery(n int) *BatchBuilder {
	if n < 0 {
		badUsage("batch.flush", "flush interval must not be negative")
	}
	bb.flushEvery = n
	return bb
}

// CommitEvery commits every n executed statements, beginning a fresh
// transaction each time. Zero means a single commit at the end. A commit
// checkpoint makes the rows executed so far durable even if the batch
// later fails.
func (bb *BatchBuilder) CommitEvery(n int) *BatchBuilder {
	if n < 0 {
		badUsage("batch.commit", "commit interval must not be negative")
	}
	bb.commitEvery = n
	return bb
}

// OnError installs the per-statement error handler. Without one, the
// first failure aborts the batch.
func (bb *BatchBuilder) OnError(h ErrorHandler) *BatchBuilder {
	bb.onError = h
	return bb
}

// Logger overrides the logger used for checkpoint progress.
func (bb *BatchBuilder) Logger(l *slog.Logger) *BatchBuilder {
	bb.logger = l
	return bb
}

// Cancel asks a running Exec to stop at the next element boundary. Work
// already committed stays committed; the open transaction is rolled back
// and Exec returns without error.
func (bb *BatchBuilder) Cancel() { bb.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (bb *BatchBuilder) Cancelled() bool { return bb.cancelled.Load() }

// batchItem is one buffered parameter set, kept with the fragment it came
// from so the error handler can identify the failing statement.
type batchItem struct {
	args []any
	src  Fragment
}

// batchRun carries the mutable state of one Exec call.
type batchRun struct {
	bb      *BatchBuilder
	db      TxBeginner
	sqlText string
	tx      *sql.Tx
	stmt    *sql.Stmt
	buffer  []batchItem
	pending int // executed but not yet committed
	res     BatchResult
}

// Exec consumes the statement stream and executes it against db. The
// stream is pulled lazily, so it may be generated on the fly; its first
// element fixes the SQL text for the whole batch.
//
// On error or context cancellation the open transaction is rolled back
// and the result reflects only committed work. Cancel is not an error:
// Exec returns the partial result with a nil error.
func (bb *BatchBuilder) Exec(ctx context.Context, db TxBeginner, stmts iter.Seq[Fragment]) (*BatchResult, error) {
	r := &batchRun{bb: bb, db: db}
	err := r.run(ctx, stmts)
	if err != nil {
		return &r.res, err
	}
	return &r.res, nil
}

func (r *batchRun) run(ctx context.Context, stmts iter.Seq[Fragment]) error {
	defer func() {
		if r.tx != nil {
			// Reached only on abort paths; the happy path has already
			// committed and cleared the transaction.
			r.rollback()
		}
	}()

	seq := NewPosSeq()
	for f := range stmts {
		if r.bb.cancelled.Load() {
			r.bb.logger.Debug("batch cancelled", "executed", len(r.res.RowCounts), "committed", r.res.Committed)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.stmt == nil {
			if err := r.start(ctx, f); err != nil {
				return err
			}
		}

		args := NewArgs(r.bb.cfg.dialect)
		seq.Reset()
		if err := f.Bind(args, seq); err != nil {
			if err = r.handle(err, f); err != nil {
				return err
			}
			continue
		}
		r.buffer = append(r.buffer, batchItem{args: args.Values(), src: f})

		if r.bb.flushEvery > 0 && len(r.buffer) >= r.bb.flushEvery {
			if err := r.flush(ctx); err != nil {
				return err
			}
		}
		if r.bb.commitEvery > 0 && r.pending+len(r.buffer) >= r.bb.commitEvery {
			if err := r.flush(ctx); err != nil {
				return err
			}
			if err := r.checkpoint(ctx); err != nil {
				return err
			}
		}
	}

	if r.stmt == nil {
		// Empty stream: nothing was prepared, nothing to commit.
		return nil
	}
	if err := r.flush(ctx); err != nil {
		return err
	}
	return r.finish()
}

// start renders the SQL from the first element and prepares it inside a
// fresh transaction.
func (r *batchRun) start(ctx context.Context, first Fragment) error {
	r.sqlText = renderSQL(r.bb.cfg, first)
	return r.begin(ctx)
}

func (r *batchRun) begin(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlgen: batch: begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, r.sqlText)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlgen: batch: prepare: %w", err)
	}
	r.tx, r.stmt = tx, stmt
	return nil
}

// flush executes the buffered parameter sets through the prepared
// statement, recording one row count per set.
func (r *batchRun) flush(ctx context.Context) error {
	for _, item := range r.buffer {
		res, err := r.stmt.ExecContext(ctx, item.args...)
		if err != nil {
			if err = r.handle(err, item.src); err != nil {
				return err
			}
			continue
		}
		n, err := res.RowsAffected()
		if err != nil {
			n = SuccessNoInfo
		}
		r.res.RowCounts = append(r.res.RowCounts, n)
		r.pending++
	}
	r.buffer = r.buffer[:0]
	return nil
}

// handle routes a per-statement failure through the installed handler. A
// nil return means the failure was swallowed and recorded.
func (r *batchRun) handle(err error, f Fragment) error {
	if r.bb.onError == nil {
		return fmt.Errorf("sqlgen: batch: %w", err)
	}
	if herr := r.bb.onError(err, f); herr != nil {
		return herr
	}
	r.res.RowCounts = append(r.res.RowCounts, ExecuteFailed)
	r.pending++
	return nil
}

// checkpoint commits the current transaction and reopens statement and
// transaction so the batch can continue. database/sql cannot reuse a
// committed transaction, so the prepared statement is rebuilt from the
// rendered text.
func (r *batchRun) checkpoint(ctx context.Context) error {
	if err := r.commit(); err != nil {
		return err
	}
	r.bb.logger.Debug("batch checkpoint", "committed", r.res.Committed)
	return r.begin(ctx)
}

func (r *batchRun) commit() error {
	r.stmt.Close()
	if err := r.tx.Commit(); err != nil {
		r.tx, r.stmt = nil, nil
		return fmt.Errorf("sqlgen: batch: commit: %w", err)
	}
	r.res.Committed += int64(r.pending)
	r.pending = 0
	r.tx, r.stmt = nil, nil
	return nil
}

func (r *batchRun) finish() error {
	if err := r.commit(); err != nil {
		return err
	}
	r.bb.logger.Debug("batch complete", "executed", len(r.res.RowCounts), "committed", r.res.Committed)
	return nil
}

func (r *batchRun) rollback() {
	r.stmt.Close()
	r.tx.Rollback()
	r.tx, r.stmt = nil, nil
}
