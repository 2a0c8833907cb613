package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/steveyegge/civic/internal/storage"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// reader runs issue reads against the pool or an open transaction.
type reader struct {
	q          querier
	strictSort bool
	log        *slog.Logger
}

var _ storage.Reader = (*reader)(nil)

func (s *SQLiteStorage) reader(q querier) *reader {
	return &reader{q: q, strictSort: s.strictSort, log: s.log}
}

// RunInReadTransaction executes fn inside a read-only transaction.
//
// In WAL mode the snapshot is fixed by the first read, so writers committing
// while fn runs are invisible to it. The transaction is rolled back if fn
// returns an error or panics.
//
// Example:
//
//	err := store.RunInReadTransaction(ctx, func(r storage.Reader) error {
//	    issues, err := r.GetIssues(ctx, types.IssueFilter{})
//	    if err != nil {
//	        return err
//	    }
//	    stats, err := r.GetStatistics(ctx)
//	    ...
//	})
func (s *SQLiteStorage) RunInReadTransaction(ctx context.Context, fn func(r storage.Reader) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return wrapDBError("begin read transaction", err)
	}
	// Rollback after Commit is a no-op returning sql.ErrTxDone
	defer func() { _ = tx.Rollback() }()

	if err := fn(s.reader(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapDBError("commit read transaction", err)
	}
	return nil
}
