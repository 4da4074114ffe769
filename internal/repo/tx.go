package repo

import (
	"context"
	"database/sql"

	"github.com/openclaims/riskprice/internal/db"
)

// Execer is satisfied by both *sql.DB and *sql.Tx so repository writes can
// participate in a caller-scoped transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// WithTx runs fn inside one transaction: commit on nil error, rollback on
// error or panic. This is the boundary the pricing applicator relies on for
// its price-plus-audit dual write.
func WithTx(ctx context.Context, d *db.DB, fn func(tx *sql.Tx) error) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// NextID allocates the next integer id for a table. Runs inside the insert's
// own transaction; the pipeline is single-writer (see the concurrency notes
// in the service layer), so MAX+1 cannot race with itself.
func NextID(ctx context.Context, q Execer, table string) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM "+table).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
