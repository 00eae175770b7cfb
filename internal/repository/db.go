package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx. Every
// repository runs against it, so the same repository code serves both direct
// calls and calls inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories bundles the catalog repositories bound to one DBTX.
type Repositories struct {
	Products   ProductRepository
	Images     ProductImageRepository
	Brands     BrandRepository
	Categories CategoryRepository
}

// NewRepositories creates all catalog repositories over the given querier
func NewRepositories(db DBTX) Repositories {
	return Repositories{
		Products:   NewProductRepository(db),
		Images:     NewProductImageRepository(db),
		Brands:     NewBrandRepository(db),
		Categories: NewCategoryRepository(db),
	}
}

// TxRunner executes a function inside a single database transaction, handing it
// repositories bound to that transaction. The transaction commits if fn returns
// nil and rolls back otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(r Repositories) error) error
}

type sqlTxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner over a sql.DB
func NewTxRunner(db *sql.DB) TxRunner {
	return &sqlTxRunner{db: db}
}

func (r *sqlTxRunner) RunInTx(ctx context.Context, fn func(r Repositories) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
