package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-finances/internal/domain/repository"
)

// classify turns a driver error into a *repository.StorageError.
// SQLSTATE class 23 (integrity constraint violation) is a constraint failure;
// everything else, cancellation included, is reported as unavailable.
func classify(table string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if table == "" {
			table = pgErr.TableName
		}
		if strings.HasPrefix(pgErr.Code, "23") {
			return &repository.StorageError{
				Kind:       repository.ErrConstraint,
				Table:      table,
				Constraint: pgErr.ConstraintName,
				Err:        err,
			}
		}
	}
	return &repository.StorageError{Kind: repository.ErrUnavailable, Table: table, Err: err}
}

// notFound maps pgx.ErrNoRows to repository.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
