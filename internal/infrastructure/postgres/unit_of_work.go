package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

// UnitOfWork writes a batch inside one transaction.
type UnitOfWork struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

func NewUnitOfWork(pool *pgxpool.Pool, logger *logrus.Logger) *UnitOfWork {
	return &UnitOfWork{pool: pool, logger: logger}
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// Commit runs the inserts with ctx, so cancellation aborts the batch. COMMIT and
// ROLLBACK ignore cancellation: once started they always finish.
func (u *UnitOfWork) Commit(ctx context.Context, b *repository.Batch) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &repository.StorageError{Kind: repository.ErrUnavailable, Err: err}
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return classify("", err)
	}
	for _, rec := range b.Ordered() {
		query, args, err := insertStatement(rec)
		if err != nil {
			u.rollback(ctx, tx)
			return &repository.StorageError{Kind: repository.ErrConstraint, Table: rec.TableName(), Err: err}
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			u.rollback(ctx, tx)
			return classify(rec.TableName(), err)
		}
	}
	if err := tx.Commit(context.WithoutCancel(ctx)); err != nil {
		return classify("", err)
	}
	return nil
}

func (u *UnitOfWork) rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && u.logger != nil {
		u.logger.WithError(err).Warn("rollback failed")
	}
}

func insertStatement(rec entity.Record) (string, []any, error) {
	switch r := rec.(type) {
	case entity.User:
		return `INSERT INTO users (id, username, password_hash, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
			[]any{r.ID, r.Username, r.PasswordHash, int16(r.Status), r.CreatedAt}, nil
	case entity.Person:
		return `INSERT INTO persons (id, first_name, last_name, age, tax_number, gender) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]any{r.ID, r.FirstName, r.LastName, r.Age, r.TaxNumber, r.Gender}, nil
	case entity.UserHasPerson:
		return `INSERT INTO user_has_person (user_id, person_id) VALUES ($1, $2)`,
			[]any{r.UserID, r.PersonID}, nil
	case entity.Contact:
		return `INSERT INTO contacts (id, phone_number, email) VALUES ($1, $2, $3)`,
			[]any{r.ID, r.PhoneNumber, r.Email}, nil
	case entity.PersonHasContact:
		return `INSERT INTO person_has_contact (person_id, contact_id) VALUES ($1, $2)`,
			[]any{r.PersonID, r.ContactID}, nil
	case entity.UserImage:
		return `INSERT INTO user_images (id, user_id, path) VALUES ($1, $2, $3)`,
			[]any{r.ID, r.UserID, r.Path}, nil
	case entity.Favored:
		return `INSERT INTO favoreds (id, owner_user_id, name, tax_number, status, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]any{r.ID, r.OwnerUserID, r.Name, r.TaxNumber, int16(r.Status), r.CreatedAt}, nil
	case entity.Account:
		return `INSERT INTO accounts (id, bank, bank_branch, bank_account, bank_account_digit, status) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]any{r.ID, r.Bank, r.BankBranch, r.BankAccount, r.BankAccountDigit, int16(r.Status)}, nil
	case entity.FavoredHasAccount:
		return `INSERT INTO favored_has_account (favored_id, account_id) VALUES ($1, $2)`,
			[]any{r.FavoredID, r.AccountID}, nil
	case entity.Incoming:
		return `INSERT INTO incomings (id, user_id, description, amount_cents, received_on, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			[]any{r.ID, r.UserID, r.Description, r.AmountCents, r.ReceivedOn, int16(r.Status), r.CreatedAt}, nil
	case entity.Expense:
		return `INSERT INTO expenses (id, user_id, favored_id, description, amount_cents, spent_on, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			[]any{r.ID, r.UserID, nullable(r.FavoredID), r.Description, r.AmountCents, r.SpentOn, int16(r.Status), r.CreatedAt}, nil
	}
	return "", nil, fmt.Errorf("unsupported record %T", rec)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
