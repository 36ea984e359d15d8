package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

type FavoredRepository struct {
	pool *pgxpool.Pool
}

func NewFavoredRepository(pool *pgxpool.Pool) *FavoredRepository {
	return &FavoredRepository{pool: pool}
}

const favoredColumns = `id, owner_user_id, name, tax_number, status, created_at`

func scanFavored(row pgx.Row) (entity.Favored, error) {
	var f entity.Favored
	var status int16
	if err := row.Scan(&f.ID, &f.OwnerUserID, &f.Name, &f.TaxNumber, &status, &f.CreatedAt); err != nil {
		return f, err
	}
	f.Status = entity.Status(status)
	return f, nil
}

func (r *FavoredRepository) FindActive(ctx context.Context, ownerUserID, taxNumber string) (*entity.Favored, error) {
	f, err := scanFavored(r.pool.QueryRow(ctx, `
		SELECT `+favoredColumns+`
		FROM favoreds
		WHERE owner_user_id = $1 AND tax_number = $2 AND status = $3
		ORDER BY created_at
		LIMIT 1
	`, ownerUserID, taxNumber, int16(entity.StatusActive)))
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *FavoredRepository) GetByID(ctx context.Context, id string) (*entity.Favored, error) {
	f, err := scanFavored(r.pool.QueryRow(ctx, `SELECT `+favoredColumns+` FROM favoreds WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (r *FavoredRepository) AccountsOf(ctx context.Context, favoredID string) ([]entity.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.bank, a.bank_branch, a.bank_account, a.bank_account_digit, a.status
		FROM accounts a
		JOIN favored_has_account fa ON fa.account_id = a.id
		WHERE fa.favored_id = $1
	`, favoredID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Account{}
	for rows.Next() {
		var a entity.Account
		var status int16
		if err := rows.Scan(&a.ID, &a.Bank, &a.BankBranch, &a.BankAccount, &a.BankAccountDigit, &status); err != nil {
			return nil, err
		}
		a.Status = entity.Status(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *FavoredRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]entity.Favored, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+favoredColumns+` FROM favoreds WHERE owner_user_id = $1 ORDER BY created_at`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Favored{}
	for rows.Next() {
		f, err := scanFavored(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

var _ repository.FavoredRepository = (*FavoredRepository)(nil)
