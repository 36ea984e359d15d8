package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

type IncomingRepository struct {
	pool *pgxpool.Pool
}

func NewIncomingRepository(pool *pgxpool.Pool) *IncomingRepository {
	return &IncomingRepository{pool: pool}
}

func (r *IncomingRepository) ListByUser(ctx context.Context, userID string) ([]entity.Incoming, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, description, amount_cents, received_on, status, created_at
		FROM incomings
		WHERE user_id = $1
		ORDER BY received_on, created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Incoming{}
	for rows.Next() {
		var i entity.Incoming
		var status int16
		if err := rows.Scan(&i.ID, &i.UserID, &i.Description, &i.AmountCents, &i.ReceivedOn, &status, &i.CreatedAt); err != nil {
			return nil, err
		}
		i.Status = entity.Status(status)
		out = append(out, i)
	}
	return out, rows.Err()
}

type ExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

func (r *ExpenseRepository) ListByUser(ctx context.Context, userID string) ([]entity.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, favored_id, description, amount_cents, spent_on, status, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY spent_on, created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Expense{}
	for rows.Next() {
		var e entity.Expense
		var favoredID *string
		var status int16
		if err := rows.Scan(&e.ID, &e.UserID, &favoredID, &e.Description, &e.AmountCents, &e.SpentOn, &status, &e.CreatedAt); err != nil {
			return nil, err
		}
		if favoredID != nil {
			e.FavoredID = *favoredID
		}
		e.Status = entity.Status(status)
		out = append(out, e)
	}
	return out, rows.Err()
}

var (
	_ repository.IncomingRepository = (*IncomingRepository)(nil)
	_ repository.ExpenseRepository  = (*ExpenseRepository)(nil)
)
