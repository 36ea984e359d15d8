package repository

import (
	"context"

	"github.com/oksasatya/go-finances/internal/domain/entity"
)

type IncomingRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Incoming, error)
}

type ExpenseRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Expense, error)
}
