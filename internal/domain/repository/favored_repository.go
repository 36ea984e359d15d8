package repository

import (
	"context"

	"github.com/oksasatya/go-finances/internal/domain/entity"
)

// FavoredRepository reads favoreds and the bank accounts linked to them.
type FavoredRepository interface {
	// FindActive returns the oldest active favored with the tax number owned by the user,
	// or ErrNotFound.
	FindActive(ctx context.Context, ownerUserID, taxNumber string) (*entity.Favored, error)
	GetByID(ctx context.Context, id string) (*entity.Favored, error)
	// AccountsOf lists accounts linked to the favored through FavoredHasAccount.
	AccountsOf(ctx context.Context, favoredID string) ([]entity.Account, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]entity.Favored, error)
}
