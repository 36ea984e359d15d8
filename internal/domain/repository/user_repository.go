package repository

import (
	"context"

	"github.com/oksasatya/go-finances/internal/domain/entity"
)

// UserRepository defines the read side of user-related database operations.
// Writes go through UnitOfWork.
type UserRepository interface {
	// GetByUsername returns ErrNotFound when no user has the username, whatever its status.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// ContactOf returns the contact linked to the user's person, or ErrNotFound.
	ContactOf(ctx context.Context, userID string) (*entity.Contact, error)
}
