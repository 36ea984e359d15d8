package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, username, password_hash, status, created_at`

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername ignores status: usernames stay reserved after a user is deactivated.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	u := &entity.User{}
	var status int16
	if err := r.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &status, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	u.Status = entity.Status(status)
	return u, nil
}

func (r *UserRepository) ContactOf(ctx context.Context, userID string) (*entity.Contact, error) {
	c := &entity.Contact{}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.phone_number, c.email
		FROM contacts c
		JOIN person_has_contact pc ON pc.contact_id = c.id
		JOIN user_has_person up ON up.person_id = pc.person_id
		WHERE up.user_id = $1
		LIMIT 1
	`, userID)
	if err := row.Scan(&c.ID, &c.PhoneNumber, &c.Email); err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
