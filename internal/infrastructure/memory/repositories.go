package memory

import (
	"context"

	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

type UserRepository struct{ s *Store }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.t.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.t.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) ContactOf(_ context.Context, userID string) (*entity.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	personID := ""
	for _, j := range r.s.t.userHasPerson {
		if j.UserID == userID {
			personID = j.PersonID
			break
		}
	}
	for _, j := range r.s.t.personHasContact {
		if j.PersonID != personID {
			continue
		}
		for _, c := range r.s.t.contacts {
			if c.ID == j.ContactID {
				c := c
				return &c, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

type FavoredRepository struct{ s *Store }

func (s *Store) Favoreds() *FavoredRepository { return &FavoredRepository{s: s} }

func (r *FavoredRepository) FindActive(_ context.Context, ownerUserID, taxNumber string) (*entity.Favored, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.t.favoreds {
		if f.OwnerUserID == ownerUserID && f.TaxNumber == taxNumber && f.Status == entity.StatusActive {
			f := f
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *FavoredRepository) GetByID(_ context.Context, id string) (*entity.Favored, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.t.favoreds {
		if f.ID == id {
			f := f
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *FavoredRepository) AccountsOf(_ context.Context, favoredID string) ([]entity.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Account{}
	for _, j := range r.s.t.favoredHasAccount {
		if j.FavoredID != favoredID {
			continue
		}
		for _, a := range r.s.t.accounts {
			if a.ID == j.AccountID {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (r *FavoredRepository) ListByOwner(_ context.Context, ownerUserID string) ([]entity.Favored, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Favored{}
	for _, f := range r.s.t.favoreds {
		if f.OwnerUserID == ownerUserID {
			out = append(out, f)
		}
	}
	return out, nil
}

type IncomingRepository struct{ s *Store }

func (s *Store) Incomings() *IncomingRepository { return &IncomingRepository{s: s} }

func (r *IncomingRepository) ListByUser(_ context.Context, userID string) ([]entity.Incoming, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Incoming{}
	for _, i := range r.s.t.incomings {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

type ExpenseRepository struct{ s *Store }

func (s *Store) Expenses() *ExpenseRepository { return &ExpenseRepository{s: s} }

func (r *ExpenseRepository) ListByUser(_ context.Context, userID string) ([]entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.Expense{}
	for _, e := range r.s.t.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.FavoredRepository  = (*FavoredRepository)(nil)
	_ repository.IncomingRepository = (*IncomingRepository)(nil)
	_ repository.ExpenseRepository  = (*ExpenseRepository)(nil)
)
