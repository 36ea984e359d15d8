// Package memory is an in-process implementation of the repositories and the unit of work.
// It backs the "memory" storage driver and the application tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

type tables struct {
	users             []entity.User
	persons           []entity.Person
	userHasPerson     []entity.UserHasPerson
	contacts          []entity.Contact
	personHasContact  []entity.PersonHasContact
	userImages        []entity.UserImage
	favoreds          []entity.Favored
	accounts          []entity.Account
	favoredHasAccount []entity.FavoredHasAccount
	incomings         []entity.Incoming
	expenses          []entity.Expense

	// ids holds every primary key; uuids are unique across tables
	ids              map[string]bool
	usernames        map[string]bool
	linkedAccountIDs map[string]bool
}

// Store keeps every table in memory behind one lock.
type Store struct {
	mu sync.RWMutex
	t  tables

	// FailOn, when set, is called before each insert of a commit; a non-nil
	// error aborts the whole batch as if the database had rejected the row.
	FailOn func(rec entity.Record) error
}

func NewStore() *Store {
	return &Store{t: tables{
		ids:              map[string]bool{},
		usernames:        map[string]bool{},
		linkedAccountIDs: map[string]bool{},
	}}
}

var _ repository.UnitOfWork = (*Store)(nil)

// Commit stages every record against a copy of the tables and swaps the copy in
// only when all inserts succeed.
func (s *Store) Commit(ctx context.Context, b *repository.Batch) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.t.clone()
	for _, rec := range b.Ordered() {
		if err := ctx.Err(); err != nil {
			return &repository.StorageError{Kind: repository.ErrUnavailable, Table: rec.TableName(), Err: err}
		}
		if s.FailOn != nil {
			if err := s.FailOn(rec); err != nil {
				return &repository.StorageError{Kind: repository.ErrUnavailable, Table: rec.TableName(), Err: err}
			}
		}
		if err := staged.insert(rec); err != nil {
			return err
		}
	}
	s.t = staged
	return nil
}

func (t tables) clone() tables {
	c := tables{
		users:             append([]entity.User(nil), t.users...),
		persons:           append([]entity.Person(nil), t.persons...),
		userHasPerson:     append([]entity.UserHasPerson(nil), t.userHasPerson...),
		contacts:          append([]entity.Contact(nil), t.contacts...),
		personHasContact:  append([]entity.PersonHasContact(nil), t.personHasContact...),
		userImages:        append([]entity.UserImage(nil), t.userImages...),
		favoreds:          append([]entity.Favored(nil), t.favoreds...),
		accounts:          append([]entity.Account(nil), t.accounts...),
		favoredHasAccount: append([]entity.FavoredHasAccount(nil), t.favoredHasAccount...),
		incomings:         append([]entity.Incoming(nil), t.incomings...),
		expenses:          append([]entity.Expense(nil), t.expenses...),
		ids:               make(map[string]bool, len(t.ids)),
		usernames:         make(map[string]bool, len(t.usernames)),
		linkedAccountIDs:  make(map[string]bool, len(t.linkedAccountIDs)),
	}
	for k := range t.ids {
		c.ids[k] = true
	}
	for k := range t.usernames {
		c.usernames[k] = true
	}
	for k := range t.linkedAccountIDs {
		c.linkedAccountIDs[k] = true
	}
	return c
}

func (t *tables) insert(rec entity.Record) error {
	if d, ok := rec.(entity.Dependent); ok {
		for _, ref := range d.References() {
			if !t.ids[ref] {
				return constraint(rec, rec.TableName()+"_fkey")
			}
		}
	}
	if k, ok := rec.(entity.Keyed); ok {
		if t.ids[k.PrimaryKey()] {
			return constraint(rec, rec.TableName()+"_pkey")
		}
		t.ids[k.PrimaryKey()] = true
	}

	switch r := rec.(type) {
	case entity.User:
		if t.usernames[r.Username] {
			return constraint(rec, repository.UniqueUsername)
		}
		t.usernames[r.Username] = true
		t.users = append(t.users, r)
	case entity.Person:
		t.persons = append(t.persons, r)
	case entity.UserHasPerson:
		t.userHasPerson = append(t.userHasPerson, r)
	case entity.Contact:
		t.contacts = append(t.contacts, r)
	case entity.PersonHasContact:
		t.personHasContact = append(t.personHasContact, r)
	case entity.UserImage:
		t.userImages = append(t.userImages, r)
	case entity.Favored:
		t.favoreds = append(t.favoreds, r)
	case entity.Account:
		t.accounts = append(t.accounts, r)
	case entity.FavoredHasAccount:
		if t.linkedAccountIDs[r.AccountID] {
			return constraint(rec, repository.UniqueAccountFavored)
		}
		t.linkedAccountIDs[r.AccountID] = true
		t.favoredHasAccount = append(t.favoredHasAccount, r)
	case entity.Incoming:
		t.incomings = append(t.incomings, r)
	case entity.Expense:
		t.expenses = append(t.expenses, r)
	default:
		return &repository.StorageError{Kind: repository.ErrConstraint, Table: rec.TableName(), Err: fmt.Errorf("unsupported record %T", rec)}
	}
	return nil
}

func constraint(rec entity.Record, name string) error {
	return &repository.StorageError{Kind: repository.ErrConstraint, Table: rec.TableName(), Constraint: name}
}

// Count returns the number of rows in the named table.
func (s *Store) Count(table string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch table {
	case entity.User{}.TableName():
		return len(s.t.users)
	case entity.Person{}.TableName():
		return len(s.t.persons)
	case entity.UserHasPerson{}.TableName():
		return len(s.t.userHasPerson)
	case entity.Contact{}.TableName():
		return len(s.t.contacts)
	case entity.PersonHasContact{}.TableName():
		return len(s.t.personHasContact)
	case entity.UserImage{}.TableName():
		return len(s.t.userImages)
	case entity.Favored{}.TableName():
		return len(s.t.favoreds)
	case entity.Account{}.TableName():
		return len(s.t.accounts)
	case entity.FavoredHasAccount{}.TableName():
		return len(s.t.favoredHasAccount)
	case entity.Incoming{}.TableName():
		return len(s.t.incomings)
	case entity.Expense{}.TableName():
		return len(s.t.expenses)
	}
	return 0
}

