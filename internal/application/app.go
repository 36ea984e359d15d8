// Package application composes the request handlers of every feature package
// into one mediator.
package application

import (
	"errors"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/internal/application/authorization"
	"github.com/oksasatya/go-finances/internal/application/event"
	"github.com/oksasatya/go-finances/internal/application/favored"
	"github.com/oksasatya/go-finances/internal/application/finance"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/domain/repository"
	"github.com/oksasatya/go-finances/pkg/validation"
)

var ErrMissingDependency = errors.New("missing dependency")

type Deps struct {
	Users     repository.UserRepository
	Favoreds  repository.FavoredRepository
	Incomings repository.IncomingRepository
	Expenses  repository.ExpenseRepository
	UoW       repository.UnitOfWork

	Hasher authorization.PasswordHasher
	Tokens authorization.TokenIssuer
	Events event.Publisher

	// optional
	Images authorization.ImageStore
	Cache  favored.ListCache
	Search favored.Searcher

	Logger *logrus.Logger
}

// Requests lists every request type the application serves.
func Requests() []reflect.Type {
	var out []reflect.Type
	out = append(out, authorization.Requests()...)
	out = append(out, favored.Requests()...)
	out = append(out, finance.Requests()...)
	return out
}

// Build registers every handler with its rule-set and fails unless all of
// Requests() are routable.
func Build(d Deps) (*mediator.Mediator, error) {
	if d.Users == nil || d.Favoreds == nil || d.Incomings == nil || d.Expenses == nil || d.UoW == nil {
		return nil, errors.Join(ErrMissingDependency, errors.New("repositories and unit of work are required"))
	}
	if d.Hasher == nil || d.Tokens == nil {
		return nil, errors.Join(ErrMissingDependency, errors.New("hasher and token issuer are required"))
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}

	v := validation.New()
	m := mediator.New(d.Logger)

	auth := authorization.NewService(d.Users, d.UoW, d.Hasher, d.Tokens, d.Events, d.Logger)
	auth.Images = d.Images
	if err := authorization.Register(m, v, auth); err != nil {
		return nil, err
	}

	fav := favored.NewService(d.Favoreds, d.UoW, d.Events, d.Logger)
	fav.Cache = d.Cache
	fav.Search = d.Search
	if err := favored.Register(m, v, fav); err != nil {
		return nil, err
	}

	fin := finance.NewService(d.Incomings, d.Expenses, d.Favoreds, d.UoW, d.Logger)
	if err := finance.Register(m, v, fin); err != nil {
		return nil, err
	}

	if err := m.Verify(Requests()...); err != nil {
		return nil, err
	}
	return m, nil
}
