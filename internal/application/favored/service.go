// Package favored registers and lists the payees ("favoreds") of a user.
package favored

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/internal/application/event"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/application/outcome"
	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

// ListCache keeps the per-user favored list. Misses and errors fall back to storage.
type ListCache interface {
	Get(ctx context.Context, ownerUserID string) ([]View, bool, error)
	Set(ctx context.Context, ownerUserID string, views []View) error
	Invalidate(ctx context.Context, ownerUserID string) error
}

// Searcher runs free text queries against the favored index.
type Searcher interface {
	Search(ctx context.Context, ownerUserID, query string, size int) ([]Document, error)
}

type Service struct {
	Favoreds repository.FavoredRepository
	UoW      repository.UnitOfWork
	Events   event.Publisher
	Cache    ListCache // optional
	Search   Searcher  // optional; without it search scans the user's favoreds
	Logger   *logrus.Logger

	Now   func() time.Time
	NewID func() string
}

func NewService(favoreds repository.FavoredRepository, uow repository.UnitOfWork, events event.Publisher, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Favoreds: favoreds,
		UoW:      uow,
		Events:   events,
		Logger:   logger,
		Now:      func() time.Time { return time.Now().UTC() },
		NewID:    uuid.NewString,
	}
}

// CreateFavored reads the current state, decides with the dedup rules and writes
// the new rows in one batch. Nothing is re-checked once the write starts; the
// unique account link in storage backs up concurrent duplicates.
func (s *Service) CreateFavored(ctx context.Context, req CreateFavored) mediator.Response[Registered] {
	existing, err := s.Favoreds.FindActive(ctx, req.BelongToUserID, req.TaxNumber)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return outcome.Read[Registered](s.Logger, "find favored", err)
	}
	if errors.Is(err, repository.ErrNotFound) {
		existing = nil
	}

	var linked []entity.Account
	if existing != nil {
		if linked, err = s.Favoreds.AccountsOf(ctx, existing.ID); err != nil {
			return outcome.Read[Registered](s.Logger, "list favored accounts", err)
		}
	}

	decision := Decide(existing, linked, req)
	if !decision.Allowed() {
		s.Logger.WithFields(logrus.Fields{
			"owner_user_id": req.BelongToUserID,
			"outcome":       decision.Outcome.String(),
		}).Info("favored registration rejected")
		return mediator.Fail[Registered](mediator.KindDuplicate, decision.Reason)
	}

	batch := repository.NewBatch()
	out := Registered{}
	if decision.Outcome == AllowFresh {
		f := entity.Favored{
			ID:          s.NewID(),
			OwnerUserID: req.BelongToUserID,
			Name:        strings.TrimSpace(req.Name),
			TaxNumber:   req.TaxNumber,
			Status:      entity.StatusActive,
			CreatedAt:   s.Now(),
		}
		batch.Add(f)
		out.FavoredID = f.ID
	} else {
		out.FavoredID = existing.ID
	}
	if req.Account != nil {
		a := entity.Account{
			ID:               s.NewID(),
			Bank:             req.Account.Bank,
			BankBranch:       req.Account.BankBranch,
			BankAccount:      req.Account.BankAccount,
			BankAccountDigit: req.Account.BankAccountDigit,
			Status:           entity.StatusActive,
		}
		batch.Add(a, entity.FavoredHasAccount{FavoredID: out.FavoredID, AccountID: a.ID})
		out.AccountID = a.ID
	}

	if err := s.UoW.Commit(ctx, batch); err != nil {
		if repository.IsConstraint(err, repository.UniqueAccountFavored) {
			return mediator.Fail[Registered](mediator.KindDuplicate, reasonAccountTaken)
		}
		return outcome.Write[Registered](s.Logger, "create favored", err)
	}

	var ev event.Event
	if decision.Outcome == AllowFresh {
		ev = event.FavoredCreated{
			ID:          out.FavoredID,
			OwnerUserID: req.BelongToUserID,
			Name:        strings.TrimSpace(req.Name),
			TaxNumber:   req.TaxNumber,
			AccountID:   out.AccountID,
		}
	} else {
		ev = event.FavoredAccountLinked{FavoredID: out.FavoredID, AccountID: out.AccountID, OwnerUserID: req.BelongToUserID}
	}
	s.publish(ctx, ev)

	if decision.Outcome == AllowAdditionalAccount {
		return mediator.OK("account added to the existing favored", out)
	}
	return mediator.OK("favored registered successfully", out)
}

// publish never fails the request: the rows are already committed.
func (s *Service) publish(ctx context.Context, ev event.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		s.Logger.WithError(err).WithField("event", ev.EventName()).Warn("post-commit event delivery failed")
	}
}

// GetFavoredsByUserId lists every favored of the user with its accounts.
func (s *Service) GetFavoredsByUserId(ctx context.Context, req GetFavoredsByUserId) mediator.Response[[]View] {
	if s.Cache != nil {
		views, ok, err := s.Cache.Get(ctx, req.UserID)
		if err != nil {
			s.Logger.WithError(err).WithField("user_id", req.UserID).Warn("favored cache read failed")
		}
		if ok {
			return mediator.OK("", views)
		}
	}

	favoreds, err := s.Favoreds.ListByOwner(ctx, req.UserID)
	if err != nil {
		return outcome.Read[[]View](s.Logger, "list favoreds", err)
	}
	views := make([]View, 0, len(favoreds))
	for _, f := range favoreds {
		accounts, err := s.Favoreds.AccountsOf(ctx, f.ID)
		if err != nil {
			return outcome.Read[[]View](s.Logger, "list favored accounts", err)
		}
		views = append(views, toView(f, accounts))
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, req.UserID, views); err != nil {
			s.Logger.WithError(err).WithField("user_id", req.UserID).Warn("favored cache write failed")
		}
	}
	return mediator.OK("", views)
}

// SearchFavoreds queries the index when one is configured and otherwise matches
// the query against name and tax number of the stored favoreds.
func (s *Service) SearchFavoreds(ctx context.Context, req SearchFavoreds) mediator.Response[[]Document] {
	size := req.Size
	if size == 0 {
		size = 10
	}
	if s.Search != nil {
		docs, err := s.Search.Search(ctx, req.UserID, req.Query, size)
		if err == nil {
			return mediator.OK("", docs)
		}
		s.Logger.WithError(err).Warn("favored search failed, scanning storage")
	}

	favoreds, err := s.Favoreds.ListByOwner(ctx, req.UserID)
	if err != nil {
		return outcome.Read[[]Document](s.Logger, "list favoreds", err)
	}
	q := strings.ToLower(strings.TrimSpace(req.Query))
	docs := []Document{}
	for _, f := range favoreds {
		if len(docs) == size {
			break
		}
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(f.TaxNumber, q) {
			docs = append(docs, DocumentOf(f))
		}
	}
	return mediator.OK("", docs)
}

func DocumentOf(f entity.Favored) Document {
	return Document{ID: f.ID, OwnerUserID: f.OwnerUserID, Name: f.Name, TaxNumber: f.TaxNumber}
}

func toView(f entity.Favored, accounts []entity.Account) View {
	v := View{
		ID:        f.ID,
		Name:      f.Name,
		TaxNumber: f.TaxNumber,
		Status:    f.Status.String(),
		CreatedAt: f.CreatedAt,
		Accounts:  make([]AccountView, 0, len(accounts)),
	}
	for _, a := range accounts {
		v.Accounts = append(v.Accounts, AccountView{
			ID:               a.ID,
			Bank:             a.Bank,
			BankBranch:       a.BankBranch,
			BankAccount:      a.BankAccount,
			BankAccountDigit: a.BankAccountDigit,
			Status:           a.Status.String(),
		})
	}
	return v
}
