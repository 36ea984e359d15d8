// Package finance records and lists the incomings and expenses of a user.
package finance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/application/outcome"
	"github.com/oksasatya/go-finances/internal/domain/entity"
	"github.com/oksasatya/go-finances/internal/domain/repository"
)

type Service struct {
	Incomings repository.IncomingRepository
	Expenses  repository.ExpenseRepository
	Favoreds  repository.FavoredRepository
	UoW       repository.UnitOfWork
	Logger    *logrus.Logger

	Now   func() time.Time
	NewID func() string
}

func NewService(incomings repository.IncomingRepository, expenses repository.ExpenseRepository, favoreds repository.FavoredRepository, uow repository.UnitOfWork, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Incomings: incomings,
		Expenses:  expenses,
		Favoreds:  favoreds,
		UoW:       uow,
		Logger:    logger,
		Now:       func() time.Time { return time.Now().UTC() },
		NewID:     uuid.NewString,
	}
}

func (s *Service) CreateIncoming(ctx context.Context, req CreateIncoming) mediator.Response[Created] {
	// layout already checked by the isodate rule
	receivedOn, _ := time.Parse(dateLayout, req.ReceivedOn)
	in := entity.Incoming{
		ID:          s.NewID(),
		UserID:      req.UserID,
		Description: strings.TrimSpace(req.Description),
		AmountCents: req.AmountCents,
		ReceivedOn:  receivedOn,
		Status:      entity.StatusActive,
		CreatedAt:   s.Now(),
	}
	if err := s.UoW.Commit(ctx, repository.NewBatch(in)); err != nil {
		return outcome.Write[Created](s.Logger, "create incoming", err)
	}
	return mediator.OK("incoming registered successfully", Created{ID: in.ID})
}

func (s *Service) GetIncomingsByUserId(ctx context.Context, req GetIncomingsByUserId) mediator.Response[[]IncomingView] {
	incomings, err := s.Incomings.ListByUser(ctx, req.UserID)
	if err != nil {
		return outcome.Read[[]IncomingView](s.Logger, "list incomings", err)
	}
	out := make([]IncomingView, 0, len(incomings))
	for _, i := range incomings {
		out = append(out, IncomingView{
			ID:          i.ID,
			Description: i.Description,
			AmountCents: i.AmountCents,
			ReceivedOn:  i.ReceivedOn.Format(dateLayout),
			Status:      i.Status.String(),
			CreatedAt:   i.CreatedAt,
		})
	}
	return mediator.OK("", out)
}

// CreateExpense only links favoreds owned by the same user.
func (s *Service) CreateExpense(ctx context.Context, req CreateExpense) mediator.Response[Created] {
	if req.FavoredID != "" {
		f, err := s.Favoreds.GetByID(ctx, req.FavoredID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && f.OwnerUserID != req.UserID) {
			return mediator.Fail[Created](mediator.KindNotFound, "favored not found")
		}
		if err != nil {
			return outcome.Read[Created](s.Logger, "find favored", err)
		}
	}

	spentOn, _ := time.Parse(dateLayout, req.SpentOn)
	e := entity.Expense{
		ID:          s.NewID(),
		UserID:      req.UserID,
		FavoredID:   req.FavoredID,
		Description: strings.TrimSpace(req.Description),
		AmountCents: req.AmountCents,
		SpentOn:     spentOn,
		Status:      entity.StatusActive,
		CreatedAt:   s.Now(),
	}
	if err := s.UoW.Commit(ctx, repository.NewBatch(e)); err != nil {
		return outcome.Write[Created](s.Logger, "create expense", err)
	}
	return mediator.OK("expense registered successfully", Created{ID: e.ID})
}

func (s *Service) GetExpensesByUserId(ctx context.Context, req GetExpensesByUserId) mediator.Response[[]ExpenseView] {
	expenses, err := s.Expenses.ListByUser(ctx, req.UserID)
	if err != nil {
		return outcome.Read[[]ExpenseView](s.Logger, "list expenses", err)
	}
	out := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, ExpenseView{
			ID:          e.ID,
			FavoredID:   e.FavoredID,
			Description: e.Description,
			AmountCents: e.AmountCents,
			SpentOn:     e.SpentOn.Format(dateLayout),
			Status:      e.Status.String(),
			CreatedAt:   e.CreatedAt,
		})
	}
	return mediator.OK("", out)
}
