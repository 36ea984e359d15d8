package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-finances/internal/application/authorization"
	"github.com/oksasatya/go-finances/internal/application/event"
	"github.com/oksasatya/go-finances/internal/application/favored"
	"github.com/oksasatya/go-finances/internal/application/finance"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	"github.com/oksasatya/go-finances/internal/infrastructure/memory"
	"github.com/oksasatya/go-finances/internal/infrastructure/session"
	"github.com/oksasatya/go-finances/pkg/helpers"
)

func memoryDeps(t *testing.T) Deps {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := memory.NewStore()
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	return Deps{
		Users:     store.Users(),
		Favoreds:  store.Favoreds(),
		Incomings: store.Incomings(),
		Expenses:  store.Expenses(),
		UoW:       store,
		Hasher:    helpers.BcryptHasher{Cost: bcrypt.MinCost},
		Tokens:    session.NewIssuer(jwt, nil, logger),
		Events:    event.NewBus(logger, time.Second),
		Logger:    logger,
	}
}

func TestRequestsCoversEveryFeature(t *testing.T) {
	if n := len(Requests()); n != 12 {
		t.Fatalf("expected 12 request types, got %d", n)
	}
	seen := map[string]bool{}
	for _, r := range Requests() {
		if seen[r.String()] {
			t.Fatalf("%s listed twice", r)
		}
		seen[r.String()] = true
	}
}

func TestBuildRegistersEveryRequest(t *testing.T) {
	m, err := Build(memoryDeps(t))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := m.Verify(Requests()...); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestBuildRequiresCoreDependencies(t *testing.T) {
	d := memoryDeps(t)
	d.Tokens = nil
	if _, err := Build(d); !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
	d = memoryDeps(t)
	d.UoW = nil
	if _, err := Build(d); !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("expected missing dependency, got %v", err)
	}
}

func TestEndToEndOverMemoryStore(t *testing.T) {
	m, err := Build(memoryDeps(t))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	acc := mediator.Send[authorization.CreateAccount, authorization.AccountCreated](ctx, m, authorization.CreateAccount{
		Username: "ana", Password: "correct-horse", FirstName: "Ana", LastName: "Silva", Age: 30,
		TaxNumber: "12345678901", PhoneNumber: "+5511999990000",
	})
	if !acc.Success {
		t.Fatalf("create account: %+v", acc)
	}
	sess := mediator.Send[authorization.SignIn, authorization.Session](ctx, m, authorization.SignIn{Username: "ana", Password: "correct-horse"})
	if !sess.Success || sess.Payload.UserID != acc.Payload.UserID {
		t.Fatalf("sign in: %+v", sess)
	}

	reg := mediator.Send[favored.CreateFavored, favored.Registered](ctx, m, favored.CreateFavored{
		BelongToUserID: acc.Payload.UserID, Name: "Maria", TaxNumber: "98765432100",
		Account: &favored.AccountInput{Bank: "001", BankBranch: "1234", BankAccount: "111", BankAccountDigit: "1"},
	})
	if !reg.Success {
		t.Fatalf("create favored: %+v", reg)
	}
	list := mediator.Send[favored.GetFavoredsByUserId, []favored.View](ctx, m, favored.GetFavoredsByUserId{UserID: acc.Payload.UserID})
	if !list.Success || len(list.Payload) != 1 || len(list.Payload[0].Accounts) != 1 {
		t.Fatalf("list favoreds: %+v", list)
	}

	exp := mediator.Send[finance.CreateExpense, finance.Created](ctx, m, finance.CreateExpense{
		UserID: acc.Payload.UserID, FavoredID: reg.Payload.FavoredID, Description: "rent", AmountCents: 150000, SpentOn: "2024-05-01",
	})
	if !exp.Success {
		t.Fatalf("create expense: %+v", exp)
	}
	expenses := mediator.Send[finance.GetExpensesByUserId, []finance.ExpenseView](ctx, m, finance.GetExpensesByUserId{UserID: acc.Payload.UserID})
	if !expenses.Success || len(expenses.Payload) != 1 {
		t.Fatalf("list expenses: %+v", expenses)
	}
}
