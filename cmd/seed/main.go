package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-finances/config"
	"github.com/oksasatya/go-finances/internal/application"
	"github.com/oksasatya/go-finances/internal/application/authorization"
	"github.com/oksasatya/go-finances/internal/application/mediator"
	pginfra "github.com/oksasatya/go-finances/internal/infrastructure/postgres"
	"github.com/oksasatya/go-finances/internal/infrastructure/session"
	"github.com/oksasatya/go-finances/pkg/helpers"
)

// seed creates a demo account through the same request pipeline the API uses.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2, MinConns: 1, MaxConnLife: cfg.DBMaxConnLife})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	m, err := application.Build(application.Deps{
		Users:     pginfra.NewUserRepository(pool),
		Favoreds:  pginfra.NewFavoredRepository(pool),
		Incomings: pginfra.NewIncomingRepository(pool),
		Expenses:  pginfra.NewExpenseRepository(pool),
		UoW:       pginfra.NewUnitOfWork(pool, logger),
		Hasher:    helpers.BcryptHasher{},
		Tokens:    session.NewIssuer(jwt, nil, logger),
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	req := authorization.CreateAccount{
		Username:    "demoUser",
		Password:    "password123",
		FirstName:   "Demo",
		LastName:    "User",
		Age:         30,
		TaxNumber:   "12345678909",
		Gender:      "other",
		PhoneNumber: "+5511999999999",
		Email:       "demo@example.com",
	}
	res := mediator.Send[authorization.CreateAccount, authorization.AccountCreated](ctx, m, req)
	switch {
	case res.Success:
		logger.WithField("user_id", res.Payload.UserID).Infof("seeded user %s / %s", req.Username, req.Password)
	case res.Kind == mediator.KindDuplicate:
		logger.Infof("user %s already exists", req.Username)
	default:
		log.Fatalf("failed to seed user: %s", res.Message)
	}
}
