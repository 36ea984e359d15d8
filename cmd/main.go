package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/go-finances/config"
	"github.com/oksasatya/go-finances/internal/application"
	"github.com/oksasatya/go-finances/internal/application/event"
	"github.com/oksasatya/go-finances/internal/application/notification"
	"github.com/oksasatya/go-finances/internal/container"
	"github.com/oksasatya/go-finances/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-finances/internal/infrastructure/postgres"
	"github.com/oksasatya/go-finances/internal/infrastructure/rediscache"
	"github.com/oksasatya/go-finances/internal/infrastructure/search"
	"github.com/oksasatya/go-finances/internal/infrastructure/session"
	"github.com/oksasatya/go-finances/internal/interface/middleware"
	"github.com/oksasatya/go-finances/internal/router"
	"github.com/oksasatya/go-finances/pkg/helpers"
	"github.com/oksasatya/go-finances/pkg/tracing"
	"github.com/oksasatya/go-finances/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, cfg.AppName, cfg.Env, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	deps := application.Deps{
		Hasher: helpers.BcryptHasher{},
		Logger: logger,
	}

	// Storage
	if cfg.UsesMemoryStorage() {
		logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		deps.Users, deps.Favoreds = store.Users(), store.Favoreds()
		deps.Incomings, deps.Expenses = store.Incomings(), store.Expenses()
		deps.UoW = store
	} else {
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    cfg.DBMaxConns,
			MinConns:    cfg.DBMinConns,
			MaxConnLife: cfg.DBMaxConnLife,
		})
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()

		if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		deps.Users = pginfra.NewUserRepository(pool)
		deps.Favoreds = pginfra.NewFavoredRepository(pool)
		deps.Incomings = pginfra.NewIncomingRepository(pool)
		deps.Expenses = pginfra.NewExpenseRepository(pool)
		deps.UoW = pginfra.NewUnitOfWork(pool, logger)
	}

	// Redis: sessions, rate limits and the favored list cache
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis not reachable at startup")
		}
		deps.Cache = rediscache.NewFavoredListCache(rdb, cfg.FavoredCacheTTL)
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	var sessions *session.Issuer
	if rdb != nil {
		sessions = session.NewIssuer(jwtManager, rdb, logger)
	} else {
		logger.Warn("redis disabled; sessions are stateless and sign out cannot revoke tokens")
		sessions = session.NewIssuer(jwtManager, nil, logger)
	}
	deps.Tokens = sessions

	// GCS for profile images
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		deps.Images = helpers.GCSUploader{Client: gcsClient, Bucket: cfg.GCSBucket}
	}

	// Elasticsearch for favored search
	var favoredIndex *search.FavoredIndex
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(helpers.ESOptions{
			Addrs:    addrs,
			Username: cfg.ElasticsearchUser,
			Password: cfg.ElasticsearchPass,
		})
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		favoredIndex = search.NewFavoredIndex(es, cfg.ESFavoredsIndex)
		if err := favoredIndex.EnsureIndex(ctx); err != nil {
			logger.WithError(err).Warn("elasticsearch index not ready")
		}
		deps.Search = favoredIndex
	}

	// Domain events
	bus := event.NewBus(logger, cfg.EventPublishTimeout)
	subs := notification.Deps{Config: cfg, Logger: logger, Cache: deps.Cache, Contacts: deps.Users}
	if favoredIndex != nil {
		subs.Index = favoredIndex
	}
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.RabbitMQEventsExchange)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; events stay in-process and emails are not sent")
		} else {
			defer pub.Close()
			if cfg.RabbitMQEventsExchange != "" {
				subs.Broker = pub
			}
			if cfg.MailSendEnabled {
				subs.Emails = pub
			}
		}
	}
	notification.Register(bus, subs)
	deps.Events = bus

	m, err := application.Build(deps)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetMediator(m)
	container.SetSessions(sessions)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	reg := router.NewRegistry(r)
	if err := router.InitModules(reg); err != nil {
		log.Fatalf("failed to register modules: %v", err)
	}
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// database/sql over the pgx stdlib driver
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
