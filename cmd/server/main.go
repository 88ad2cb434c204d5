package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadwaysledger/config"
	"roadwaysledger/db"
	"roadwaysledger/db/mongo"
	"roadwaysledger/db/postgres"
	"roadwaysledger/db/sqlite"
	"roadwaysledger/handlers"
	"roadwaysledger/logger"
	"roadwaysledger/repository"
	"roadwaysledger/routes"
)

func main() {
	// Load config from .env or environment
	cfg := config.LoadConfig()
	log := logger.New("server", cfg.LogLevel)
	logger.SetDefault(log)

	if err := cfg.ValidateServer(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		biltyRepo   repository.BiltyRepository
		userRepo    repository.UserRepository
		initialRepo repository.InitialRepository
		conn        db.DB
	)

	dbType, err := db.ParseDBType(cfg.DBType)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	switch dbType {
	case db.Postgres:
		if err := db.RunMigrations(db.Postgres, cfg.PostgresURL); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(ctx); err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		conn = pg
		biltyRepo = repository.NewPostgresBiltyRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		initialRepo = repository.NewPostgresInitialRepo(pg.Conn)

	case db.SQLite:
		if err := db.RunMigrations(db.SQLite, cfg.SQLitePath); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		lite := sqlite.NewSQLiteDB(cfg.SQLitePath)
		if err := lite.Connect(ctx); err != nil {
			log.Error("sqlite connect failed", "error", err)
			os.Exit(1)
		}
		conn = lite
		biltyRepo = repository.NewSQLiteBiltyRepo(lite.Conn)
		userRepo = repository.NewSQLiteUserRepo(lite.Conn)
		initialRepo = repository.NewSQLiteInitialRepo(lite.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDB)
		if err := mg.Connect(ctx); err != nil {
			log.Error("mongo connect failed", "error", err)
			os.Exit(1)
		}
		conn = mg
		mb := repository.NewMongoBiltyRepo(mg.DB())
		mu := repository.NewMongoUserRepo(mg.DB())
		if err := mb.EnsureIndexes(ctx); err != nil {
			log.Error("mongo bilty indexes failed", "error", err)
			os.Exit(1)
		}
		if err := mu.EnsureIndexes(ctx); err != nil {
			log.Error("mongo user indexes failed", "error", err)
			os.Exit(1)
		}
		biltyRepo, userRepo = mb, mu
		initialRepo = repository.NewMongoInitialRepo(mg.DB())
	}
	defer conn.Disconnect()

	// Handlers
	biltyHandler := &handlers.BiltyHandler{Repo: biltyRepo, Log: log.WithComponent("bilty")}
	userHandler := &handlers.UserHandler{Repo: userRepo, Log: log.WithComponent("users")}
	initialHandler := &handlers.InitialHandler{Repo: initialRepo, Log: log.WithComponent("initial")}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(userHandler, biltyHandler, initialHandler, cfg.CORSOrigins, log.WithComponent("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("server running", "port", cfg.Port, "db_type", cfg.DBType)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
