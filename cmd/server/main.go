package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lalith-99/propmaster/internal/api"
	"github.com/lalith-99/propmaster/internal/auth"
	"github.com/lalith-99/propmaster/internal/config"
	"github.com/lalith-99/propmaster/internal/db"
	"github.com/lalith-99/propmaster/internal/events"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/observ"
	"github.com/lalith-99/propmaster/internal/repository"
	"github.com/lalith-99/propmaster/internal/repository/memory"
	"github.com/lalith-99/propmaster/internal/repository/postgres"
	"github.com/lalith-99/propmaster/internal/settings"
	"github.com/lalith-99/propmaster/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ---------------------------------------------------------------
	// 1. Config and logger
	// ---------------------------------------------------------------
	envErr := godotenv.Load() // optional .env for local runs

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel, cfg.Workspace)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	if envErr == nil {
		logger.Debug("loaded .env")
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---------------------------------------------------------------
	// 2. Persistence. No DATABASE_URL means everything lives in memory
	//    and is gone on restart.
	// ---------------------------------------------------------------
	var (
		snapshots repository.SnapshotRepository
		users     repository.UserRepository
	)
	if cfg.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer database.Close()

		if err := postgres.EnsureSchema(ctx, database.Pool()); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		snapshots = postgres.NewSnapshotStore(database.Pool())
		users = postgres.NewUserStore(database.Pool())
	} else {
		logger.Warn("DATABASE_URL not set, running in memory")
		snapshots = memory.NewSnapshotStore()
		users = memory.NewUserStore()
	}

	// ---------------------------------------------------------------
	// 3. Preferences: Redis when configured, memory otherwise.
	// ---------------------------------------------------------------
	var kv settings.KVStore = settings.NewMemoryKVStore()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		kv = settings.NewRedisKVStore(client)
		logger.Info("connected to redis", zap.String("addr", opts.Addr))
	}
	prefs := settings.NewPreferences(kv, cfg.Workspace, logger)

	// ---------------------------------------------------------------
	// 4. Workspace state
	// ---------------------------------------------------------------
	workspace := repository.Workspace{Repo: snapshots, Name: cfg.Workspace}
	state, err := store.LoadOrDefault(ctx, workspace, cfg.SeedDemo)
	if err != nil {
		return err
	}
	if len(state.AuditLog) == 0 {
		state.AuditLog = prefs.AuditLog(ctx)
	}

	st := store.New(state, store.Options{
		Persister:        workspace,
		StrictReferences: cfg.StrictReferences,
		Logger:           logger,
	})

	hub := events.NewHub(logger)
	go hub.Run(ctx)
	st.Subscribe(hub.Publish)
	st.Subscribe(prefs.MirrorAuditLog(state.AuditLog))

	if err := ensureManager(ctx, users, cfg); err != nil {
		return err
	}

	// ---------------------------------------------------------------
	// 5. HTTP server with graceful shutdown
	// ---------------------------------------------------------------
	router := api.NewRouter(api.Deps{
		Store:       st,
		Prefs:       prefs,
		Users:       users,
		Hub:         hub,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting PropMaster",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("workspace", cfg.Workspace),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ensureManager creates the bootstrap admin account on first start.
func ensureManager(ctx context.Context, users repository.UserRepository, cfg *config.Config) error {
	existing, err := users.GetByEmail(ctx, cfg.ManagerEmail)
	if err != nil {
		return fmt.Errorf("look up manager: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.ManagerPassword)
	if err != nil {
		return err
	}
	_, err = users.Create(ctx, models.User{
		Name:         "Admin",
		Email:        cfg.ManagerEmail,
		Role:         models.RoleAdmin,
		PasswordHash: hash,
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicateEmail) {
		return fmt.Errorf("create manager: %w", err)
	}
	return nil
}
