package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"Murmur/internal/api/handlers/health"
	"Murmur/internal/api/middleware"
	"Murmur/internal/api/routes"
	"Murmur/internal/config"
	"Murmur/internal/core/comments"
	"Murmur/internal/core/events"
	"Murmur/internal/core/follows"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/tags"
	"Murmur/internal/core/users"
	"Murmur/internal/db/memory"
	"Murmur/internal/db/migrations"
	postgresRepo "Murmur/internal/db/postgres"
	"Murmur/internal/db/rediscache"
	"Murmur/internal/kafka"
	"Murmur/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, _ := cfg.SlogLevel() // validated by config.Load
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// repositories is the storage backend every service reads and writes through
type repositories struct {
	posts    posts.Repository
	comments comments.Repository
	follows  follows.Repository
	tags     tags.Repository
	users    users.UserRepository
	pinger   health.Pinger
	close    func() error
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.New()
		if err := memory.Seed(store); err != nil {
			return nil, fmt.Errorf("failed to seed memory store: %w", err)
		}
		logger.Warn("using in-memory storage with demo data; nothing is persisted")
		return &repositories{
			posts:    memory.NewPostRepository(store),
			comments: memory.NewCommentRepository(store),
			follows:  memory.NewFollowRepository(store),
			tags:     memory.NewTagRepository(store),
			users:    memory.NewUserRepository(store),
			close:    func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("connected to database")

	if cfg.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("migrations completed")
	}

	return &repositories{
		posts:    postgresRepo.NewPostRepository(db),
		comments: postgresRepo.NewCommentRepository(db),
		follows:  postgresRepo.NewFollowRepository(db),
		tags:     postgresRepo.NewTagRepository(db),
		users:    postgresRepo.NewUserRepository(db),
		pinger:   db,
		close:    db.Close,
	}, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.SetupTracing(ctx, cfg.OTLPEndpoint, cfg.OTelServiceName)
	if err != nil {
		return err
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(c); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	repos, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		kp, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Warn("failed to close kafka publisher", "error", err)
			}
		}()
		publisher = kp
		logger.Info("publishing activity events", "brokers", cfg.Brokers(), "topic", cfg.KafkaTopic)
	}

	var trendingCache tags.TrendingCache
	if cfg.RedisAddr != "" {
		rdb, err := rediscache.Open(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		trendingCache = rediscache.NewTrendingCache(rdb, cfg.TrendingCacheTTL)
		logger.Info("trending cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.TrendingCacheTTL)
	}

	services := routes.Services{
		Posts:    posts.NewPostService(repos.posts, publisher, logger),
		Comments: comments.NewCommentService(repos.comments, logger),
		Follows:  follows.NewFollowService(repos.follows, publisher, logger),
		Tags:     tags.NewTagService(repos.tags, trendingCache, logger),
		Users:    users.NewUserService(repos.users, logger),
	}

	router := routes.NewRouter(services, routes.Options{
		Auth:    middleware.NewJWTAuth([]byte(cfg.JWTSigningKey), cfg.JWTIssuer, cfg.JWTAudience, logger),
		Metrics: middleware.NewMetrics(),
		Health:  health.NewHandler(repos.pinger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           telemetry.WrapHandler(router, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Murmur API starting", "port", cfg.Port, "storage", cfg.Storage)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
