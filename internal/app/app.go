package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Ximianer/lightwave-erp/internal/config"
	"github.com/Ximianer/lightwave-erp/internal/firestore"
	redisx "github.com/Ximianer/lightwave-erp/internal/redis"
	fsrepo "github.com/Ximianer/lightwave-erp/internal/repository/firestore"
	redisrepo "github.com/Ximianer/lightwave-erp/internal/repository/redis"
	"github.com/Ximianer/lightwave-erp/internal/service"
	"github.com/Ximianer/lightwave-erp/internal/service/auth"
	httpgin "github.com/Ximianer/lightwave-erp/internal/transport/http/gin"
	"github.com/Ximianer/lightwave-erp/internal/watch"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	watcher    *watch.Watcher
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	fsClient, err := firestore.New(context.Background(), firestore.Config{
		ProjectID:       cfg.Firestore.ProjectID,
		CredentialsFile: cfg.Firestore.CredentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firestore: %w", err)
	}

	rdb, err := redisx.New(context.Background(), redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := fsrepo.NewStore(fsClient, cfg.Firestore.AppID)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewCollectionsPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl", 10, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	// Initialize services
	services := service.NewServices(store, cache, pubsub, limiter, service.Config{
		Auth: auth.Config{},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, cache, pubsub, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
		watcher: watch.New(store, cache, pubsub, logger),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Start collection listeners
	g.Go(func() error {
		a.logger.Info("collection watcher starting")
		if err := a.watcher.Run(gCtx); err != nil && err != context.Canceled {
			return fmt.Errorf("collection watcher failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
