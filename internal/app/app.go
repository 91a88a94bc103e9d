// Package app wires the storage, cache, services and HTTP server of
// the subscription dashboard together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/cache"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/config"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/jwt"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/migrations"
	authservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/auth"
	subservice "github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/services/subscription"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/storage/repository"
)

// App owns the HTTP server and its dependencies.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New builds the full application: storage with migrations, cache,
// token maker, services, seeded admin account and routed HTTP server.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.New(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authSvc := authservice.New(db, jwtMaker)
	subSvc := subservice.New(db, db, db, cacheRedis, logger)

	if err := authSvc.EnsureAdminUser(ctx, cfg.AdminSeed.Name, cfg.AdminSeed.Email, cfg.AdminSeed.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("admin account ensured", slog.String("email", cfg.AdminSeed.Email))

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authSvc, subSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		_ = a.cache.Client.Close()
		return err
	}
}
