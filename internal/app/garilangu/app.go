// Package garilangu wires the API server: storage, cache, services,
// routes and the HTTP listener.
package garilangu

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/garilangu/gari-langu/internal/cache"
	"github.com/garilangu/gari-langu/internal/config"
	"github.com/garilangu/gari-langu/internal/lib/jwt"
	"github.com/garilangu/gari-langu/internal/lib/smtp"
	"github.com/garilangu/gari-langu/internal/migrations"
	"github.com/garilangu/gari-langu/internal/notify"
	authservice "github.com/garilangu/gari-langu/internal/services/auth"
	carservice "github.com/garilangu/gari-langu/internal/services/car"
	dispatchservice "github.com/garilangu/gari-langu/internal/services/dispatch"
	notificationservice "github.com/garilangu/gari-langu/internal/services/notification"
	paymentservice "github.com/garilangu/gari-langu/internal/services/payment"
	reminderservice "github.com/garilangu/gari-langu/internal/services/reminder"
	servicelogservice "github.com/garilangu/gari-langu/internal/services/servicelog"
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

// App is the API server with its dependencies.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New builds the App: connects storage and cache, runs migrations and
// registers all routes.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	migrationsPath := cfg.MigrationsPath
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err = migrations.Run(db.DB, migrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	emailSender := notify.NewEmailSender(smtp.NewTransport(cfg, logger), logger)
	smsSender := notify.NewSMSSender(cfg.SMSGateway, logger)

	authSvc := authservice.NewAuthService(db, jwtMaker, cfg.TrialDays)
	carSvc := carservice.New(db, logger)
	serviceLogSvc := servicelogservice.New(db, logger)
	reminderSvc := reminderservice.New(db, logger)
	paymentSvc := paymentservice.New(db, cacheRedis, logger)
	notificationSvc := notificationservice.New(db, logger)
	dispatcher := dispatchservice.New(db, emailSender, smsSender, cfg.LookaheadDays, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:          authSvc,
		Cars:          carSvc,
		ServiceLog:    serviceLogSvc,
		Reminders:     reminderSvc,
		Payments:      paymentSvc,
		Notifications: notificationSvc,
		Dispatcher:    dispatcher,
		Users:         db,
		Cache:         cacheRedis,
	}, cfg.SchedulerSecret)

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
	}, nil
}

// Run starts the HTTP listener and blocks until the context is cancelled,
// then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
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
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		return err
	}
}
